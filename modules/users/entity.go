package users

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/crudkit/crud"
	"github.com/dmitrymomot/crudkit/handler"
	"github.com/dmitrymomot/crudkit/pkg/logger"
	"github.com/dmitrymomot/crudkit/pkg/validator"
)

// DefaultLimit caps the rows listed and looked up per request.
const DefaultLimit = 50

// Entity is the users handler plugged into a crud.Dispatcher.
type Entity struct {
	store Store
	limit int
}

// Option configures an Entity.
type Option func(*Entity)

// WithLimit overrides DefaultLimit.
func WithLimit(n int) Option {
	return func(e *Entity) {
		if n > 0 {
			e.limit = n
		}
	}
}

// NewEntity creates the users entity.
func NewEntity(store Store, opts ...Option) *Entity {
	e := &Entity{store: store, limit: DefaultLimit}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

var (
	_ crud.Entity               = (*Entity)(nil)
	_ crud.TemplateDataProvider = (*Entity)(nil)
	_ crud.LookupProvider       = (*Entity)(nil)
	_ crud.ExtraConfigHandler   = (*Entity)(nil)
)

// DefaultView renders the users page.
func (e *Entity) DefaultView(req *crud.Request) handler.Response {
	return req.HTMLResponse(TemplatePage)
}

// Save updates the user whose id is posted, or inserts a new one.
func (e *Entity) Save(req *crud.Request) crud.Result {
	values := req.InsertArray(TableKey)
	if err := validate(values); err != nil {
		return crud.Failure(validationMessages(req, err)...)
	}

	ctx := req.Context()
	var (
		user User
		err  error
	)
	if raw := req.Post.Value(identifier(req)); raw != "" {
		id, perr := uuid.Parse(raw)
		if perr != nil {
			return crud.Failure(message(req, "users.errors.invalid_id", "invalid user id"))
		}
		user, err = e.store.Update(ctx, id, values)
	} else {
		user, err = e.store.Insert(ctx, values)
	}

	switch {
	case err == nil:
		req.Logger().InfoContext(ctx, "user saved", logger.Action("save"), slog.String("user_id", user.ID.String()))
		return crud.Success(user)
	case errors.Is(err, ErrDuplicate):
		return crud.Failure(message(req, "users.errors.duplicate_email", "email already registered"))
	case errors.Is(err, ErrNotFound):
		return crud.Failure(message(req, "users.errors.not_found", "user not found"))
	default:
		req.Logger().ErrorContext(ctx, "failed to save user", logger.Action("save"), logger.Error(err))
		return crud.Failure(message(req, "users.errors.save_failed", "could not save user"))
	}
}

// Delete removes the posted user and reports the outcome as JSON.
func (e *Entity) Delete(req *crud.Request) handler.Response {
	id, err := uuid.Parse(req.Post.Value(identifier(req)))
	if err != nil {
		return handler.Messages(http.StatusBadRequest, message(req, "users.errors.invalid_id", "invalid user id"))
	}

	ctx := req.Context()
	switch err := e.store.Delete(ctx, id); {
	case err == nil:
		req.Logger().InfoContext(ctx, "user deleted", logger.Action("delete"), slog.String("user_id", id.String()))
		return handler.JSON(map[string]any{"deleted": id})
	case errors.Is(err, ErrNotFound):
		return handler.Messages(http.StatusNotFound, message(req, "users.errors.not_found", "user not found"))
	default:
		req.Logger().ErrorContext(ctx, "failed to delete user", logger.Action("delete"), logger.Error(err))
		return handler.Messages(http.StatusInternalServerError, message(req, "users.errors.delete_failed", "could not delete user"))
	}
}

// TemplateData lists the users matching the active search.
func (e *Entity) TemplateData(req *crud.Request, feedback []string) map[string]any {
	list, err := e.store.Lookup(req.Context(), req.LookupConditions(), e.limit)
	if err != nil {
		req.Logger().ErrorContext(req.Context(), "failed to list users", logger.Error(err))
		feedback = append(feedback, message(req, "users.errors.list_failed", "could not load users"))
	}
	return map[string]any{
		"users":    list,
		"feedback": feedback,
		"errors":   req.Errors(),
		"roles":    Roles,
	}
}

// LookupResult renders the matching users as an {"html": ...} fragment.
func (e *Entity) LookupResult(req *crud.Request, feedback []string) handler.Response {
	list, err := e.store.Lookup(req.Context(), req.LookupConditions(), e.limit)
	if err != nil {
		req.Logger().ErrorContext(req.Context(), "user lookup failed", logger.Action(ConfigLookup), logger.Error(err))
		return req.JSONResponse(TemplateList, http.StatusInternalServerError, nil,
			[]string{message(req, "users.errors.list_failed", "could not load users")})
	}
	return req.JSONResponse(TemplateList, http.StatusOK, map[string]any{
		"users":    list,
		"feedback": feedback,
	}, nil)
}

// HandleConfig serves config=lookup.
func (e *Entity) HandleConfig(req *crud.Request, config string) crud.Result {
	if config == ConfigLookup {
		return crud.Respond(req.Lookup())
	}
	return crud.Failure(fmt.Sprintf("unsupported config %q", config))
}

func identifier(req *crud.Request) string {
	if t, ok := req.Tables().Table(TableKey); ok && t.Identifier != "" {
		return t.Identifier
	}
	return "id"
}

// message translates key, falling back to the English text.
// validate checks the insert array. Empty optional fields never reach it.
func validate(values map[string]string) error {
	rules := []validator.Rule{
		validator.RequiredString("name", values["name"]),
		validator.MaxLenString("name", values["name"], MaxNameLength),
		validator.RequiredString("email", values["email"]),
	}
	if email := values["email"]; email != "" {
		rules = append(rules, validator.ValidEmail("email", email))
	}
	if role, ok := values["role"]; ok {
		rules = append(rules, validator.InListString("role", role, Roles))
	}
	return validator.Apply(rules...)
}

// validationMessages translates each failure as users.errors.<field>_<rule>.
func validationMessages(req *crud.Request, err error) []string {
	return validator.ExtractValidationErrors(err).Translate(func(e validator.ValidationError) string {
		return message(req, "users.errors."+e.Field+"_"+e.Rule(), e.Field+" "+e.Message)
	})
}

func message(req *crud.Request, key, fallback string) string {
	if s, ok := req.Language().Translate(key); ok && s != "" {
		return s
	}
	return fallback
}
