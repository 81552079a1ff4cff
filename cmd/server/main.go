package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/crudkit/crud"
	"github.com/dmitrymomot/crudkit/handler"
	"github.com/dmitrymomot/crudkit/modules/users"
	"github.com/dmitrymomot/crudkit/pkg/config"
	"github.com/dmitrymomot/crudkit/pkg/csrf"
	"github.com/dmitrymomot/crudkit/pkg/httpserver"
	"github.com/dmitrymomot/crudkit/pkg/i18n"
	"github.com/dmitrymomot/crudkit/pkg/logger"
	"github.com/dmitrymomot/crudkit/pkg/pg"
	"github.com/dmitrymomot/crudkit/pkg/render"
	"github.com/dmitrymomot/crudkit/schema"
)

func main() {
	var cfg AppConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, "crudkit"),
		logger.WithContextExtractors(requestID),
	)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg AppConfig, log *slog.Logger) error {
	var (
		dbCfg   pg.Config
		httpCfg httpserver.Config
	)
	if err := config.Load(&dbCfg); err != nil {
		return err
	}
	if err := config.Load(&httpCfg); err != nil {
		return err
	}

	queryLog := pg.NewQueryLog(log)
	pool, err := pg.Connect(ctx, dbCfg, pg.WithTracer(queryLog))
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, dbCfg, log); err != nil {
		return err
	}

	tables, err := schema.LoadTablesFile(cfg.TablesConfig)
	if err != nil {
		return err
	}
	usersCfg, err := schema.LoadHandlerConfigFile(cfg.UsersConfig)
	if err != nil {
		return err
	}

	engine, err := render.NewEngine(
		render.WithBaseDir(cfg.TemplateDir),
		render.WithReload(cfg.TemplateReload),
		// Requests without an admin get no translate attribute; echo keys instead.
		render.WithGlobals(map[string]any{
			"env":       cfg.Env,
			"translate": func(key string) string { return key },
		}),
	)
	if err != nil {
		return err
	}
	renderer := render.Chain{render.NewTemplRegistry(), engine}

	languages, err := i18n.NewLoader(
		i18n.NewFileSource(cfg.LangDir, ".json"),
		i18n.WithDefaultLanguage(cfg.DefaultLanguage),
		i18n.WithLogger(log),
	)
	if err != nil {
		return err
	}

	onError := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage: errorPage(engine),
	})

	guard, err := csrf.New(cfg.CSRFSecret,
		csrf.WithSecureCookie(cfg.SecureCookies),
		csrf.WithTokenSource(crud.FormDataValue(csrf.DefaultFieldName)),
		csrf.WithErrorHandler(onError),
	)
	if err != nil {
		return err
	}

	opts := []crud.Option{
		crud.WithTables(tables),
		crud.WithRenderer(renderer),
		crud.WithCSRF(guard),
		crud.WithLanguageLoader(languages),
		crud.WithSettingsPrefix(cfg.SettingsPrefix),
		crud.WithLogger(log),
		crud.WithErrorHandler(onError),
	}
	if cfg.QueryLog {
		opts = append(opts, crud.WithQueryLog(queryLog))
	}

	usersHandler := crud.New(users.TableKey,
		users.NewEntity(users.NewPGStore(pool, users.TableKey)),
		append(opts, crud.WithHandlerConfig(usersCfg))...,
	)

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
	)
	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, pg.Healthcheck(pool)))

	r.Route("/admin", func(r chi.Router) {
		if cfg.QueryLog {
			r.Use(queryLog.Middleware)
		}
		r.Use(
			crud.FormData(cfg.MaxBodyBytes),
			guard.Middleware,
			i18n.Middleware(languages, i18n.NewExtractor(cfg.Languages...)),
			crud.AdminMiddleware(devAdmin(cfg)),
		)
		r.Mount("/users", users.Router(usersHandler))
	})

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

func requestID(ctx context.Context) (slog.Attr, bool) {
	id := middleware.GetReqID(ctx)
	return logger.RequestID(id), id != ""
}

// devAdmin authenticates every request as cfg.AdminName when it is set.
func devAdmin(cfg AppConfig) crud.AdminResolver {
	return func(*http.Request) (crud.AdminContext, bool) {
		if cfg.AdminName == "" {
			return crud.AdminContext{}, false
		}
		settings := map[string]any{}
		if cfg.AdminLanguage != "" {
			settings[cfg.SettingsPrefix+"language"] = cfg.AdminLanguage
		}
		return crud.AdminContext{
			Name:     cfg.AdminName,
			UserPath: "/admin/users",
			Settings: settings,
		}, true
	}
}

// errorPage renders the "error" template as the HTML error page.
func errorPage(engine *render.Engine) func(handler.ErrorPageParams) templ.Component {
	return func(p handler.ErrorPageParams) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			html, err := engine.Render(ctx, "error", map[string]any{
				"error":      p.Error,
				"status":     p.StatusCode,
				"request_id": p.RequestID,
				"retry_url":  p.RetryURL,
			})
			if err != nil {
				return err
			}
			_, err = io.WriteString(w, html)
			return err
		})
	}
}
