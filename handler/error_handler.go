package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/crudkit/pkg/logger"
)

// ErrorPageParams contains data for rendering error pages
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorHandlerConfig configures the default error handler
type ErrorHandlerConfig struct {
	// ErrorPage renders a full error page for browser requests.
	// Without it a plain text body is written.
	ErrorPage func(ErrorPageParams) templ.Component
}

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	Message    string
	LogLevel   slog.Level
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

// classifyError maps err to a status code and a message safe to show users.
// Only HTTPError values expose their key; everything else is a 500.
func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    "An error occurred processing your request",
		LogLevel:   slog.LevelError,
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Key
	}
	if isClientError(info.StatusCode) {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

// WantsJSON reports whether the client expects a JSON body rather than a page.
func WantsJSON(r *http.Request) bool {
	if strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest") {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// NewErrorHandler creates the default error handler. Errors are logged with
// the request id assigned by chi's RequestID middleware. JSON clients get a
// messages envelope, browsers get the configured error page.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler {
	if log == nil {
		log = logger.Discard()
	}

	return func(w http.ResponseWriter, r *http.Request, err error) {
		ctx := r.Context()
		requestID := middleware.GetReqID(ctx)
		info := classifyError(err)

		log.LogAttrs(ctx, info.LogLevel, "request error",
			logger.RequestID(requestID),
			logger.Error(err),
			logger.Status(info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		switch {
		case WantsJSON(r):
			if renderErr := Messages(info.StatusCode, info.Message).Render(w, r); renderErr != nil {
				log.ErrorContext(ctx, "failed to write error response",
					logger.RequestID(requestID),
					logger.Error(renderErr),
				)
			}
			return
		case cfg.ErrorPage == nil:
			http.Error(w, info.Message, info.StatusCode)
			return
		}

		page := cfg.ErrorPage(ErrorPageParams{
			Error:      info.Message,
			StatusCode: info.StatusCode,
			RequestID:  requestID,
			RetryURL:   r.URL.Path,
		})
		if renderErr := TemplWithStatus(info.StatusCode, page).Render(w, r); renderErr != nil {
			log.ErrorContext(ctx, "failed to render error page",
				logger.RequestID(requestID),
				logger.Error(renderErr),
				logger.Event("render_error_page"),
			)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}
