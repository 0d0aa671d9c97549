package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// ErrorPageParams contains data for rendering error pages
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams contains data for rendering error toasts
type ErrorToastParams struct {
	Message   string
	Type      string // "error", "warning"
	RequestID string
}

// ErrorHandlerConfig configures the default error handler
type ErrorHandlerConfig struct {
	// ErrorPage renders full error page for regular HTTP requests
	ErrorPage func(ErrorPageParams) templ.Component

	// ErrorToast renders toast notification for DataStar requests
	ErrorToast func(ErrorToastParams) templ.Component

	// ToastTarget specifies where to render toast notifications (default: "#toast-container")
	ToastTarget string

	// ToastMode specifies how to render toasts (default: PatchPrepend)
	ToastMode datastar.ElementPatchMode

	// Translate resolves message keys. Keys are shown as-is when nil.
	Translate func(ctx context.Context, key string) string
}

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	Code       string
	Message    string
	Type       string
	LogLevel   slog.Level
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

func setConfigDefaults(cfg ErrorHandlerConfig) ErrorHandlerConfig {
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}
	if cfg.Translate == nil {
		cfg.Translate = func(_ context.Context, key string) string { return key }
	}
	return cfg
}

// classifyError maps err to a status code and message key.
func classifyError(err error) ErrorInfo {
	herr := ErrInternalServerError
	code := "internal_error"

	var (
		httpErr  HTTPError
		maxBytes *http.MaxBytesError
	)
	switch {
	case errors.As(err, &httpErr):
		herr, code = httpErr, httpErr.Key
	case validator.IsValidationError(err):
		herr, code = ErrUnprocessableEntity, "validation_error"
	case errors.As(err, &maxBytes):
		herr, code = ErrRequestEntityTooLarge, "request_too_large"
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		herr, code = ErrUnsupportedMediaType, "unsupported_media_type"
	case errors.Is(err, binder.ErrInvalidForm), errors.Is(err, binder.ErrFailedToParseJSON):
		herr, code = ErrBadRequest, "bad_request"
	}

	info := ErrorInfo{
		StatusCode: herr.Code,
		Code:       code,
		Message:    herr.Key,
		Type:       "error",
		LogLevel:   slog.LevelError,
	}
	if isClientError(info.StatusCode) {
		info.Type = "warning"
		info.LogLevel = slog.LevelWarn
	}
	return info
}

func logError(log *slog.Logger, ctx Context, err error, info ErrorInfo) {
	r := ctx.Request()
	log.LogAttrs(r.Context(), info.LogLevel, "request error",
		logger.RequestID(ctx.RequestID()),
		logger.Error(err),
		logger.Status(info.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Bool("is_datastar", IsDataStar(r)),
		logger.Component("error_handler"),
	)
}

func renderDataStarResponse(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, requestID string, log *slog.Logger) {
	if cfg.ErrorToast == nil {
		log.Warn("no error toast component configured for DataStar request",
			logger.RequestID(requestID),
			logger.Component("error_handler"),
		)
		return
	}

	component := cfg.ErrorToast(ErrorToastParams{
		Message:   cfg.Translate(ctx, info.Message),
		Type:      info.Type,
		RequestID: requestID,
	})
	response := Templ(component, WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode))

	// SSE responses keep status 200.
	if renderErr := response.Render(ctx.ResponseWriter(), ctx.Request()); renderErr != nil {
		log.Error("failed to render error toast",
			logger.RequestID(requestID),
			logger.Error(renderErr),
			logger.Component("error_handler"),
		)
	}
}

func renderHTTPResponse(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, requestID string, log *slog.Logger) {
	message := cfg.Translate(ctx, info.Message)
	if cfg.ErrorPage == nil {
		http.Error(ctx.ResponseWriter(), message, info.StatusCode)
		return
	}

	component := cfg.ErrorPage(ErrorPageParams{
		Error:      message,
		StatusCode: info.StatusCode,
		RequestID:  requestID,
		RetryURL:   ctx.Request().URL.Path,
	})

	response := WithStatus(info.StatusCode, Templ(component))
	if renderErr := response.Render(ctx.ResponseWriter(), ctx.Request()); renderErr != nil {
		log.Error("failed to render error page",
			logger.RequestID(requestID),
			logger.Error(renderErr),
			logger.Component("error_handler"),
		)
	}
}

// NewErrorHandler creates the error handler shared by all routes.
// Regular requests get a full error page, DataStar requests a toast patch.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	cfg = setConfigDefaults(cfg)
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		requestID := ctx.RequestID()
		info := classifyError(err)
		logError(log, ctx, err, info)

		if IsDataStar(ctx.Request()) {
			renderDataStarResponse(ctx, cfg, info, requestID, log)
		} else {
			renderHTTPResponse(ctx, cfg, info, requestID, log)
		}
	}
}

// NewJSONErrorHandler creates an error handler for API routes that renders
// errors through JSONError.
func NewJSONErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx Context, err error) {
		logError(log, ctx, err, classifyError(err))
		if renderErr := JSONError(err).Render(ctx.ResponseWriter(), ctx.Request()); renderErr != nil {
			log.Error("failed to render JSON error",
				logger.RequestID(ctx.RequestID()),
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}
