package registration

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formkit/handler"
	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/clientip"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/ratelimiter"
)

// Service serves the registration form, the record table and the JSON API
// for one rule set.
type Service struct {
	form         *form.Context
	tr           *i18n.Translator
	views        *Views
	log          *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
	jsonErrors   handler.ErrorHandler[handler.Context]
	limiter      *ratelimiter.Bucket
	checks       []healthCheck
}

type healthCheck struct {
	name  string
	check func(context.Context) error
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithViews replaces some or all of the default views.
func WithViews(v *Views) ServiceOption {
	return func(s *Service) {
		s.views = v
	}
}

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithErrorHandler replaces the HTML error handler.
func WithErrorHandler(h handler.ErrorHandler[handler.Context]) ServiceOption {
	return func(s *Service) {
		s.errorHandler = h
	}
}

// WithRateLimiter limits submissions per client address.
func WithRateLimiter(b *ratelimiter.Bucket) ServiceOption {
	return func(s *Service) {
		s.limiter = b
	}
}

// WithHealthCheck adds a dependency probe to /healthz.
func WithHealthCheck(name string, check func(context.Context) error) ServiceOption {
	return func(s *Service) {
		s.checks = append(s.checks, healthCheck{name: name, check: check})
	}
}

// NewService wires the form context and translator into HTTP handlers.
func NewService(fctx *form.Context, tr *i18n.Translator, opts ...ServiceOption) *Service {
	s := &Service{
		form: fctx,
		tr:   tr,
		log:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.views = s.views.withDefaults()
	s.log = s.log.With(logger.Component("registration"), logger.RuleSet(fctx.Rules.Name()))
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{
			ErrorPage:   s.views.ErrorPage,
			ErrorToast:  s.views.ErrorToast,
			ToastTarget: "#" + ToastID,
			Translate: func(ctx context.Context, key string) string {
				return tr.Tc(ctx, key)
			},
		})
	}
	s.jsonErrors = handler.NewJSONErrorHandler(s.log)
	return s
}

// Handle returns the module router:
//
//	GET  /                 page with form and records
//	POST /submit           form post (urlencoded or multipart), rate limited
//	GET  /records          records as JSON
//	GET  /rules            active rule set as JSON
//	GET  /healthz          liveness
//	POST /api/submissions  JSON submission, rate limited
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(s.page,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.With(s.limit(s.errorHandler)).Post("/submit", handler.Wrap(s.submit,
		handler.WithBinders[handler.Context, form.Submission](s.bindForm()),
		handler.WithErrorHandler[handler.Context, form.Submission](s.errorHandler),
	))
	r.Get("/records", handler.Wrap(s.records,
		handler.WithErrorHandler[handler.Context, struct{}](s.jsonErrors),
	))
	r.Get("/rules", handler.Wrap(s.rules,
		handler.WithErrorHandler[handler.Context, struct{}](s.jsonErrors),
	))
	r.Get("/healthz", handler.Wrap(s.health))
	r.With(s.limit(s.jsonErrors)).Post("/api/submissions", handler.Wrap(s.apiSubmit,
		handler.WithBinders[handler.Context, apiSubmission](binder.JSON()),
		handler.WithErrorHandler[handler.Context, apiSubmission](s.jsonErrors),
	))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.errorHandler(handler.NewContext(w, r), handler.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.errorHandler(handler.NewContext(w, r), handler.ErrMethodNotAllowed)
	})
	return r
}

// bindForm binds form posts with the configured upload limit. The body is
// capped at the upload limit plus room for the text fields.
func (s *Service) bindForm() handler.Bind {
	maxUpload := s.form.MaxUpload
	if maxUpload <= 0 {
		maxUpload = form.DefaultMaxUpload
	}
	bind := binder.Form(maxUpload)
	return func(r *http.Request, v any) error {
		if sub, ok := v.(*form.Submission); ok {
			sub.MaxUpload = maxUpload
		}
		r.Body = http.MaxBytesReader(nil, r.Body, 2*maxUpload+binder.DefaultMaxMemory)
		return bind(r, v)
	}
}

// limit applies the rate limiter, reporting refusals through eh.
func (s *Service) limit(eh handler.ErrorHandler[handler.Context]) func(http.Handler) http.Handler {
	if s.limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return ratelimiter.Middleware(s.limiter, clientKey, func(w http.ResponseWriter, r *http.Request, err error) {
		if errors.Is(err, ratelimiter.ErrRateLimited) {
			err = handler.ErrTooManyRequests
		}
		eh(handler.NewContext(w, r), err)
	})
}

func clientKey(r *http.Request) string {
	if ip := clientip.FromContext(r.Context()); ip != "" {
		return "submit:" + ip
	}
	if ip := clientip.GetIP(r); ip != "" {
		return "submit:" + ip
	}
	return ""
}

func (s *Service) health(ctx handler.Context, _ struct{}) handler.Response {
	body := map[string]any{
		"status":   "ok",
		"rule_set": s.form.Rules.Name(),
		"records":  s.form.Table.Len(),
	}
	if len(s.checks) == 0 {
		return handler.JSON(body)
	}

	checks := make(map[string]string, len(s.checks))
	for _, c := range s.checks {
		if err := c.check(ctx); err != nil {
			s.log.WarnContext(ctx, "health check failed", slog.String("check", c.name), logger.Error(err))
			checks[c.name] = "unavailable"
			body["status"] = "unavailable"
			continue
		}
		checks[c.name] = "ok"
	}
	body["checks"] = checks
	if body["status"] != "ok" {
		return handler.JSON(body, handler.WithJSONStatus(http.StatusServiceUnavailable))
	}
	return handler.JSON(body)
}

func seqParam(seq int) map[string]any {
	return map[string]any{"seq": strconv.Itoa(seq)}
}
