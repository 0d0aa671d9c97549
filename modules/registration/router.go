package registration

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formkit/pkg/clientip"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/requestid"
)

// Router mounts the service behind panic recovery, request ids, client
// addresses, locale resolution and access logging.
//
//	svc := registration.NewService(fctx, tr, registration.WithLogger(log))
//	srv.Run(ctx, registration.Router(svc))
func Router(svc *Service) chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		requestid.Middleware,
		clientip.Middleware,
		i18n.Middleware(svc.tr),
		svc.accessLog,
	)
	r.Mount("/", svc.Handle())
	return r
}

func (s *Service) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.DebugContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Status(ww.Status()),
			logger.Duration(time.Since(start)),
			logger.Lang(i18n.Locale(r.Context())),
		)
	})
}
