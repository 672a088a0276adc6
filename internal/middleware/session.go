package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/session"
)

// Session resolves the caller through provider and attaches the result to the request context.
// Requests with a missing or rejected token continue without a session; the services decide
// whether the action needs one.
func Session(provider session.Provider) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, span := otel.Tracer.Start(r.Context(), "middleware Session")
			defer span.End()

			logger := zerolog.Ctx(c).
				With().
				Str(log.KeyTag, "middleware Session").
				Str(log.KeyProcess, "resolving session").
				Logger()

			logger.Trace().Msg("resolving session")
			s, err := provider.Session(c, r.Header)
			if err != nil {
				otel.RecordError(err, span)
				logger.Warn().Err(err).Msg("continuing without session")
				next.ServeHTTP(w, r)
				return
			}
			if s == nil {
				logger.Trace().Msg("no session")
				next.ServeHTTP(w, r)
				return
			}

			logger = logger.With().Str(log.KeyUserID, s.UserID.String()).Logger()
			logger.Trace().Msg("resolved session")
			c = session.AttachToContext(c, s)
			c = logger.WithContext(c)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
