package httpapi

import (
	"net/http"

	"github.com/peladahub/pickup-league/internal/platform/logging"
)

// NewRouter assembles the HTTP surface with the shared middleware chain.
// Tracing wraps everything so downstream spans attach to the request span.
func NewRouter(handler *Handler, verifier TokenVerifier, logger *logging.Logger, corsAllowedOrigins []string) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerRoutes(mux, handler, verifier)

	return RequestTracing(
		RequestLogging(logger,
			CORS(corsAllowedOrigins,
				recoverPanic(logger, mux),
			),
		),
	)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.ErrorContext(r.Context(), "panic recovered",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", recovered,
				)
				writeInternalError(r.Context(), w)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
