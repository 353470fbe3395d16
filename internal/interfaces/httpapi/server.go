package httpapi

import (
	"net/http"

	"github.com/riskibarqy/wrestling-roster/internal/platform/logging"
)

// RouterOptions toggles the optional surfaces of the API.
type RouterOptions struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
}

// NewRouter wires every route behind tracing, access logging, CORS and panic
// recovery, outermost first.
func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts.SwaggerEnabled)
	registerTeamRoutes(mux, handler)
	registerMemberRoutes(mux, handler)
	registerArchiveRoutes(mux, handler)

	var chain http.Handler = recoverPanic(logger, mux)
	chain = CORS(opts.CORSAllowedOrigins, chain)
	chain = RequestLogging(logger, chain)
	return RequestTracing(chain)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
			writeInternalError(r.Context(), w)
		}()
		next.ServeHTTP(w, r)
	})
}
