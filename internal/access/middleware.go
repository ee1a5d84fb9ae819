package access

import (
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Compose applies mws so that the first one is outermost.
func Compose(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			h = mws[i](h)
		}
		return h
	}
}

// RequireAuth redirects unauthenticated requests to redirectTo before the
// wrapped handler runs, and stores the principal for authenticated ones.
func RequireAuth(secret, redirectTo string, log *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := Authenticate(r, secret)
			if err != nil {
				log.DebugContext(r.Context(), "unauthenticated request redirected",
					"path", r.URL.Path, sl.Err(err))
				http.Redirect(w, r, redirectTo, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// WithAuthorization lets the request through only when the principal holds
// at least one of caps. Denied requests are answered by forbidden and never
// reach the wrapped handler.
func WithAuthorization(a *Authorizer, forbidden http.Handler, log *slog.Logger, caps ...Capability) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, _ := FromContext(r.Context())
			var err error
			for _, c := range caps {
				if err = a.Check(p, c); err == nil {
					next.ServeHTTP(w, r)
					return
				}
			}
			log.DebugContext(r.Context(), "request denied", "path", r.URL.Path, sl.Err(err))
			forbidden.ServeHTTP(w, r)
		})
	}
}
