package middleware

import (
	"net/http"

	"radlab-backoffice/pkg/response"
)

// RequirePrivilege gates a route on a (module, operation) grant. Super
// admins pass every check; everyone else needs the grant on their account.
// Runs after Authenticate, which put the full user on the context.
func RequirePrivilege(module, operation string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUserFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			if !user.Allow(module, operation) {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSuperAdmin gates a route on the super-admin flag.
func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Authentication required")
			return
		}
		if !user.IsSuperAdmin {
			response.Forbidden(w, "You don't have permission to access this resource")
			return
		}
		next.ServeHTTP(w, r)
	})
}
