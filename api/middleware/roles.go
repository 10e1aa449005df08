package middleware

import (
	"net/http"

	"github.com/hadyba/hadyshop/api/responses"
	pkgerrors "github.com/hadyba/hadyshop/pkg/errors"
	"github.com/hadyba/hadyshop/pkg/logger"
)

// RequireRole guards a route group behind the given role. It assumes Auth
// already ran, so a missing role reads as an empty string and is rejected.
func RequireRole(role string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := RoleFromContext(r.Context())
			if actor != role {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
