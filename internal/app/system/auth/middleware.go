package auth

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/jsonutil"
)

// Protect returns middleware that verifies the request's token, resolves the
// principal behind it, and injects it into the request context. Requests
// without a valid token get 401.
func (m *Manager) Protect(principals Principals) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, err := TokenFromRequest(r)
			if err != nil {
				jsonutil.Unauthorized(w, "Not authorized to access this route")
				return
			}

			claims, err := m.Verify(tok)
			if err != nil {
				jsonutil.Unauthorized(w, "Not authorized to access this route")
				return
			}

			p, err := principals.Principal(r.Context(), claims.UserID, claims.RoleID)
			if err != nil {
				m.logger.Debug("token principal rejected",
					zap.String("user_id", claims.UserID.Hex()),
					zap.Error(err),
				)
				jsonutil.Unauthorized(w, "Not authorized to access this route")
				return
			}

			next.ServeHTTP(w, WithPrincipal(r, p))
		})
	}
}
