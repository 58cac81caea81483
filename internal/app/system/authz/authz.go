// Package authz answers permission questions about the authenticated user.
//
// Permissions live on the user's role as a map of resource -> allowed
// actions. The Super Admin role bypasses every check.
package authz

import (
	"net/http"

	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/auth"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/jsonutil"
)

// IsSuperAdmin reports whether the current request's user holds the Super
// Admin role.
func IsSuperAdmin(r *http.Request) bool {
	p, ok := auth.CurrentUser(r)
	return ok && p.Role != nil && p.Role.IsSuperAdmin()
}

// Can reports whether the current user may perform action on resource.
func Can(r *http.Request, resource, action string) bool {
	p, ok := auth.CurrentUser(r)
	if !ok || p.Role == nil {
		return false
	}
	return p.Role.Allows(resource, action)
}

// Require returns middleware that rejects with 403 unless the current user
// may perform action on resource. It assumes auth.Protect ran earlier in the
// chain.
func Require(resource, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !Can(r, resource, action) {
				jsonutil.Forbidden(w, "You do not have permission to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSuperAdmin returns middleware that only lets the Super Admin
// through. Used for destructive user operations.
func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsSuperAdmin(r) {
			jsonutil.Forbidden(w, "Only Super Admin can perform this action")
			return
		}
		next.ServeHTTP(w, r)
	})
}
