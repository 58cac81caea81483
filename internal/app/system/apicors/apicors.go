// Package apicors provides the permissive CORS middleware used on the
// /uploads static file mount and the public contact endpoint, where the
// marketing site (any origin) fetches images and posts enquiries without
// cookies.
package apicors

import "net/http"

// Middleware returns CORS middleware that allows any origin.
//
// It does not allow credentials: the public surfaces it protects are
// cookie-free, so "*" origins are safe here.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
			w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
