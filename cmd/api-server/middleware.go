package main

import "net/http"

// viewerForced reports whether the request carries one of the read-only
// query flags, which win over any editor token.
func viewerForced(r *http.Request) bool {
	q := r.URL.Query()
	for _, k := range []string{"viewer", "view", "readonly"} {
		if q.Has(k) {
			if v := q.Get(k); v == "" || v == "1" || v == "true" {
				return true
			}
		}
	}
	return false
}

// EditorOnly guards mutation routes: a whitelisted editor token is required
// and the viewer flag forces read-only regardless of it.
func (app *App) EditorOnly(next http.Handler) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if viewerForced(r) {
			sendResponse(w, httpResp{Status: http.StatusForbidden, IsError: true, Error: "viewer mode is read-only"})
			return
		}

		authHeader := r.Header.Get("Authorization")
		var token string
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			token = authHeader[7:]
		}

		if !app.Gate.Validate(token) {
			sendResponse(w, httpResp{Status: http.StatusUnauthorized, IsError: true, Error: "Unauthorized"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
