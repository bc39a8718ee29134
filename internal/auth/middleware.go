package auth

import (
	"net/http"
	"time"
)

// RefreshSession reissues the auth_token cookie once a valid session is past
// half of its lifetime. Requests are never rejected here; operations that
// need a user call Authorize themselves.
func (h *AuthHandler) RefreshSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := h.parseToken(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		username, _ := claims["preferred_username"].(string)
		if exp, ok := claims["exp"].(float64); ok && username != "" {
			remaining := time.Until(time.Unix(int64(exp), 0))
			if remaining < TokenDuration/2 {
				if newToken, err := h.GenerateToken(username); err == nil {
					http.SetCookie(w, h.sessionCookie(newToken))
				}
			}
		}

		next.ServeHTTP(w, r)
	})
}
