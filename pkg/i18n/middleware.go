package i18n

import (
	"net/http"
	"time"
)

const (
	QueryParam = "lang"
	CookieName = "lang"
)

// Middleware resolves the request language and stores it in the context.
// Precedence: ?lang= query parameter, then the lang cookie, then
// Accept-Language. An explicit ?lang= choice is remembered in the cookie.
func Middleware(t *Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if q := r.URL.Query().Get(QueryParam); q != "" && t.Supports(q) {
				lang = t.Match(q)
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    lang,
					Path:     "/",
					MaxAge:   int((365 * 24 * time.Hour).Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			if lang == "" {
				if c, err := r.Cookie(CookieName); err == nil && t.Supports(c.Value) {
					lang = t.Match(c.Value)
				}
			}
			if lang == "" {
				lang = t.Match(r.Header.Get("Accept-Language"))
			}
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), lang)))
		})
	}
}
