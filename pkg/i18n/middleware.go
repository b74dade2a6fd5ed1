package i18n

import (
	"net/http"
	"strings"
)

// Middleware resolves the request locale and stores it in the context.
// An explicit ?lang= query parameter wins over Accept-Language.
func Middleware(next http.Handler) http.Handler {
	return NewMiddleware(DefaultLocale)(next)
}

// NewMiddleware is Middleware with a configurable locale for requests that
// name no supported language.
func NewMiddleware(fallback string) func(http.Handler) http.Handler {
	if !IsSupported(fallback) {
		fallback = DefaultLocale
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale, ok := MatchAcceptLanguage(r.Header.Get("Accept-Language"))
			if !ok {
				locale = fallback
			}

			if lang := strings.ToLower(r.URL.Query().Get("lang")); IsSupported(lang) {
				locale = lang
			}

			w.Header().Set("Content-Language", locale)
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), locale)))
		})
	}
}
