package web

import (
	"net/http"

	"github.com/ericfisherdev/gagesite/internal/domain/model"
)

const (
	// colorSchemeHint is the client hint carrying the system color scheme.
	colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"

	themeCookieMaxAge = 365 * 24 * 60 * 60
)

// themePreference reads the saved theme from the gage-theme cookie and the
// system theme from the color scheme client hint. Browsers that do not send
// the hint are treated as light.
func themePreference(r *http.Request) model.ThemePreference {
	system := model.ThemeLight
	if hint := r.Header.Get(colorSchemeHint); hint != "" {
		if t, ok := model.ParseTheme(unquote(hint)); ok {
			system = t
		}
	}

	var saved string
	if cookie, err := r.Cookie(model.ThemeStorageKey); err == nil {
		saved = cookie.Value
	}

	return model.ResolveThemePreference(saved, system)
}

// advertiseThemeHints asks the browser to send the color scheme hint on
// later requests and marks the response as varying on it.
func advertiseThemeHints(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Accept-CH", colorSchemeHint)
	h.Add("Vary", colorSchemeHint)
	h.Add("Vary", "Cookie")
}

func setThemeCookie(w http.ResponseWriter, r *http.Request, theme model.Theme) {
	http.SetCookie(w, &http.Cookie{
		Name:     model.ThemeStorageKey,
		Value:    string(theme),
		Path:     "/",
		MaxAge:   themeCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
}

// unquote strips the structured-header quotes around a hint value.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
