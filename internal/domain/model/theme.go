package model

// Theme is the site display theme. Only ThemeDark and ThemeLight are valid.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

const (
	// ThemeStorageKey is the key under which the explicit choice is persisted,
	// both in browser local storage and as a cookie name.
	ThemeStorageKey = "gage-theme"

	// DarkModeClass is the marker class set on the root element in dark mode.
	DarkModeClass = "dark-mode"
)

// ParseTheme returns the theme named by s. Any value other than "dark" or
// "light" is reported as absent.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), true
	default:
		return "", false
	}
}

// Valid reports whether t is one of the two known themes.
func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ThemePreference combines the user's saved choice with the system
// color-scheme preference. Saved is empty while the user has never chosen.
type ThemePreference struct {
	Saved  Theme
	System Theme
}

// ResolveThemePreference builds a preference from a raw persisted value and
// the system preference. Invalid persisted values are discarded.
func ResolveThemePreference(saved string, system Theme) ThemePreference {
	t, _ := ParseTheme(saved)
	if !system.Valid() {
		system = ThemeLight
	}
	return ThemePreference{Saved: t, System: system}
}

// Effective returns the theme to apply: the saved choice, else the system one.
func (p ThemePreference) Effective() Theme {
	if p.Saved.Valid() {
		return p.Saved
	}
	if p.System.Valid() {
		return p.System
	}
	return ThemeLight
}

// Explicit reports whether the user has chosen a theme.
func (p ThemePreference) Explicit() bool {
	return p.Saved.Valid()
}

// Toggle flips the effective theme and records it as an explicit choice.
// Once toggled, system changes no longer affect the effective theme.
func (p ThemePreference) Toggle() ThemePreference {
	p.Saved = p.Effective().Toggle()
	return p
}

// SystemChanged records a new system preference. The effective theme follows
// it only while no explicit choice has been saved.
func (p ThemePreference) SystemChanged(system Theme) ThemePreference {
	if system.Valid() {
		p.System = system
	}
	return p
}

// ThemeToggleUI is the accessibility state of the theme toggle control.
type ThemeToggleUI struct {
	Pressed bool
	Icon    string
	Title   string
}

// ThemeToggleIcons lists every icon class the toggle control can show.
var ThemeToggleIcons = []string{"bi-moon-stars", "bi-sun"}

// ToggleUI returns the toggle control state for the applied theme t.
func (t Theme) ToggleUI() ThemeToggleUI {
	if t == ThemeDark {
		return ThemeToggleUI{Pressed: true, Icon: "bi-sun", Title: "Passer au mode clair"}
	}
	return ThemeToggleUI{Pressed: false, Icon: "bi-moon-stars", Title: "Passer au mode sombre"}
}
