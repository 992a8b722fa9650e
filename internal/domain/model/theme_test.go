package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTheme(t *testing.T) {
	th, ok := ParseTheme("dark")
	assert.True(t, ok)
	assert.Equal(t, ThemeDark, th)

	th, ok = ParseTheme("light")
	assert.True(t, ok)
	assert.Equal(t, ThemeLight, th)

	for _, raw := range []string{"", "Dark", "blue", "null"} {
		_, ok := ParseTheme(raw)
		assert.False(t, ok, raw)
	}
}

func TestThemePreference_UnsetFollowsSystemDark(t *testing.T) {
	pref := ResolveThemePreference("", ThemeDark)

	assert.False(t, pref.Explicit())
	assert.Equal(t, ThemeDark, pref.Effective())

	toggled := pref.Toggle()
	assert.Equal(t, ThemeLight, toggled.Effective())
	assert.True(t, toggled.Explicit())
}

func TestThemePreference_InvalidSavedTreatedAsAbsent(t *testing.T) {
	pref := ResolveThemePreference("sepia", ThemeDark)

	assert.False(t, pref.Explicit())
	assert.Equal(t, ThemeDark, pref.Effective())
}

func TestThemePreference_ExplicitIgnoresSystemChanges(t *testing.T) {
	pref := ResolveThemePreference("dark", ThemeDark)

	pref = pref.SystemChanged(ThemeLight)

	assert.Equal(t, ThemeDark, pref.Effective())
}

func TestThemePreference_UnsetFollowsSystemChanges(t *testing.T) {
	pref := ResolveThemePreference("", ThemeLight)

	pref = pref.SystemChanged(ThemeDark)
	assert.Equal(t, ThemeDark, pref.Effective())

	pref = pref.Toggle().SystemChanged(ThemeDark)
	assert.Equal(t, ThemeLight, pref.Effective())
}

func TestTheme_ToggleUI(t *testing.T) {
	dark := ThemeDark.ToggleUI()
	assert.True(t, dark.Pressed)
	assert.Equal(t, "bi-sun", dark.Icon)
	assert.Equal(t, "Passer au mode clair", dark.Title)

	light := ThemeLight.ToggleUI()
	assert.False(t, light.Pressed)
	assert.Equal(t, "bi-moon-stars", light.Icon)
	assert.Equal(t, "Passer au mode sombre", light.Title)
}
