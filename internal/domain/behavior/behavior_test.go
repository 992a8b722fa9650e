package behavior

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrollState_StickyHeader(t *testing.T) {
	header := []string{"header", "d-flex", "sticky-top"}

	assert.False(t, ScrollState(header, 100, false))
	assert.True(t, ScrollState(header, 101, false))
	assert.False(t, ScrollState(header, 20, true))
}

func TestScrollState_NonStickyHeaderIsNoop(t *testing.T) {
	header := []string{"header"}

	assert.False(t, ScrollState(header, 500, false))
	assert.True(t, ScrollState(header, 0, true))
}

func TestScrollTopVisible(t *testing.T) {
	assert.False(t, ScrollTopVisible(0))
	assert.False(t, ScrollTopVisible(100))
	assert.True(t, ScrollTopVisible(150))
}

func TestNavState_ToggleSwapsIcon(t *testing.T) {
	var nav NavState
	assert.Equal(t, NavIconOpen, nav.Icon())

	nav = nav.Toggle()
	assert.True(t, nav.Open)
	assert.Equal(t, NavIconClose, nav.Icon())

	nav = nav.Toggle()
	assert.False(t, nav.Open)
}

func TestNavState_LinkClickedClosesOpenNav(t *testing.T) {
	open := NavState{Open: true}
	assert.False(t, open.LinkClicked().Open)

	closed := NavState{}
	assert.False(t, closed.LinkClicked().Open)
}

func TestDropdown_Toggle(t *testing.T) {
	res := Dropdown{}.Toggle()

	assert.True(t, res.State.ParentActive)
	assert.True(t, res.State.MenuActive)
	assert.True(t, res.PreventDefault)
	assert.True(t, res.StopPropagation)

	back := res.State.Toggle()
	assert.Equal(t, Dropdown{}, back.State)
}

func TestNewWidgetPlan_Defaults(t *testing.T) {
	plan := NewWidgetPlan()

	assert.Equal(t, 600, plan.AOS.Duration)
	assert.Equal(t, "ease-in-out", plan.AOS.Easing)
	assert.True(t, plan.AOS.Once)
	assert.False(t, plan.AOS.Mirror)
	assert.Equal(t, ".glightbox", plan.LightboxSelector)
	assert.NotNil(t, plan.Sliders)
}
