// Package behavior models the page's interactive behaviors as pure state
// transitions. These are the reference rules for scroll, navigation and
// dropdown handling; the browser glue script implements the same transitions
// against live page state, and the server only builds the widget plan.
package behavior

import "slices"

// ScrollThreshold is the vertical offset in pixels past which the page counts
// as scrolled.
const ScrollThreshold = 100

// Class names used by the page template.
const (
	ScrolledClass       = "scrolled"
	MobileNavClass      = "mobile-nav-active"
	NavIconOpen         = "bi-list"
	NavIconClose        = "bi-x"
	DropdownParentClass = "active"
	DropdownMenuClass   = "dropdown-active"
	ScrollTopClass      = "active"
)

// StickyHeaderClasses are the header classes that enable the scrolled marker.
var StickyHeaderClasses = []string{"scroll-up-sticky", "sticky-top", "fixed-top"}

// ScrollState returns whether the body should carry ScrolledClass. When the
// header is not sticky the current state is returned unchanged.
func ScrollState(headerClasses []string, scrollY float64, current bool) bool {
	sticky := false
	for _, c := range headerClasses {
		if slices.Contains(StickyHeaderClasses, c) {
			sticky = true
			break
		}
	}
	if !sticky {
		return current
	}
	return scrollY > ScrollThreshold
}

// ScrollTopVisible reports whether the scroll-to-top control is shown.
func ScrollTopVisible(scrollY float64) bool {
	return scrollY > ScrollThreshold
}

// NavState is the mobile navigation state.
type NavState struct {
	Open bool
}

// Icon returns the toggle icon class for the state.
func (n NavState) Icon() string {
	if n.Open {
		return NavIconClose
	}
	return NavIconOpen
}

// Toggle flips the mobile navigation.
func (n NavState) Toggle() NavState {
	return NavState{Open: !n.Open}
}

// LinkClicked closes the navigation when an in-page link is followed.
func (n NavState) LinkClicked() NavState {
	if n.Open {
		return n.Toggle()
	}
	return n
}

// Dropdown is the state of one nested menu.
type Dropdown struct {
	ParentActive bool
	MenuActive   bool
}

// ToggleResult describes the outcome of a dropdown toggle click.
type ToggleResult struct {
	State           Dropdown
	PreventDefault  bool
	StopPropagation bool
}

// Toggle flips both dropdown classes. Toggle links never navigate.
func (d Dropdown) Toggle() ToggleResult {
	return ToggleResult{
		State:           Dropdown{ParentActive: !d.ParentActive, MenuActive: !d.MenuActive},
		PreventDefault:  true,
		StopPropagation: true,
	}
}
