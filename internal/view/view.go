// Package view holds the templ components that render site markup.
package view

import "strings"

// StaffUnavailableHTML is the grid content shown when the directory cannot be loaded.
const StaffUnavailableHTML = `<div class="col-12"><p>Unable to load staff list.</p></div>`

// GlueScriptPath is the browser glue script location relative to the site root.
const GlueScriptPath = "_gage/static/js/site.js"

// BasePath returns the relative prefix leading from a page at name (slash
// separated, relative to the site root) back to the root.
func BasePath(name string) string {
	depth := strings.Count(strings.Trim(name, "/"), "/")
	return strings.Repeat("../", depth)
}
