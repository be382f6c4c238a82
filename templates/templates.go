// Package templates embeds the HTML pages. Each page defines "content" and
// is rendered inside base.html.
package templates

import "embed"

//go:embed *.html
var FS embed.FS

// Pages lists every page template besides base.html.
var Pages = []string{
	"login", "error", "dashboard", "team", "one_on_ones", "opportunities",
	"support_cases", "follow_ups", "notes", "skill_matrix", "reports",
}
