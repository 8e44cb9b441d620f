// Package templates embeds the HTML templates of the users page.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.tmpl
var FS embed.FS

// UsersPage is the name of the users page template.
const UsersPage = "users"

// Parse parses every embedded template once.
func Parse() (*template.Template, error) {
	return template.New("root").ParseFS(FS, "*.tmpl")
}
