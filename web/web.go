// Package web holds the server-rendered page shells. The dashboards
// poll the JSON API from the browser.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var files embed.FS

// Templates parses every page shell
func Templates() (*template.Template, error) {
	return template.ParseFS(files, "templates/*.tmpl")
}
