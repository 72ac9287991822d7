// Package web holds the HTML templates rendered by the handlers
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"deref": func(p *uint) uint {
		if p == nil {
			return 0
		}

		return *p
	},
}

// Templates parses every page. Pages share the header and footer blocks
// defined in layout.html and are looked up by file name
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}
