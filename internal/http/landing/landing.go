// Package landing embeds the browser front end: one HTML template and its
// static assets.
package landing

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html static
var content embed.FS

// IndexTemplate is the name of the root page template.
const IndexTemplate = "index.html"

// Page is the data rendered into the root page.
type Page struct {
	Title   string
	Version string
}

// Templates parses the embedded HTML templates.
func Templates() *template.Template {
	return template.Must(template.ParseFS(content, "templates/*.html"))
}

// Static returns the embedded asset directory.
func Static() http.FileSystem {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
