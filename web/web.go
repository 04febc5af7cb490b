// Package web embeds the page templates and static assets served by the
// admin UI.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates static
var assetsFS embed.FS

// Engine returns the template engine over the embedded page templates.
func Engine() *html.Engine {
	sub, err := fs.Sub(assetsFS, "templates")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}

// Static returns the embedded static asset tree rooted at static/.
func Static() http.FileSystem {
	sub, err := fs.Sub(assetsFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
