// Package web embeds the browser frontend served under /static.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

// IndexPath is where the landing page is served
const IndexPath = "/static/"

//go:embed static
var content embed.FS

// Static returns the frontend files rooted at the static directory
func Static() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		// The directory is embedded at build time
		panic(err)
	}
	return sub
}

// Handler serves the frontend; mount it with the /static/ prefix stripped
func Handler() http.Handler {
	return http.FileServer(http.FS(Static()))
}
