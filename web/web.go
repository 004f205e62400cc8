// Package web embeds the browser chat front-end.
package web

import (
	"embed"
	"io/fs"
)

//go:embed public
var assets embed.FS

// Public returns the front-end assets rooted at the public directory.
func Public() fs.FS {
	sub, err := fs.Sub(assets, "public")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}
	return sub
}

func IndexHTML() ([]byte, error) {
	return fs.ReadFile(Public(), "index.html")
}
