// Package web embeds the default public pages.
package web

import (
	"embed"
	"io/fs"
	"os"

	"fest-registration/logger"
)

//go:embed static
var staticFiles embed.FS

// Pages returns dir when it is set and exists, otherwise the embedded
// pages.
func Pages(dir string) fs.FS {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			logger.Info.Printf("Serving static pages from %s", dir)
			return os.DirFS(dir)
		}
		logger.Warn.Printf("STATIC_DIR %q is not a directory, using embedded pages", dir)
	}
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
