package mywebsite

import (
	"embed"
	"io/fs"
	"net/http"
)

// EmbeddedAssets contains static assets shipped with the site binary:
// analytics.js (the page-view beacon).
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

// embeddedAssetHandler serves the embedded assets under /public/.
func embeddedAssetHandler() http.Handler {
	sub, _ := fs.Sub(EmbeddedAssets, "embedded")
	return http.StripPrefix("/public/", http.FileServer(http.FS(sub)))
}
