package main

import (
	"embed"
	"io/fs"

	"github.com/lazypower/petd/internal/server"
)

// ui holds the browser client: a single page that polls /api/profile and
// posts care actions.
//
//go:embed all:ui
var uiFiles embed.FS

// init hands the page to the server before cli.Execute builds it.
func init() {
	sub, err := fs.Sub(uiFiles, "ui")
	if err != nil {
		return
	}
	server.SetUI(sub)
}
