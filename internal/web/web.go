// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web embeds the display page served by the local HTTP server and
// deployed as a static site next to the Lambda function.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var content embed.FS

// FS returns the static site rooted at index.html.
func FS() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
