// Package web holds the embedded static assets for the landing page.
package web

import "embed"

//go:embed static
var Assets embed.FS
