// Package web holds the HTML templates and static assets compiled into the
// server binary.
package web

import "embed"

//go:embed templates static
var Files embed.FS
