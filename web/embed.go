// Package web holds the embedded HTML templates of the dashboard.
package web

import "embed"

//go:embed templates/*.html
var TemplateFS embed.FS
