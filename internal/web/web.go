// Package web holds the embedded static assets for the wizard front-end.
package web

import _ "embed"

// IndexHTML is the wizard's front-end page, served at GET /.
//
//go:embed index.html
var IndexHTML []byte
