// Package ui embeds the browser front-end served at the root path.
package ui

import (
	_ "embed"
)

// IndexHTML is the single-page blog assistant. It talks to /api/v1 and
// keeps the same placeholder rules as the terminal client.
//
//go:embed index.html
var IndexHTML []byte
