// Package markdown renders draft text for the browser preview.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Raw HTML in the source is dropped: goldmark escapes it unless the
// unsafe renderer option is set.
var md = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))

// ToHTML converts markdown to an HTML fragment.
func ToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
