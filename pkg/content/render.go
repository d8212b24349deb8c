package content

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// markdown renders admin-written content. Raw HTML in the source is dropped
// because WithUnsafe is not set.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Table),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// sanitizer strips anything markdown links can still smuggle in, such as
// javascript: URLs.
var sanitizer = bluemonday.UGCPolicy()

// RenderMarkdown converts markdown source to sanitized HTML.
func RenderMarkdown(src string) (string, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return sanitizer.Sanitize(buf.String()), nil
}
