package utils

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Post and comment bodies are plain text with optional markdown. Raw HTML in
// the source is never emitted by goldmark and the sanitizer catches the rest.
var (
	textRenderer = goldmark.New(
		goldmark.WithExtensions(extension.Linkify, extension.Strikethrough, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	textPolicy = newTextPolicy()
)

func newTextPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowImages()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)
	return p
}

// RenderMarkdown renders a post or comment body as safe HTML
func RenderMarkdown(source string) template.HTML {
	var out bytes.Buffer
	if err := textRenderer.Convert([]byte(source), &out); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return decorateContent(textPolicy.Sanitize(out.String()))
}

// Truncate cuts s to n characters, appending an ellipsis when shortened
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
