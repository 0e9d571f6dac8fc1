package content

import (
	stdhtml "html"
	"strings"
	"sync"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	markdownPolicyOnce sync.Once
	markdownPolicy     *bluemonday.Policy

	textPolicy = bluemonday.StrictPolicy()
)

// RenderMarkdown converts a description to HTML safe to embed in a page.
// Links open in a new tab; raw HTML in the source is dropped.
func RenderMarkdown(source string) string {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return ""
	}
	// Parsers carry state and cannot be reused.
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML,
	})
	out := markdown.ToHTML([]byte(trimmed), p, renderer)
	return strings.TrimSpace(markdownSanitizer().Sanitize(string(out)))
}

// SanitizeText removes every tag from user supplied text and returns plain
// text. Templates still escape the result.
func SanitizeText(raw string) string {
	return strings.TrimSpace(stdhtml.UnescapeString(textPolicy.Sanitize(raw)))
}

func markdownSanitizer() *bluemonday.Policy {
	markdownPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		markdownPolicy = policy
	})
	return markdownPolicy
}
