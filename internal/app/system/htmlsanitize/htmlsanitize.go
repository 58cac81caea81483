// Package htmlsanitize provides HTML sanitization for editor-generated rich
// text content (blog blocks, privacy/terms copy). It uses bluemonday to
// strip potentially dangerous HTML while preserving safe formatting.
package htmlsanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, creating it on first use.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		// Start with UGC (User Generated Content) policy as base
		policy = bluemonday.UGCPolicy()

		// Allow tables produced by the rich-text editor
		policy.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td")
		policy.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
		policy.AllowAttrs("class").OnElements("table", "th", "td", "tr")

		// Allow common text formatting
		policy.AllowElements("u", "s", "sub", "sup", "mark")

		// Allow figure/figcaption for embedded images
		policy.AllowElements("figure", "figcaption")

		// Data attributes are how the editor round-trips its node metadata
		policy.AllowDataAttributes()

		policy.AllowAttrs("style").OnElements("table", "th", "td")
	})
	return policy
}

// Sanitize cleans HTML input, removing potentially dangerous elements and
// attributes. It preserves safe formatting like bold, italic, lists, links,
// and tables.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return getPolicy().Sanitize(html)
}

// SanitizeLangMap sanitizes the string values of an {en, vi} (or any) map in
// place and returns it. Non-string values are left alone.
func SanitizeLangMap(m map[string]any) map[string]any {
	for k, v := range m {
		if s, ok := v.(string); ok {
			m[k] = Sanitize(s)
		}
	}
	return m
}
