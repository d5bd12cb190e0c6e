package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Permissive anchor matcher: opening <a, optional attributes, an href with a
// single- or double-quoted value, optional trailing attributes. Only the href
// value (group 1) is ever touched.
var anchorHrefRe = regexp.MustCompile(`(?i)<a\s+(?:[^>]*\s+)?href=["']([^"']+)["'][^>]*>`)

// RewriteLinks replaces every anchor destination in body with a redirect URL
// of the form {base}/click/{token}/{index} and returns the extracted original
// URLs in body order (index 0 = first anchor). Every other byte of the body,
// including quote style and surrounding attributes, is preserved verbatim. A
// body with no anchors comes back unchanged with no URLs.
func RewriteLinks(body, baseURL string, token uuid.UUID) (string, []string) {
	matches := anchorHrefRe.FindAllStringSubmatchIndex(body, -1)
	if len(matches) == 0 {
		return body, nil
	}

	var b strings.Builder
	urls := make([]string, 0, len(matches))
	last := 0
	for i, m := range matches {
		start, end := m[2], m[3]
		urls = append(urls, body[start:end])
		b.WriteString(body[last:start])
		fmt.Fprintf(&b, "%s/click/%s/%d", baseURL, token, i)
		last = end
	}
	b.WriteString(body[last:])
	return b.String(), urls
}

// TrackingPixel returns the open-tracking image tag appended to every
// outbound body.
func TrackingPixel(baseURL string, token uuid.UUID) string {
	return fmt.Sprintf(
		`<img src="%s/track/%s" width="1" height="1" alt="" style="display:none;" />`,
		baseURL, token,
	)
}
