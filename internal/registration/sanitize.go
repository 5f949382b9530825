package registration

import (
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// sanitize neutralizes embedded markup before storage: tag-like sequences
// are stripped, surrounding and repeated whitespace collapsed, and the
// remaining HTML metacharacters escaped.
func sanitize(value string) string {
	value = tagPattern.ReplaceAllString(value, "")
	value = strings.Join(strings.Fields(value), " ")
	return html.EscapeString(value)
}
