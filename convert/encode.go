package convert

import (
	"net/url"
	"strings"
)

// PercentEncode escapes every byte of s outside the unreserved set
// A-Z a-z 0-9 - _ . ~ as %XX. Spaces become %20.
func PercentEncode(s string) string {
	// QueryEscape escapes a literal '+' as %2B, so any '+' left is a space.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
