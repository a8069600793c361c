package nav

import (
	"strings"
	"unicode"
)

// Slugify derives the URL segment for a report label: the label is lowercased and every
// run of whitespace and/or '&' becomes a single hyphen. Leading and trailing hyphens are
// trimmed. All other characters pass through unchanged.
//
//	Slugify("Account Payable Aging Summary") == "account-payable-aging-summary"
//	Slugify("Profit & Loss") == "profit-loss"
func Slugify(label string) string {
	var b strings.Builder
	b.Grow(len(label))

	separator := false
	for _, r := range label {
		if unicode.IsSpace(r) || r == '&' {
			separator = true
			continue
		}
		if separator && b.Len() > 0 {
			b.WriteByte('-')
		}
		separator = false
		b.WriteRune(unicode.ToLower(r))
	}

	return strings.Trim(b.String(), "-")
}
