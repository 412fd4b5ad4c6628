// Package normalize canonicalises user-supplied text before it is stored.
package normalize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AllCategories is the explore filter value that disables category filtering.
const AllCategories = "all"

// Policies are safe for concurrent use once built; Casers are not.
var strictPolicy = bluemonday.StrictPolicy()

// Email trims and lower-cases an address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// PlainText strips every HTML element from s and collapses surrounding space.
// Entities are decoded so the stored value is plain text, not markup.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// Name is PlainText with inner runs of whitespace collapsed. Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(PlainText(s)), " ")
}

// Category returns the canonical title-cased form, so "sports", "SPORTS" and
// " Sports " all file under "Sports".
func Category(s string) string {
	s = Name(s)
	if s == "" {
		return ""
	}
	return cases.Title(language.English).String(s)
}

// CategoryFilter maps an explore query value to a repository filter; "" and
// "all" (any case) disable filtering.
func CategoryFilter(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), AllCategories) {
		return ""
	}
	return Category(s)
}
