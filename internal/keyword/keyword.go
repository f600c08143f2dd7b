// Package keyword provides the shared category→keyword configuration
// structure used by the intent, bucket and trait analyzers. All three
// subsystems score lower-cased substring matches against ordered tables,
// so the scoring helpers live in one place to keep the tables from
// drifting apart.
package keyword

import "strings"

// Category pairs a label with the keywords that indicate it.
type Category struct {
	Name     string
	Keywords []string
}

// Table is an ordered list of categories. Order is significant: scoring
// ties are broken by declaration order.
type Table []Category

// Hits returns the number of keywords of the category found as substrings
// of text. Text must already be lower-cased.
func (c Category) Hits(text string) int {
	n := 0
	for _, kw := range c.Keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// Matches reports whether any keyword of the category appears in text.
// Text must already be lower-cased.
func (c Category) Matches(text string) bool {
	for _, kw := range c.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Find returns the category with the given name, if the table declares it.
func (t Table) Find(name string) (Category, bool) {
	for _, c := range t {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Names returns the category labels in declaration order.
func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, c := range t {
		names[i] = c.Name
	}
	return names
}
