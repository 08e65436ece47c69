package search

import (
	"strings"

	"github.com/matst80/slask-catalog/pkg/types"
)

// MatchesText reports whether text is a case-insensitive substring of the title.
// Empty text matches every product.
func MatchesText(p *types.Product, lowerText string) bool {
	if lowerText == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), lowerText)
}

// MatchesCategory is an exact match; an empty category matches every product.
func MatchesCategory(p *types.Product, category string) bool {
	return category == "" || p.Category == category
}

// Filter returns a new slice with the products matching both text and category,
// in catalog order.
func Filter(catalog types.Catalog, text, category string) []types.Product {
	lowerText := strings.ToLower(text)
	ret := make([]types.Product, 0, len(catalog))
	for i := range catalog {
		p := &catalog[i]
		if MatchesText(p, lowerText) && MatchesCategory(p, category) {
			ret = append(ret, *p)
		}
	}
	return ret
}
