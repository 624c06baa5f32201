// Package catalog provides menu browsing and catalogue seed loading.
package catalog

import (
	"strings"
	"unicode"

	"coffee-kart/internal/model"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Matches reports whether a product should be listed for the selected category and search text.
// A nil category matches every product; an empty search matches every product.
// The search is a case and diacritic insensitive substring test against the product name.
func Matches(p model.Product, categoryID *string, searchText string) bool {
	if categoryID != nil && p.CategoryID != *categoryID {
		return false
	}

	if searchText == "" {
		return true
	}

	if p.Name == "" {
		return false
	}

	return strings.Contains(Fold(p.Name), Fold(searchText))
}

// Filter returns the products that pass Matches, in their original order.
func Filter(products []model.Product, categoryID *string, searchText string) []model.Product {
	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, categoryID, searchText) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Fold lowercases s and strips combining marks so "Cà Phê" and "ca phe" compare equal.
// The Vietnamese đ has no decomposition and is mapped to d explicitly.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	folded = strings.Map(func(r rune) rune {
		switch r {
		case 'đ', 'Đ':
			return 'd'
		}
		return r
	}, folded)

	return strings.ToLower(folded)
}
