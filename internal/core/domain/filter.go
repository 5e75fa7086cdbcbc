package domain

import (
	"sort"
	"strings"
)

// AllCategories is the selector value meaning "do not filter by category".
const AllCategories = "All Categories"

type SortOrder int

const (
	SortNone SortOrder = iota
	SortPriceAsc
	SortPriceDesc
)

// FilterCriteria is the visible-subset selector for a catalog view.
// Zero values mean "no filter".
type FilterCriteria struct {
	SearchQuery string
	Category    string
	Sort        SortOrder
}

// FilterToys returns the visible ordered subset of catalog for the given
// criteria. The catalog slice is never mutated; equal prices keep their
// relative catalog order.
func FilterToys(catalog []Toy, c FilterCriteria) []Toy {
	result := make([]Toy, 0, len(catalog))

	query := strings.ToLower(strings.TrimSpace(c.SearchQuery))
	for _, toy := range catalog {
		if query != "" && !matchesQuery(toy, query) {
			continue
		}
		if c.Category != "" && c.Category != AllCategories &&
			toy.Category != c.Category {
			continue
		}
		result = append(result, toy)
	}

	switch c.Sort {
	case SortPriceAsc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price < result[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price > result[j].Price
		})
	}

	return result
}

func matchesQuery(toy Toy, query string) bool {
	if strings.Contains(strings.ToLower(toy.Name), query) {
		return true
	}
	return toy.Description != "" &&
		strings.Contains(strings.ToLower(toy.Description), query)
}
