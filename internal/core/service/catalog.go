package service

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/toytopia/toystore/internal/core/domain"
	"github.com/toytopia/toystore/internal/core/port"
)

var _ port.CatalogReader = (*Catalog)(nil)

// Catalog serves read-only views over the toy catalog. The catalog is
// loaded once at construction and is immutable afterwards, so all methods
// are safe for concurrent use.
type Catalog struct {
	toys       []domain.Toy
	byID       map[string]domain.Toy
	categories []string
}

func NewCatalog(src port.CatalogSource) (*Catalog, error) {
	const op = "NewCatalog"

	toys, err := src.ReadToys()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c := &Catalog{
		toys: toys,
		byID: make(map[string]domain.Toy, len(toys)),
	}

	seen := make(map[string]struct{})
	for _, t := range toys {
		c.byID[t.ToyID] = t
		if _, ok := seen[t.Category]; !ok && t.Category != "" {
			seen[t.Category] = struct{}{}
			c.categories = append(c.categories, t.Category)
		}
	}
	sort.Strings(c.categories)

	slog.Info("catalog is loaded", "op", op, "nToys", len(toys))
	return c, nil
}

// Toys returns the visible subset for the given criteria in display order.
func (c *Catalog) Toys(criteria domain.FilterCriteria) []domain.Toy {
	return domain.FilterToys(c.toys, criteria)
}

func (c *Catalog) Toy(toyID string) (domain.Toy, bool) {
	t, ok := c.byID[toyID]
	return t, ok
}

// Categories returns the "all" sentinel followed by the distinct category
// labels present in the catalog, sorted.
func (c *Catalog) Categories() []string {
	res := make([]string, 0, len(c.categories)+1)
	res = append(res, domain.AllCategories)
	return append(res, c.categories...)
}
