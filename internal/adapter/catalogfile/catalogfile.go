// Package catalogfile loads the static toy catalog shipped with the
// storefront. The file is read once at startup; the catalog is immutable
// for the process lifetime.
package catalogfile

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/toytopia/toystore/internal/core/domain"
	"github.com/toytopia/toystore/internal/core/port"
)

var _ port.CatalogSource = (*Source)(nil)

type (
	catalogFile struct {
		Toys []toyRecord `json:"toys"`
	}

	toyRecord struct {
		ID                string  `json:"id"`
		Name              string  `json:"name"`
		Description       string  `json:"description"`
		Price             float64 `json:"price"`
		Category          string  `json:"category"`
		Rating            float64 `json:"rating"`
		AvailableQuantity int     `json:"availableQuantity"`
		Image             string  `json:"image"`
		SellerName        string  `json:"sellerName"`
	}
)

type Source struct {
	path string
}

func New(path string) Source {
	return Source{path}
}

// ReadToys parses the catalog file. Records missing an id or a name, or
// carrying a negative price, are skipped with a warning; an unreadable or
// unparseable file is an error.
func (s Source) ReadToys() ([]domain.Toy, error) {
	const op = "Source.ReadToys"
	log := slog.With("op", op)

	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var f catalogFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%s: failed to parse catalog: %w", op, err)
	}

	toys := make([]domain.Toy, 0, len(f.Toys))
	for _, r := range f.Toys {
		if r.ID == "" || r.Name == "" || r.Price < 0 {
			log.Warn("skipping malformed catalog record", "id", r.ID)
			continue
		}
		toys = append(toys, domain.Toy{
			ToyID:             r.ID,
			Name:              r.Name,
			Description:       r.Description,
			Price:             r.Price,
			Category:          r.Category,
			Rating:            r.Rating,
			AvailableQuantity: r.AvailableQuantity,
			ImageURL:          r.Image,
			SellerName:        r.SellerName,
		})
	}
	return toys, nil
}
