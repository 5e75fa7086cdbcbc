package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toytopia/toystore/internal/core/domain"
	"github.com/toytopia/toystore/internal/core/service"
)

type stubCatalogSource struct {
	toys []domain.Toy
	err  error
}

func (s stubCatalogSource) ReadToys() ([]domain.Toy, error) {
	return s.toys, s.err
}

func TestCatalog(t *testing.T) {
	src := stubCatalogSource{toys: []domain.Toy{
		{ToyID: "toy-1", Name: "Robot", Price: 49.99, Category: "Electronic"},
		{ToyID: "toy-2", Name: "Train", Price: 19.99, Category: "Wooden"},
		{ToyID: "toy-3", Name: "Blocks", Price: 9.99, Category: "Wooden"},
	}}

	t.Run("ToyLookup", func(t *testing.T) {
		c, err := service.NewCatalog(src)
		require.NoError(t, err)

		toy, ok := c.Toy("toy-2")
		require.True(t, ok)
		assert.Equal(t, "Train", toy.Name)

		_, ok = c.Toy("toy-9")
		assert.False(t, ok)
	})

	t.Run("ToysApplyCriteria", func(t *testing.T) {
		c, err := service.NewCatalog(src)
		require.NoError(t, err)

		got := c.Toys(domain.FilterCriteria{
			Category: "Wooden", Sort: domain.SortPriceAsc,
		})
		require.Len(t, got, 2)
		assert.Equal(t, "toy-3", got[0].ToyID)
		assert.Equal(t, "toy-2", got[1].ToyID)
	})

	t.Run("CategoriesSentinelFirst", func(t *testing.T) {
		c, err := service.NewCatalog(src)
		require.NoError(t, err)

		assert.Equal(
			t,
			[]string{domain.AllCategories, "Electronic", "Wooden"},
			c.Categories(),
		)
	})

	t.Run("SourceFailure", func(t *testing.T) {
		_, err := service.NewCatalog(stubCatalogSource{
			err: errors.New("file is missing"),
		})
		require.Error(t, err)
	})
}
