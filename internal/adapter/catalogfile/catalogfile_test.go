package catalogfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toytopia/toystore/internal/adapter/catalogfile"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSourceReadToys(t *testing.T) {
	t.Run("ParsesRecords", func(t *testing.T) {
		path := writeCatalog(t, `{
			"toys": [
				{
					"id": "toy-1",
					"name": "Robot Explorer",
					"description": "A programmable walking robot",
					"price": 49.99,
					"category": "Electronic",
					"rating": 4.5,
					"availableQuantity": 12,
					"image": "https://cdn.example.com/robot.png",
					"sellerName": "RoboWorks"
				},
				{"id": "toy-2", "name": "Wooden Train", "price": 19.99}
			]
		}`)

		toys, err := catalogfile.New(path).ReadToys()
		require.NoError(t, err)
		require.Len(t, toys, 2)

		assert.Equal(t, "toy-1", toys[0].ToyID)
		assert.Equal(t, "Robot Explorer", toys[0].Name)
		assert.Equal(t, 49.99, toys[0].Price)
		assert.Equal(t, "https://cdn.example.com/robot.png", toys[0].ImageURL)

		assert.Empty(t, toys[1].Description)
	})

	t.Run("SkipsMalformedRecords", func(t *testing.T) {
		path := writeCatalog(t, `{
			"toys": [
				{"id": "", "name": "No id", "price": 1},
				{"id": "toy-1", "name": "", "price": 1},
				{"id": "toy-2", "name": "Negative", "price": -5},
				{"id": "toy-3", "name": "Fine", "price": 5}
			]
		}`)

		toys, err := catalogfile.New(path).ReadToys()
		require.NoError(t, err)
		require.Len(t, toys, 1)
		assert.Equal(t, "toy-3", toys[0].ToyID)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := catalogfile.New("nowhere/catalog.json").ReadToys()
		require.Error(t, err)
	})

	t.Run("UnparseableFile", func(t *testing.T) {
		path := writeCatalog(t, "{half a json")
		_, err := catalogfile.New(path).ReadToys()
		require.Error(t, err)
	})
}
