package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toytopia/toystore/internal/core/domain"
)

func TestFoldCount(t *testing.T) {
	t.Run("AddIncrements", func(t *testing.T) {
		cnt, ok := foldCount(0, domain.FavoriteAdded)
		require.True(t, ok)
		assert.EqualValues(t, 1, cnt)

		cnt, ok = foldCount(cnt, domain.FavoriteAdded)
		require.True(t, ok)
		assert.EqualValues(t, 2, cnt)
	})

	t.Run("RemoveDecrements", func(t *testing.T) {
		cnt, ok := foldCount(2, domain.FavoriteRemoved)
		require.True(t, ok)
		assert.EqualValues(t, 1, cnt)
	})

	t.Run("NeverBelowZero", func(t *testing.T) {
		cnt, ok := foldCount(0, domain.FavoriteRemoved)
		require.True(t, ok)
		assert.EqualValues(t, 0, cnt)
	})

	t.Run("UnknownAction", func(t *testing.T) {
		cnt, ok := foldCount(3, domain.FavoriteAction("archived"))
		assert.False(t, ok)
		assert.EqualValues(t, 3, cnt)
	})
}

func TestCountValueCodec(t *testing.T) {
	codec := countValueCodec{}

	t.Run("RoundTrip", func(t *testing.T) {
		b, err := codec.Encode(countValue(42))
		require.NoError(t, err)

		v, err := codec.Decode(b)
		require.NoError(t, err)
		assert.Equal(t, countValue(42), v)
	})

	t.Run("RejectsForeignType", func(t *testing.T) {
		_, err := codec.Encode("42")
		assert.ErrorIs(t, err, ErrInvalidValueType)
	})

	t.Run("RejectsGarbage", func(t *testing.T) {
		_, err := codec.Decode([]byte("not a number"))
		assert.Error(t, err)
	})
}
