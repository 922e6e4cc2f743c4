package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemHistoryConversion(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	history := NewItemHistory(repo)

	t.Run("no neighbour means nil ref", func(t *testing.T) {
		ref, err := history.LastForItem(ctx, "drill", testNow)
		require.NoError(t, err)
		assert.Nil(t, ref)

		ref, err = history.NextForItem(ctx, "drill", testNow)
		require.NoError(t, err)
		assert.Nil(t, ref)
	})

	t.Run("booking converts to ref", func(t *testing.T) {
		b := &Booking{
			ID:       "b1",
			ItemID:   "drill",
			BookerID: "booker",
			Start:    testNow.Add(-2 * time.Hour),
			End:      testNow.Add(-time.Hour),
		}

		ref := toRef(b)
		require.NotNil(t, ref)
		assert.Equal(t, b.ID, ref.ID)
		assert.Equal(t, b.ItemID, ref.ItemID)
		assert.Equal(t, b.BookerID, ref.BookerID)
		assert.Equal(t, b.Start, ref.Start)
		assert.Equal(t, b.End, ref.End)
	})
}
