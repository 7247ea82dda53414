package bidding

import (
	"math"
	"testing"
	"time"

	"ev-marketplace/internal/models"

	"github.com/stretchr/testify/require"
)

func newBid(id string, amount float64, createdAt time.Time) models.Bid {
	return models.Bid{ID: id, AuctionID: "7", BidderID: "user-" + id, Amount: amount, CreatedAt: createdAt}
}

func TestRank_TieBrokenByEarliestCreation(t *testing.T) {
	t1 := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	ranked := Rank([]models.Bid{
		newBid("a", 500000, t1),
		newBid("b", 700000, t2),
		newBid("c", 700000, t1),
	})

	require.Len(t, ranked, 3)
	require.Equal(t, "c", ranked[0].ID)
	require.Equal(t, "b", ranked[1].ID)
	require.Equal(t, "a", ranked[2].ID)

	require.True(t, ranked[0].Highest)
	require.False(t, ranked[1].Highest)
	require.False(t, ranked[2].Highest)
	require.Equal(t, 700000.0, ranked[0].Amount)
	require.Equal(t, t1, ranked[0].CreatedAt)

	for i, r := range ranked {
		require.Equal(t, i+1, r.Rank)
	}

	best, ok := Highest([]models.Bid{newBid("a", 500000, t1), newBid("b", 700000, t2), newBid("c", 700000, t1)})
	require.True(t, ok)
	require.Equal(t, "c", best.ID)
}

func TestRank_FullTieKeepsServerOrder(t *testing.T) {
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	ranked := Rank([]models.Bid{
		newBid("first", 100, at),
		newBid("second", 100, at),
		newBid("third", 100, at),
	})

	require.Equal(t, []string{"first", "second", "third"}, []string{ranked[0].ID, ranked[1].ID, ranked[2].ID})

	best, _ := Highest([]models.Bid{newBid("first", 100, at), newBid("second", 100, at)})
	require.Equal(t, "first", best.ID)
}

func TestRank_EdgeCases(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		bids    []models.Bid
		wantIDs []string
	}{
		{name: "empty", bids: nil, wantIDs: []string{}},
		{name: "single", bids: []models.Bid{newBid("x", 1, now)}, wantIDs: []string{"x"}},
		{
			name:    "max_float",
			bids:    []models.Bid{newBid("small", 10, now), newBid("huge", math.MaxFloat64, now.Add(time.Second))},
			wantIDs: []string{"huge", "small"},
		},
		{
			name:    "already_sorted_ascending_input",
			bids:    []models.Bid{newBid("1", 1, now), newBid("2", 2, now), newBid("3", 3, now)},
			wantIDs: []string{"3", "2", "1"},
		},
		{
			name:    "duplicate_ids_not_collapsed",
			bids:    []models.Bid{newBid("same", 5, now), newBid("same", 5, now)},
			wantIDs: []string{"same", "same"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ranked := Rank(tc.bids)
			ids := make([]string, 0, len(ranked))
			for _, r := range ranked {
				ids = append(ids, r.ID)
			}
			require.Equal(t, tc.wantIDs, ids)
			if len(ranked) > 0 {
				require.True(t, ranked[0].Highest)
			}
		})
	}

	_, ok := Highest(nil)
	require.False(t, ok)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	now := time.Now()
	in := []models.Bid{newBid("a", 1, now), newBid("b", 2, now)}
	_ = Rank(in)
	require.Equal(t, "a", in[0].ID)
	require.Equal(t, "b", in[1].ID)
}
