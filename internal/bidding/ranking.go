package bidding

import (
	"ev-marketplace/internal/models"

	"github.com/google/btree"
)

// RankedBid is one row of the ranked display.
type RankedBid struct {
	models.Bid
	Rank    int
	Highest bool
}

type rankItem struct {
	bid   models.Bid
	order int // position in the server response
}

// rankLess orders by amount descending, then earliest CreatedAt, then the
// order the server returned the bids in. It never reorders bids the server
// considers equal.
func rankLess(a, b rankItem) bool {
	if a.bid.Amount != b.bid.Amount {
		return a.bid.Amount > b.bid.Amount
	}
	if !a.bid.CreatedAt.Equal(b.bid.CreatedAt) {
		return a.bid.CreatedAt.Before(b.bid.CreatedAt)
	}
	return a.order < b.order
}

// Rank derives the ranked view of a full bid snapshot. The first entry is
// flagged Highest. The input is not modified.
func Rank(bids []models.Bid) []RankedBid {
	if len(bids) == 0 {
		return []RankedBid{}
	}

	tree := btree.NewG[rankItem](8, rankLess)
	for i, b := range bids {
		tree.ReplaceOrInsert(rankItem{bid: b, order: i})
	}

	out := make([]RankedBid, 0, len(bids))
	tree.Ascend(func(it rankItem) bool {
		out = append(out, RankedBid{Bid: it.bid, Rank: len(out) + 1})
		return true
	})
	out[0].Highest = true
	return out
}

// Highest returns the top bid of a snapshot, using the same ordering as Rank.
func Highest(bids []models.Bid) (models.Bid, bool) {
	if len(bids) == 0 {
		return models.Bid{}, false
	}
	best := rankItem{bid: bids[0], order: 0}
	for i, b := range bids[1:] {
		if it := (rankItem{bid: b, order: i + 1}); rankLess(it, best) {
			best = it
		}
	}
	return best.bid, true
}
