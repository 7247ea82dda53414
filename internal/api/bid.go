package api

import (
	"context"
	"net/url"

	"ev-marketplace/internal/httpclient"
	"ev-marketplace/internal/models"
)

// BidAPI maps the bids sub-resource of an auction.
type BidAPI struct {
	doer httpclient.Doer
}

// NewBidAPI returns a BidAPI sending through d.
func NewBidAPI(d httpclient.Doer) *BidAPI {
	return &BidAPI{doer: d}
}

func bidsPath(auctionID string) string {
	return "auction/" + url.PathEscape(auctionID) + "/bids"
}

// List returns every bid of an auction in server order.
func (b *BidAPI) List(ctx context.Context, auctionID string) ([]models.Bid, error) {
	bids, err := httpclient.Get[[]models.Bid](ctx, b.doer, bidsPath(auctionID), nil)
	if err != nil {
		return nil, err
	}
	if bids == nil {
		bids = []models.Bid{}
	}
	return bids, nil
}

// Highest returns the backend's own view of the highest bid.
func (b *BidAPI) Highest(ctx context.Context, auctionID string) (models.Bid, error) {
	return httpclient.Get[models.Bid](ctx, b.doer, bidsPath(auctionID)+"/highest", nil)
}

// Place submits a bid. Acceptance is decided by the backend only.
func (b *BidAPI) Place(ctx context.Context, auctionID string, amount float64) (models.Bid, error) {
	return httpclient.Post[models.Bid](ctx, b.doer, bidsPath(auctionID), models.PlaceBidRequest{Amount: amount})
}
