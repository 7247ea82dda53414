package api

import (
	"context"
	"net/url"

	"ev-marketplace/internal/httpclient"
	"ev-marketplace/internal/models"
)

// AuctionAPI maps the auction resource.
type AuctionAPI struct {
	doer httpclient.Doer
}

// NewAuctionAPI returns an AuctionAPI sending through d.
func NewAuctionAPI(d httpclient.Doer) *AuctionAPI {
	return &AuctionAPI{doer: d}
}

// Create starts an auction for one of the caller's listings.
func (a *AuctionAPI) Create(ctx context.Context, req models.CreateAuctionRequest) (models.Auction, error) {
	return httpclient.Post[models.Auction](ctx, a.doer, "auction", req)
}

// List returns one page of all auctions.
func (a *AuctionAPI) List(ctx context.Context, page models.PageQuery) (models.Paged[models.Auction], error) {
	return httpclient.Get[models.Paged[models.Auction]](ctx, a.doer, "auction", page.Values())
}

// Mine returns one page of the caller's auctions.
func (a *AuctionAPI) Mine(ctx context.Context, page models.PageQuery) (models.Paged[models.Auction], error) {
	return httpclient.Get[models.Paged[models.Auction]](ctx, a.doer, "auction/my", page.Values())
}

// Get returns one auction.
func (a *AuctionAPI) Get(ctx context.Context, auctionID string) (models.Auction, error) {
	return httpclient.Get[models.Auction](ctx, a.doer, "auction/"+url.PathEscape(auctionID), nil)
}
