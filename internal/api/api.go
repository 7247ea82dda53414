// Package api holds one request module per backend resource. Modules only
// build paths and parameters; paging defaults are filled by callers.
package api

import "ev-marketplace/internal/httpclient"

// Set bundles every request module over one transport.
type Set struct {
	Auctions  *AuctionAPI
	Bids      *BidAPI
	Auth      *AuthAPI
	Favorites *FavoriteAPI
	Listings  *ListingAPI
	Payments  *PaymentAPI
	Admin     *AdminAPI
}

// NewSet wires all modules to d.
func NewSet(d httpclient.Doer) *Set {
	return &Set{
		Auctions:  NewAuctionAPI(d),
		Bids:      NewBidAPI(d),
		Auth:      NewAuthAPI(d),
		Favorites: NewFavoriteAPI(d),
		Listings:  NewListingAPI(d),
		Payments:  NewPaymentAPI(d),
		Admin:     NewAdminAPI(d),
	}
}
