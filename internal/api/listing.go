package api

import (
	"context"

	"ev-marketplace/internal/httpclient"
	"ev-marketplace/internal/models"
)

// ListingAPI maps the Listings resource.
type ListingAPI struct {
	doer httpclient.Doer
}

// NewListingAPI returns a ListingAPI sending through d.
func NewListingAPI(d httpclient.Doer) *ListingAPI {
	return &ListingAPI{doer: d}
}

// Create publishes a listing.
func (l *ListingAPI) Create(ctx context.Context, req models.CreateListingRequest) (models.Listing, error) {
	return httpclient.Post[models.Listing](ctx, l.doer, "Listings", req)
}
