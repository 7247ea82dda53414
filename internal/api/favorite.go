package api

import (
	"context"
	"net/url"

	"ev-marketplace/internal/httpclient"
	"ev-marketplace/internal/models"
)

// FavoriteAPI maps the Favorites resource.
type FavoriteAPI struct {
	doer httpclient.Doer
}

// NewFavoriteAPI returns a FavoriteAPI sending through d.
func NewFavoriteAPI(d httpclient.Doer) *FavoriteAPI {
	return &FavoriteAPI{doer: d}
}

// Add saves a listing to the caller's favorites.
func (f *FavoriteAPI) Add(ctx context.Context, listingID string) (models.Favorite, error) {
	return httpclient.Post[models.Favorite](ctx, f.doer, "Favorites", models.CreateFavoriteRequest{ListingID: listingID})
}

// Mine returns one page of the caller's favorites.
func (f *FavoriteAPI) Mine(ctx context.Context, page models.PageQuery) (models.Paged[models.Favorite], error) {
	return httpclient.Get[models.Paged[models.Favorite]](ctx, f.doer, "Favorites/my", page.Values())
}

// Check reports whether a listing is in the caller's favorites.
func (f *FavoriteAPI) Check(ctx context.Context, listingID string) (models.FavoriteCheck, error) {
	return httpclient.Get[models.FavoriteCheck](ctx, f.doer, "Favorites/check/"+url.PathEscape(listingID), nil)
}

// Remove deletes a favorite by its own id.
func (f *FavoriteAPI) Remove(ctx context.Context, favoriteID string) error {
	return httpclient.Delete(ctx, f.doer, "Favorites/"+url.PathEscape(favoriteID))
}
