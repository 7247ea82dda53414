package query

import (
	"fmt"
	"strings"
)

// Key identifies one cached resource and its parameters, e.g. "auction/7/bids".
type Key string

// NewKey joins a resource name and its parameters into a Key.
func NewKey(resource string, params ...any) Key {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, resource)
	for _, p := range params {
		parts = append(parts, fmt.Sprint(p))
	}
	return Key(strings.Join(parts, "/"))
}

// HasPrefix reports whether k equals prefix or lies under it.
func (k Key) HasPrefix(prefix Key) bool {
	if prefix == "" {
		return true
	}
	return k == prefix || strings.HasPrefix(string(k), string(prefix)+"/")
}

// Well-known keys shared between the request layer and invalidation rules.
func AuctionsKey(page, size int) Key  { return NewKey("auction", "list", page, size) }
func MyAuctionsKey(page, size int) Key { return NewKey("auction", "my", page, size) }
func AuctionKey(id string) Key        { return NewKey("auction", id) }
func BidsKey(auctionID string) Key    { return NewKey("auction", auctionID, "bids") }
func FavoritesKey(page, size int) Key { return NewKey("favorites", "my", page, size) }
func FavoriteCheckKey(listingID string) Key {
	return NewKey("favorites", "check", listingID)
}
func UsersKey(page, size int, search string, active *bool) Key {
	a := "any"
	if active != nil {
		a = fmt.Sprint(*active)
	}
	return NewKey("admin", "users", page, size, search, a)
}
