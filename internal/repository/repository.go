package repository

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"ev-marketplace/internal/marketerrors"
	"ev-marketplace/internal/models"
)

// UserRecord is a stored account with its password hash.
type UserRecord struct {
	models.User
	Address      string
	PasswordHash []byte
}

// Profile is the public view of the account.
func (u UserRecord) Profile() models.Profile {
	return models.Profile{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
		Address:  u.Address,
		Role:     u.Role,
	}
}

// BidRule decides, under the repository lock, whether bid may be recorded
// given the auction and its current highest bid (nil when there is none).
type BidRule func(auction models.Auction, highest *models.Bid) error

// MarketDB defines the storage of the marketplace backend.
type MarketDB interface {
	CreateUser(u UserRecord) error
	GetUser(userID string) (UserRecord, error)
	GetUserByEmail(email string) (UserRecord, error)
	ListUsers() []UserRecord

	AddListing(l models.Listing) error
	GetListing(listingID string) (models.Listing, error)

	AddAuction(a models.Auction) error
	GetAuction(auctionID string) (models.Auction, error)
	ListAuctions() []models.Auction

	RecordBid(bid models.Bid, rule BidRule) error
	GetBids(auctionID string) ([]models.Bid, error)
	GetHighestBid(auctionID string) (models.Bid, error)

	AddFavorite(f models.Favorite) error
	ListFavorites(userID string) []models.Favorite
	FindFavorite(userID, listingID string) (models.Favorite, error)
	DeleteFavorite(userID, favoriteID string) error

	AddOrder(o models.Order) error
	GetOrder(orderID string) (models.Order, error)
}

// MemoryRepo is a concurrency-safe in-memory implementation of MarketDB
type MemoryRepo struct {
	mu        sync.RWMutex
	users     map[string]UserRecord        // key: userID
	emails    map[string]string            // key: lower-cased email -> userID
	listings  map[string]models.Listing    // key: listingID
	auctions  map[string]models.Auction    // key: auctionID
	order     []string                     // auction ids in creation order
	bids      map[string][]models.Bid      // key: auctionID -> bids in arrival order
	favorites map[string][]models.Favorite // key: userID
	orders    map[string]models.Order      // key: orderID
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:     make(map[string]UserRecord),
		emails:    make(map[string]string),
		listings:  make(map[string]models.Listing),
		auctions:  make(map[string]models.Auction),
		bids:      make(map[string][]models.Bid),
		favorites: make(map[string][]models.Favorite),
		orders:    make(map[string]models.Order),
	}
}

func emailKey(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

// CreateUser stores a new account; emails are unique case-insensitively.
func (r *MemoryRepo) CreateUser(u UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(u.Email)
	if _, taken := r.emails[key]; taken {
		return fmt.Errorf("create user %s: %w", u.Email, marketerrors.ErrUserExists)
	}
	r.users[u.ID] = u
	r.emails[key] = u.ID
	return nil
}

// GetUser returns the account with userID.
func (r *MemoryRepo) GetUser(userID string) (UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return UserRecord{}, fmt.Errorf("get user %s: %w", userID, marketerrors.ErrUserNotFound)
	}
	return u, nil
}

// GetUserByEmail returns the account registered with email.
func (r *MemoryRepo) GetUserByEmail(email string) (UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emails[emailKey(email)]
	if !ok {
		return UserRecord{}, fmt.Errorf("get user by email: %w", marketerrors.ErrUserNotFound)
	}
	return r.users[id], nil
}

// ListUsers returns every account, oldest first.
func (r *MemoryRepo) ListUsers() []UserRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]UserRecord, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AddListing stores a listing.
func (r *MemoryRepo) AddListing(l models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.ID == "" {
		return fmt.Errorf("add listing: %w - empty id", marketerrors.ErrInvalidInput)
	}
	r.listings[l.ID] = l
	return nil
}

// GetListing returns the listing with listingID.
func (r *MemoryRepo) GetListing(listingID string) (models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.listings[listingID]
	if !ok {
		return models.Listing{}, fmt.Errorf("get listing %s: %w", listingID, marketerrors.ErrListingNotFound)
	}
	return l, nil
}

// AddAuction stores an auction for an existing listing.
func (r *MemoryRepo) AddAuction(a models.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[a.ListingID]; !ok {
		return fmt.Errorf("add auction for listing %s: %w", a.ListingID, marketerrors.ErrListingNotFound)
	}
	if _, exists := r.auctions[a.ID]; !exists {
		r.order = append(r.order, a.ID)
	}
	r.auctions[a.ID] = a
	return nil
}

// GetAuction returns the auction with its listing and bid summary filled in.
func (r *MemoryRepo) GetAuction(auctionID string) (models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return models.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, marketerrors.ErrAuctionNotFound)
	}
	return r.decorateLocked(a), nil
}

// ListAuctions returns every auction in creation order.
func (r *MemoryRepo) ListAuctions() []models.Auction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Auction, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.decorateLocked(r.auctions[id]))
	}
	return out
}

func (r *MemoryRepo) decorateLocked(a models.Auction) models.Auction {
	if l, ok := r.listings[a.ListingID]; ok {
		l.Images = nil
		a.Listing = &l
	}
	bids := r.bids[a.ID]
	total := len(bids)
	a.TotalBids = &total
	if h := highest(bids); h != nil {
		price := h.Amount
		a.CurrentPrice = &price
	}
	return a
}

// RecordBid appends bid to its auction if rule accepts it. The check and
// the write happen under one lock.
func (r *MemoryRepo) RecordBid(bid models.Bid, rule BidRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[bid.AuctionID]
	if !ok {
		return fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, marketerrors.ErrAuctionNotFound)
	}
	if rule != nil {
		if err := rule(a, highest(r.bids[a.ID])); err != nil {
			return err
		}
	}
	r.bids[a.ID] = append(r.bids[a.ID], bid)
	return nil
}

// GetBids returns the bids of an auction in arrival order.
func (r *MemoryRepo) GetBids(auctionID string) ([]models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, marketerrors.ErrAuctionNotFound)
	}
	return append([]models.Bid{}, r.bids[auctionID]...), nil
}

// GetHighestBid returns the highest bid; ties go to the earliest.
func (r *MemoryRepo) GetHighestBid(auctionID string) (models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return models.Bid{}, fmt.Errorf("get highest bid for auction %s: %w", auctionID, marketerrors.ErrAuctionNotFound)
	}
	h := highest(r.bids[auctionID])
	if h == nil {
		return models.Bid{}, fmt.Errorf("get highest bid for auction %s: %w", auctionID, marketerrors.ErrNoBids)
	}
	return *h, nil
}

func highest(bids []models.Bid) *models.Bid {
	if len(bids) == 0 {
		return nil
	}
	winning := bids[0]
	for _, b := range bids[1:] {
		if b.Amount > winning.Amount || (b.Amount == winning.Amount && b.CreatedAt.Before(winning.CreatedAt)) {
			winning = b
		}
	}
	return &winning
}

// AddFavorite saves a listing for a user. Saving twice is an error.
func (r *MemoryRepo) AddFavorite(f models.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[f.ListingID]; !ok {
		return fmt.Errorf("add favorite for listing %s: %w", f.ListingID, marketerrors.ErrListingNotFound)
	}
	for _, existing := range r.favorites[f.UserID] {
		if existing.ListingID == f.ListingID {
			return fmt.Errorf("add favorite for listing %s: %w - already saved", f.ListingID, marketerrors.ErrInvalidInput)
		}
	}
	r.favorites[f.UserID] = append(r.favorites[f.UserID], f)
	return nil
}

// ListFavorites returns a user's favorites, oldest first, with listings attached.
func (r *MemoryRepo) ListFavorites(userID string) []models.Favorite {
	r.mu.RLock()
	defer r.mu.RUnlock()

	favs := r.favorites[userID]
	out := make([]models.Favorite, 0, len(favs))
	for _, f := range favs {
		if l, ok := r.listings[f.ListingID]; ok {
			l.Images = nil
			f.Listing = &l
		}
		out = append(out, f)
	}
	return out
}

// FindFavorite returns the favorite of userID for listingID.
func (r *MemoryRepo) FindFavorite(userID, listingID string) (models.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.favorites[userID] {
		if f.ListingID == listingID {
			return f, nil
		}
	}
	return models.Favorite{}, fmt.Errorf("find favorite for listing %s: %w", listingID, marketerrors.ErrFavoriteNotFound)
}

// DeleteFavorite removes one of userID's favorites.
func (r *MemoryRepo) DeleteFavorite(userID, favoriteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	favs := r.favorites[userID]
	for i, f := range favs {
		if f.ID == favoriteID {
			r.favorites[userID] = append(favs[:i:i], favs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete favorite %s: %w", favoriteID, marketerrors.ErrFavoriteNotFound)
}

// AddOrder stores an order for an existing listing.
func (r *MemoryRepo) AddOrder(o models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[o.ListingID]; !ok {
		return fmt.Errorf("add order for listing %s: %w", o.ListingID, marketerrors.ErrListingNotFound)
	}
	r.orders[o.ID] = o
	return nil
}

// GetOrder returns the order with orderID.
func (r *MemoryRepo) GetOrder(orderID string) (models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[orderID]
	if !ok {
		return models.Order{}, fmt.Errorf("get order %s: %w", orderID, marketerrors.ErrOrderNotFound)
	}
	return o, nil
}
