package market

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"ev-marketplace/internal/marketerrors"
	"ev-marketplace/internal/models"
	"ev-marketplace/internal/repository"
	"ev-marketplace/utils"

	"golang.org/x/crypto/bcrypt"
)

// MarketService holds the business rules of the development backend.
type MarketService struct {
	repo       repository.MarketDB
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
	orderCodes atomic.Int64
}

// Option customizes a MarketService.
type Option func(*MarketService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *MarketService) { s.now = now }
}

// WithBcryptCost lowers the hashing cost, for tests.
func WithBcryptCost(cost int) Option {
	return func(s *MarketService) { s.bcryptCost = cost }
}

// NewMarketService creates a new MarketService instance
func NewMarketService(repo repository.MarketDB, jwtSecret string, tokenTTL time.Duration, opts ...Option) *MarketService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	s := &MarketService{
		repo:       repo,
		secret:     []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.orderCodes.Store(s.now().Unix() % 1_000_000 * 1000)
	return s
}

// CreateListing stores a listing owned by sellerID.
func (s *MarketService) CreateListing(sellerID string, req models.CreateListingRequest) (models.Listing, error) {
	if sellerID == "" {
		return models.Listing{}, fmt.Errorf("service: %w - missing seller", marketerrors.ErrInvalidInput)
	}
	l := models.Listing{
		ID:          utils.GenerateID(),
		SellerID:    sellerID,
		Category:    req.Category,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Price:       req.Price,
		Brand:       req.Brand,
		Model:       req.Model,
		Year:        req.Year,
		Condition:   req.Condition,
		Battery:     req.Battery,
		EBike:       req.EBike,
		Images:      req.Images,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.AddListing(l); err != nil {
		return models.Listing{}, fmt.Errorf("service: create listing: %w", err)
	}
	return l, nil
}

// CreateAuction opens an auction on one of the seller's listings.
func (s *MarketService) CreateAuction(sellerID string, req models.CreateAuctionRequest) (models.Auction, error) {
	if !req.EndTime.After(req.StartTime) {
		return models.Auction{}, fmt.Errorf("service: %w - auction must end after it starts", marketerrors.ErrInvalidInput)
	}
	listing, err := s.repo.GetListing(req.ListingID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: create auction: %w", err)
	}
	if listing.SellerID != sellerID {
		return models.Auction{}, fmt.Errorf("service: create auction on listing %s: %w", listing.ID, marketerrors.ErrForbidden)
	}

	a := models.Auction{
		ID:            utils.GenerateID(),
		ListingID:     listing.ID,
		SellerID:      sellerID,
		StartingPrice: req.StartingPrice,
		StartTime:     req.StartTime.UTC(),
		EndTime:       req.EndTime.UTC(),
	}
	if err := s.repo.AddAuction(a); err != nil {
		return models.Auction{}, fmt.Errorf("service: create auction: %w", err)
	}
	return s.repo.GetAuction(a.ID)
}

// ListAuctions returns one page of all auctions.
func (s *MarketService) ListAuctions(q models.PageQuery) models.Paged[models.Auction] {
	return models.NewPaged(s.repo.ListAuctions(), q)
}

// MyAuctions returns one page of the auctions sellerID created.
func (s *MarketService) MyAuctions(sellerID string, q models.PageQuery) models.Paged[models.Auction] {
	var mine []models.Auction
	for _, a := range s.repo.ListAuctions() {
		if a.SellerID == sellerID {
			mine = append(mine, a)
		}
	}
	return models.NewPaged(mine, q)
}

// GetAuction returns one auction.
func (s *MarketService) GetAuction(auctionID string) (models.Auction, error) {
	a, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: %w", err)
	}
	return a, nil
}

// PlaceBid validates and records a bid. The auction must be active, the
// amount must reach the starting price and exceed the current highest bid,
// and sellers cannot bid on their own auctions.
func (s *MarketService) PlaceBid(auctionID, bidderID string, amount float64) (models.Bid, error) {
	if auctionID == "" || bidderID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - missing auctionID or bidderID", marketerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", marketerrors.ErrInvalidBid)
	}

	bidderName := ""
	if rec, err := s.repo.GetUser(bidderID); err == nil {
		bidderName = rec.FullName
	}
	now := s.now()
	bid := models.Bid{
		ID:         utils.GenerateID(),
		AuctionID:  auctionID,
		BidderID:   bidderID,
		BidderName: bidderName,
		Amount:     amount,
		CreatedAt:  now.UTC(),
	}

	err := s.repo.RecordBid(bid, func(a models.Auction, highest *models.Bid) error {
		if st := a.StatusAt(now); st != models.AuctionActive {
			return fmt.Errorf("service: %w - auction is %s", marketerrors.ErrAuctionClosed, st)
		}
		if a.SellerID == bidderID {
			return fmt.Errorf("service: %w - sellers cannot bid on their own auction", marketerrors.ErrForbidden)
		}
		if amount < a.StartingPrice {
			return fmt.Errorf("service: %w - starting price is %.2f", marketerrors.ErrBidTooLow, a.StartingPrice)
		}
		if highest != nil && amount <= highest.Amount {
			return fmt.Errorf("service: %w - current highest bid is %.2f", marketerrors.ErrBidTooLow, highest.Amount)
		}
		return nil
	})
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid for auction %s by %s: %w", auctionID, bidderID, err)
	}
	return bid, nil
}

// GetBids returns all bids of an auction in arrival order.
func (s *MarketService) GetBids(auctionID string) ([]models.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", marketerrors.ErrInvalidBid)
	}
	bids, err := s.repo.GetBids(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

// GetHighestBid returns the highest bid of an auction.
func (s *MarketService) GetHighestBid(auctionID string) (models.Bid, error) {
	if auctionID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty auction ID", marketerrors.ErrInvalidBid)
	}
	bid, err := s.repo.GetHighestBid(auctionID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get highest bid for auction %s: %w", auctionID, err)
	}
	return bid, nil
}

// AddFavorite saves a listing for userID.
func (s *MarketService) AddFavorite(userID, listingID string) (models.Favorite, error) {
	f := models.Favorite{
		ID:        utils.GenerateID(),
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.AddFavorite(f); err != nil {
		return models.Favorite{}, fmt.Errorf("service: add favorite: %w", err)
	}
	return f, nil
}

// MyFavorites returns one page of userID's favorites.
func (s *MarketService) MyFavorites(userID string, q models.PageQuery) models.Paged[models.Favorite] {
	return models.NewPaged(s.repo.ListFavorites(userID), q)
}

// CheckFavorite reports whether userID saved listingID.
func (s *MarketService) CheckFavorite(userID, listingID string) models.FavoriteCheck {
	f, err := s.repo.FindFavorite(userID, listingID)
	if err != nil {
		return models.FavoriteCheck{}
	}
	return models.FavoriteCheck{IsFavorite: true, FavoriteID: f.ID}
}

// RemoveFavorite deletes one of userID's favorites.
func (s *MarketService) RemoveFavorite(userID, favoriteID string) error {
	if err := s.repo.DeleteFavorite(userID, favoriteID); err != nil {
		return fmt.Errorf("service: remove favorite: %w", err)
	}
	return nil
}

// CreatePayment records a pending order for a listing.
func (s *MarketService) CreatePayment(buyerID string, req models.CreatePaymentRequest) (models.Order, error) {
	o := models.Order{
		ID:            utils.GenerateID(),
		ListingID:     req.ListingID,
		BuyerID:       buyerID,
		Amount:        req.Amount,
		Status:        "pending",
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.repo.AddOrder(o); err != nil {
		return models.Order{}, fmt.Errorf("service: create payment: %w", err)
	}
	return o, nil
}

// CreatePaymentLink returns a hosted checkout link for one of the caller's orders.
func (s *MarketService) CreatePaymentLink(userID string, req models.PaymentLinkRequest) (models.PaymentLink, error) {
	o, err := s.repo.GetOrder(req.OrderID)
	if err != nil {
		return models.PaymentLink{}, fmt.Errorf("service: create payment link: %w", err)
	}
	if o.BuyerID != userID {
		return models.PaymentLink{}, fmt.Errorf("service: create payment link for order %s: %w", o.ID, marketerrors.ErrForbidden)
	}
	code := s.orderCodes.Add(1)
	return models.PaymentLink{
		OrderCode:   code,
		CheckoutURL: fmt.Sprintf("https://pay.example.invalid/checkout/%d", code),
		Status:      "PENDING",
	}, nil
}
