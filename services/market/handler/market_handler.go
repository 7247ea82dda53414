package handler

import (
	"ev-marketplace/internal/models"
)

// MarketServiceInterface is the business layer the handlers call.
type MarketServiceInterface interface {
	Register(req models.RegisterRequest) (models.Profile, error)
	Login(req models.LoginRequest) (models.AuthResult, error)
	Me(userID string) (models.Profile, error)
	Users(filter models.UserFilter) models.Paged[models.User]

	CreateListing(sellerID string, req models.CreateListingRequest) (models.Listing, error)

	CreateAuction(sellerID string, req models.CreateAuctionRequest) (models.Auction, error)
	ListAuctions(q models.PageQuery) models.Paged[models.Auction]
	MyAuctions(sellerID string, q models.PageQuery) models.Paged[models.Auction]
	GetAuction(auctionID string) (models.Auction, error)

	PlaceBid(auctionID, bidderID string, amount float64) (models.Bid, error)
	GetBids(auctionID string) ([]models.Bid, error)
	GetHighestBid(auctionID string) (models.Bid, error)

	AddFavorite(userID, listingID string) (models.Favorite, error)
	MyFavorites(userID string, q models.PageQuery) models.Paged[models.Favorite]
	CheckFavorite(userID, listingID string) models.FavoriteCheck
	RemoveFavorite(userID, favoriteID string) error

	CreatePayment(buyerID string, req models.CreatePaymentRequest) (models.Order, error)
	CreatePaymentLink(userID string, req models.PaymentLinkRequest) (models.PaymentLink, error)
}

type MarketHandler struct {
	service MarketServiceInterface
}

func NewMarketHandler(service MarketServiceInterface) *MarketHandler {
	return &MarketHandler{service: service}
}
