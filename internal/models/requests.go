package models

import "time"

// LoginRequest is the body of Auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the body of Auth/register.
type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

// AuthResult is returned by login and register.
type AuthResult struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}

// CreateAuctionRequest is the body of POST auction.
type CreateAuctionRequest struct {
	ListingID     string    `json:"listingId" binding:"required"`
	StartingPrice float64   `json:"startingPrice" binding:"required,gt=0"`
	StartTime     time.Time `json:"startTime" binding:"required"`
	EndTime       time.Time `json:"endTime" binding:"required"`
}

// PlaceBidRequest is the body of POST auction/{id}/bids.
type PlaceBidRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// CreateListingRequest is the body of POST Listings.
type CreateListingRequest struct {
	Category    Category       `json:"category" binding:"required,oneof=battery ebike car motorbike"`
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description"`
	Price       float64        `json:"price" binding:"gte=0"`
	Brand       string         `json:"brand,omitempty"`
	Model       string         `json:"model,omitempty"`
	Year        int            `json:"year,omitempty" binding:"omitempty,gte=1900,lte=2100"`
	Condition   string         `json:"condition,omitempty"`
	Battery     *BatterySpec   `json:"battery,omitempty"`
	EBike       *EBikeSpec     `json:"ebike,omitempty"`
	Images      []ListingImage `json:"images" binding:"required,min=1"`
}

// CreateFavoriteRequest is the body of POST Favorites.
type CreateFavoriteRequest struct {
	ListingID string `json:"listingId" binding:"required"`
}

// CreatePaymentRequest is the body of POST Payment.
type CreatePaymentRequest struct {
	ListingID     string  `json:"listingId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
}

// PaymentLinkRequest is the body of POST payos/create-payment-link.
type PaymentLinkRequest struct {
	OrderID     string  `json:"orderId" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description"`
	ReturnURL   string  `json:"returnUrl"`
	CancelURL   string  `json:"cancelUrl"`
}

// UserFilter selects a page of Admin/users.
type UserFilter struct {
	PageQuery
	Search   string
	IsActive *bool
}
