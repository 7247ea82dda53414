package models

import "time"

// AuctionStatus is derived from the auction window, never stored.
type AuctionStatus string

const (
	AuctionUpcoming AuctionStatus = "upcoming"
	AuctionActive   AuctionStatus = "active"
	AuctionEnded    AuctionStatus = "ended"
)

// Auction is a time-bounded sale of one listing. Read-only on the client.
type Auction struct {
	ID            string    `json:"id"`
	ListingID     string    `json:"listingId"`
	Listing       *Listing  `json:"listing,omitempty"`
	SellerID      string    `json:"sellerId"`
	StartingPrice float64   `json:"startingPrice"`
	CurrentPrice  *float64  `json:"currentPrice,omitempty"`
	TotalBids     *int      `json:"totalBids,omitempty"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
}

// StatusAt derives the auction status at the given instant.
func (a Auction) StatusAt(now time.Time) AuctionStatus {
	switch {
	case now.Before(a.StartTime):
		return AuctionUpcoming
	case !now.Before(a.EndTime):
		return AuctionEnded
	default:
		return AuctionActive
	}
}

// Bid is a single offer against an auction. Bids are immutable.
type Bid struct {
	ID         string    `json:"id"`
	AuctionID  string    `json:"auctionId"`
	BidderID   string    `json:"bidderId"`
	BidderName string    `json:"bidderName"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Profile is the authenticated member as persisted on the client.
type Profile struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Role      string `json:"role,omitempty"`
	Token     string `json:"token,omitempty"`
}

// Category of a sellable item.
type Category string

const (
	CategoryBattery   Category = "battery"
	CategoryEBike     Category = "ebike"
	CategoryCar       Category = "car"
	CategoryMotorbike Category = "motorbike"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryBattery, CategoryEBike, CategoryCar, CategoryMotorbike:
		return true
	}
	return false
}

// BatterySpec holds battery-specific attributes.
type BatterySpec struct {
	VoltageV      float64 `json:"voltage"`
	CapacityAh    float64 `json:"capacity"`
	HealthPercent float64 `json:"healthPercent,omitempty"`
}

// EBikeSpec holds e-bike-specific attributes.
type EBikeSpec struct {
	MotorPowerW float64 `json:"motorPower"`
	RangeKm     float64 `json:"range"`
	MileageKm   float64 `json:"mileage,omitempty"`
}

// ListingImage is an encoded image attached to a listing.
type ListingImage struct {
	ID        string `json:"id"`
	Data      string `json:"data"`
	IsPrimary bool   `json:"isPrimary"`
}

// Listing is a sellable vehicle or battery record.
type Listing struct {
	ID          string         `json:"id"`
	SellerID    string         `json:"sellerId"`
	Category    Category       `json:"category"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Brand       string         `json:"brand,omitempty"`
	Model       string         `json:"model,omitempty"`
	Year        int            `json:"year,omitempty"`
	Condition   string         `json:"condition,omitempty"`
	Battery     *BatterySpec   `json:"battery,omitempty"`
	EBike       *EBikeSpec     `json:"ebike,omitempty"`
	Images      []ListingImage `json:"images,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Favorite is a saved listing of the current member.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ListingID string    `json:"listingId"`
	Listing   *Listing  `json:"listing,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FavoriteCheck is the answer of the favorites check endpoint.
type FavoriteCheck struct {
	IsFavorite bool   `json:"isFavorite"`
	FavoriteID string `json:"favoriteId,omitempty"`
}

// Order is a purchase created through the payment endpoint.
type Order struct {
	ID            string    `json:"id"`
	ListingID     string    `json:"listingId"`
	BuyerID       string    `json:"buyerId"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PaymentLink is a hosted checkout link for an order.
type PaymentLink struct {
	OrderCode   int64  `json:"orderCode"`
	CheckoutURL string `json:"checkoutUrl"`
	QRCode      string `json:"qrCode,omitempty"`
	Status      string `json:"status"`
}

// User is the admin view of a member account.
type User struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
