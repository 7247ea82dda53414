package handler

import (
	"net/http"

	"ev-marketplace/internal/models"
	"ev-marketplace/services/market/helpers"
	"ev-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// CreateListingHandler handles POST /api/Listings
func (h *MarketHandler) CreateListingHandler(c *gin.Context) {
	var req models.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateListingHandler", err)
		return
	}

	sellerID := helpers.UserID(c)
	listing, err := h.service.CreateListing(sellerID, req)
	if err != nil {
		helpers.HandleServiceError(c, "CreateListingHandler", err, map[string]any{"seller_id": sellerID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, listing, "listing created successfully")
	helpers.LogSuccess("CreateListingHandler", "listing created successfully", map[string]any{
		"listing_id": listing.ID,
		"seller_id":  sellerID,
		"images":     len(listing.Images),
	})
}

// CreateAuctionHandler handles POST /api/auction
func (h *MarketHandler) CreateAuctionHandler(c *gin.Context) {
	var req models.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	sellerID := helpers.UserID(c)
	auction, err := h.service.CreateAuction(sellerID, req)
	if err != nil {
		helpers.HandleServiceError(c, "CreateAuctionHandler", err, map[string]any{"listing_id": req.ListingID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, auction, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": auction.ID,
		"listing_id": auction.ListingID,
	})
}

// ListAuctionsHandler handles GET /api/auction
func (h *MarketHandler) ListAuctionsHandler(c *gin.Context) {
	var q models.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		helpers.HandleBindError(c, "ListAuctionsHandler", err)
		return
	}
	page := h.service.ListAuctions(q)
	utils.JSONResponse(c, http.StatusOK, page, "auctions retrieved successfully")
}

// MyAuctionsHandler handles GET /api/auction/my
func (h *MarketHandler) MyAuctionsHandler(c *gin.Context) {
	var q models.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		helpers.HandleBindError(c, "MyAuctionsHandler", err)
		return
	}
	page := h.service.MyAuctions(helpers.UserID(c), q)
	utils.JSONResponse(c, http.StatusOK, page, "auctions retrieved successfully")
}

// GetAuctionHandler handles GET /api/auction/:auction_id
func (h *MarketHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	auction, err := h.service.GetAuction(auctionID)
	if err != nil {
		helpers.HandleServiceError(c, "GetAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, auction, "auction retrieved successfully")
}

// PlaceBidHandler handles POST /api/auction/:auction_id/bids
func (h *MarketHandler) PlaceBidHandler(c *gin.Context) {
	var req models.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	auctionID := c.Param("auction_id")
	bidderID := helpers.UserID(c)
	bid, err := h.service.PlaceBid(auctionID, bidderID, req.Amount)
	if err != nil {
		helpers.HandleServiceError(c, "PlaceBidHandler", err, map[string]any{
			"auction_id": auctionID,
			"bidder_id":  bidderID,
			"amount":     req.Amount,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, bid, "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     bid.ID,
		"auction_id": auctionID,
		"bidder_id":  bidderID,
		"amount":     bid.Amount,
	})
}

// GetBidsHandler handles GET /api/auction/:auction_id/bids
func (h *MarketHandler) GetBidsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bids, err := h.service.GetBids(auctionID)
	if err != nil {
		helpers.HandleServiceError(c, "GetBidsHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	if bids == nil {
		bids = []models.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(bids),
	})
}

// GetHighestBidHandler handles GET /api/auction/:auction_id/bids/highest
func (h *MarketHandler) GetHighestBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bid, err := h.service.GetHighestBid(auctionID)
	if err != nil {
		helpers.HandleServiceError(c, "GetHighestBidHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, bid, "highest bid retrieved successfully")
}
