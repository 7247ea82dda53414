package handler

import (
	"net/http"

	"ev-marketplace/internal/models"
	"ev-marketplace/services/market/helpers"
	"ev-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// CreatePaymentHandler handles POST /api/Payment
func (h *MarketHandler) CreatePaymentHandler(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreatePaymentHandler", err)
		return
	}

	buyerID := helpers.UserID(c)
	order, err := h.service.CreatePayment(buyerID, req)
	if err != nil {
		helpers.HandleServiceError(c, "CreatePaymentHandler", err, map[string]any{"listing_id": req.ListingID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, order, "order created successfully")
	helpers.LogSuccess("CreatePaymentHandler", "order created", map[string]any{"order_id": order.ID, "buyer_id": buyerID})
}

// CreatePaymentLinkHandler handles POST /api/payos/create-payment-link
func (h *MarketHandler) CreatePaymentLinkHandler(c *gin.Context) {
	var req models.PaymentLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreatePaymentLinkHandler", err)
		return
	}

	link, err := h.service.CreatePaymentLink(helpers.UserID(c), req)
	if err != nil {
		helpers.HandleServiceError(c, "CreatePaymentLinkHandler", err, map[string]any{"order_id": req.OrderID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, link, "payment link created successfully")
}
