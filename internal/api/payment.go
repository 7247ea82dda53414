package api

import (
	"context"

	"ev-marketplace/internal/httpclient"
	"ev-marketplace/internal/models"
)

// PaymentAPI maps order creation and hosted payment links.
type PaymentAPI struct {
	doer httpclient.Doer
}

// NewPaymentAPI returns a PaymentAPI sending through d.
func NewPaymentAPI(d httpclient.Doer) *PaymentAPI {
	return &PaymentAPI{doer: d}
}

// Create places an order and records its payment method.
func (p *PaymentAPI) Create(ctx context.Context, req models.CreatePaymentRequest) (models.Order, error) {
	return httpclient.Post[models.Order](ctx, p.doer, "Payment", req)
}

// CreateLink asks the payment gateway for a checkout link.
func (p *PaymentAPI) CreateLink(ctx context.Context, req models.PaymentLinkRequest) (models.PaymentLink, error) {
	return httpclient.Post[models.PaymentLink](ctx, p.doer, "payos/create-payment-link", req)
}
