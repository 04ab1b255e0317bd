package client

import (
	"context"
	"net/http"

	"github.com/Jathol7/oz-baby-toys-store/models"
)

// PlaceOrder submits an order with shipping info and the cart snapshot.
func (c *Client) PlaceOrder(ctx context.Context, req models.PlaceOrderRequest) (models.Order, error) {
	raw, err := c.doRaw(ctx, http.MethodPost, "/orders", nil, req)
	if err != nil {
		return models.Order{}, err
	}
	var o models.Order
	if err := detailEnvelope(raw, &o); err != nil {
		return models.Order{}, &APIError{Kind: KindTransport, Message: "malformed order body", Err: err}
	}
	return o, nil
}

// ListMyOrders fetches the authenticated user's order history.
func (c *Client) ListMyOrders(ctx context.Context) ([]models.Order, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/orders", nil, nil)
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := listEnvelope(raw, &orders); err != nil {
		return nil, &APIError{Kind: KindTransport, Message: "malformed order list", Err: err}
	}
	return orders, nil
}
