package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Jathol7/oz-baby-toys-store/models"
)

// CategoryTree fetches the category tree. With withProducts set the backend
// nests each sub-category's products, which is what the storefront landing
// page renders.
func (c *Client) CategoryTree(ctx context.Context, withProducts bool, perPage int) ([]models.Category, error) {
	query := url.Values{}
	if withProducts {
		query.Set("with_products", "true")
	}
	if perPage <= 0 {
		perPage = 10
	}
	query.Set("per_page", strconv.Itoa(perPage))

	raw, err := c.doRaw(ctx, http.MethodGet, "/categories", query, nil)
	if err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := listEnvelope(raw, &categories); err != nil {
		return nil, &APIError{Kind: KindTransport, Message: "malformed category list", Err: err}
	}
	return categories, nil
}
