package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Jathol7/oz-baby-toys-store/models"
)

// ProductQuery filters GET /products.
type ProductQuery struct {
	SubCategoryID uint
	Search        string
	PerPage       int // defaults to 12, the storefront page size
}

// ListProducts fetches the catalog page matching q.
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	query := url.Values{}
	if q.SubCategoryID != 0 {
		query.Set("sub_category_id", itoa(q.SubCategoryID))
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = 12
	}
	query.Set("per_page", strconv.Itoa(perPage))

	raw, err := c.doRaw(ctx, http.MethodGet, "/products", query, nil)
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := listEnvelope(raw, &products); err != nil {
		return nil, &APIError{Kind: KindTransport, Message: "malformed product list", Err: err}
	}
	return products, nil
}

// GetProduct fetches a single product by slug.
func (c *Client) GetProduct(ctx context.Context, slug string) (models.Product, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/products/"+url.PathEscape(slug), nil, nil)
	if err != nil {
		return models.Product{}, err
	}
	var p models.Product
	if err := detailEnvelope(raw, &p); err != nil {
		return models.Product{}, &APIError{Kind: KindTransport, Message: "malformed product body", Err: err}
	}
	return p, nil
}
