package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Jathol7/oz-baby-toys-store/models"
)

// ProductForm is the admin create/update payload. Image is optional; when
// set it is sent as a multipart file part named "image", matching the
// backend's upload contract.
type ProductForm struct {
	Name          string
	Slug          string
	Description   string
	Price         float64
	Stock         int
	SubCategoryID uint
	Image         io.Reader
	ImageName     string
}

// AdminProducts lists products for the management console.
func (c *Client) AdminProducts(ctx context.Context, perPage int) ([]models.Product, error) {
	if perPage <= 0 {
		perPage = 12
	}
	query := url.Values{"per_page": {strconv.Itoa(perPage)}}
	raw, err := c.doRaw(ctx, http.MethodGet, "/admin/products", query, nil)
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := listEnvelope(raw, &products); err != nil {
		return nil, &APIError{Kind: KindTransport, Message: "malformed product list", Err: err}
	}
	return products, nil
}

// CreateProduct creates a product via multipart form upload.
func (c *Client) CreateProduct(ctx context.Context, form ProductForm) (models.Product, error) {
	return c.sendProductForm(ctx, http.MethodPost, "/admin/products", form)
}

// UpdateProduct updates an existing product.
func (c *Client) UpdateProduct(ctx context.Context, id uint, form ProductForm) (models.Product, error) {
	return c.sendProductForm(ctx, http.MethodPut, "/admin/products/"+itoa(id), form)
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, "/admin/products/"+itoa(id), nil, nil, nil)
}

func (c *Client) sendProductForm(ctx context.Context, method, path string, form ProductForm) (models.Product, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":            form.Name,
		"slug":            form.Slug,
		"description":     form.Description,
		"price":           strconv.FormatFloat(form.Price, 'f', 2, 64),
		"stock_quantity":  strconv.Itoa(form.Stock),
		"sub_category_id": fmt.Sprintf("%d", form.SubCategoryID),
	}
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			return models.Product{}, err
		}
	}
	if form.Image != nil {
		name := form.ImageName
		if name == "" {
			name = "image"
		}
		part, err := mw.CreateFormFile("image", name)
		if err != nil {
			return models.Product{}, err
		}
		if _, err := io.Copy(part, form.Image); err != nil {
			return models.Product{}, err
		}
	}
	if err := mw.Close(); err != nil {
		return models.Product{}, err
	}

	req, err := c.newRequest(ctx, method, path, nil, &buf)
	if err != nil {
		return models.Product{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Product{}, &APIError{Kind: KindTransport, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Product{}, &APIError{Kind: KindTransport, Message: "reading response failed", Err: err}
	}
	if resp.StatusCode >= 400 {
		return models.Product{}, errorFromResponse(resp.StatusCode, raw)
	}
	var p models.Product
	if err := detailEnvelope(raw, &p); err != nil {
		return models.Product{}, &APIError{Kind: KindTransport, Message: "malformed product body", Err: err}
	}
	return p, nil
}

// AdminCategories lists categories for the management console.
func (c *Client) AdminCategories(ctx context.Context, perPage int) ([]models.Category, error) {
	if perPage <= 0 {
		perPage = 10
	}
	query := url.Values{"per_page": {strconv.Itoa(perPage)}}
	raw, err := c.doRaw(ctx, http.MethodGet, "/admin/categories", query, nil)
	if err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := listEnvelope(raw, &categories); err != nil {
		return nil, &APIError{Kind: KindTransport, Message: "malformed category list", Err: err}
	}
	return categories, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, name string, isActive bool) (models.Category, error) {
	body := map[string]any{"name": name, "is_active": isActive}
	raw, err := c.doRaw(ctx, http.MethodPost, "/admin/categories", nil, body)
	if err != nil {
		return models.Category{}, err
	}
	var cat models.Category
	if err := detailEnvelope(raw, &cat); err != nil {
		return models.Category{}, &APIError{Kind: KindTransport, Message: "malformed category body", Err: err}
	}
	return cat, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, "/admin/categories/"+itoa(id), nil, nil, nil)
}

// AdminOrders lists every order. The backend has been seen returning both a
// bare array and an {"orders": [...]} wrapper, so both are accepted.
func (c *Client) AdminOrders(ctx context.Context) ([]models.Order, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/admin/orders", nil, nil)
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := json.Unmarshal(raw, &orders); err == nil {
		return orders, nil
	}
	var wrapped struct {
		Orders []models.Order `json:"orders"`
		Data   []models.Order `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, &APIError{Kind: KindTransport, Message: "malformed order list", Err: err}
	}
	if wrapped.Orders != nil {
		return wrapped.Orders, nil
	}
	return wrapped.Data, nil
}

// UpdateOrderStatus requests a status transition. The client never computes
// transitions itself; validity is the backend's call.
func (c *Client) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPatch, "/orders/"+itoa(id)+"/status", nil, body, nil)
}

// ExportProducts streams the admin product export (an xlsx workbook) into w.
func (c *Client) ExportProducts(ctx context.Context, w io.Writer) error {
	return c.download(ctx, "/admin/products/export", w)
}
