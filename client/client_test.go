package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	token := ""
	c := New(srv.URL, WithTokenSource(func() string { return token }))

	_, err := c.ListProducts(context.Background(), ProductQuery{})
	require.NoError(t, err)
	assert.Empty(t, got)

	token = "tok-1"
	_, err = c.ListProducts(context.Background(), ProductQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", got)
}

func TestListProductsQueryAndEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("sub_category_id"))
		assert.Equal(t, "blocks", r.URL.Query().Get("search"))
		assert.Equal(t, "12", r.URL.Query().Get("per_page"))
		_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"Teddy Bear","slug":"teddy-bear","price":"25.99"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	products, err := c.ListProducts(context.Background(), ProductQuery{SubCategoryID: 3, Search: "blocks"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	// Price arrives as a string and is coerced.
	assert.InDelta(t, 25.99, products[0].Price.Float64(), 0.001)
}

func TestListProductsBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":2,"name":"Abacus","slug":"abacus","price":15.5}]`))
	}))
	defer srv.Close()

	products, err := New(srv.URL).ListProducts(context.Background(), ProductQuery{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Abacus", products[0].Name)
}

func TestMalformedPriceCoercesToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"X","slug":"x","price":"not-a-number"}]}`))
	}))
	defer srv.Close()

	products, err := New(srv.URL).ListProducts(context.Background(), ProductQuery{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Zero(t, products[0].Price.Float64())
}

func TestGetProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Product not found"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetProduct(context.Background(), "gone")
	assert.True(t, IsNotFound(err))
}

func TestValidationErrorCarriesFieldMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"The given data was invalid.","errors":{"email":["The email has already been taken."]}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Register(context.Background(), RegisterForm{})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "The given data was invalid.", apiErr.Message)
	assert.Equal(t, []string{"The email has already been taken."}, apiErr.Fields["email"])
}

func TestTransportErrorKind(t *testing.T) {
	// Point at a server that is already gone.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := New(srv.URL).ListProducts(context.Background(), ProductQuery{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindTransport, apiErr.Kind)
}

func TestGetProductUnwrapsDetailEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/teddy-bear", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"id":1,"name":"Teddy Bear","slug":"teddy-bear","price":25.99}}`))
	}))
	defer srv.Close()

	p, err := New(srv.URL).GetProduct(context.Background(), "teddy-bear")
	require.NoError(t, err)
	assert.Equal(t, uint(1), p.ID)
}

func TestUpdateOrderStatusPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/orders/7/status", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"id":7,"status":"shipped"}}`))
	}))
	defer srv.Close()

	err := New(srv.URL).UpdateOrderStatus(context.Background(), 7, "shipped")
	require.NoError(t, err)
}

func TestAdminOrdersToleratesWrappedShapes(t *testing.T) {
	for _, body := range []string{
		`[{"id":1,"status":"pending"}]`,
		`{"orders":[{"id":1,"status":"pending"}]}`,
		`{"data":[{"id":1,"status":"pending"}]}`,
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		orders, err := New(srv.URL).AdminOrders(context.Background())
		srv.Close()
		require.NoError(t, err, body)
		require.Len(t, orders, 1, body)
	}
}

func TestProductImageFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"id":42,"name":"X","slug":"x","price":1,"image":null}}`))
	}))
	defer srv.Close()

	p, err := New(srv.URL).GetProduct(context.Background(), "x")
	require.NoError(t, err)
	assert.Contains(t, p.ImageURL(), "lock=42")
}
