package mockapi

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jathol7/oz-baby-toys-store/client"
	"github.com/Jathol7/oz-baby-toys-store/models"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(NewRouter(NewSeededRepository()))
	t.Cleanup(srv.Close)
	return srv
}

// bearerClient returns an API client that always sends token.
func bearerClient(url, token string) *client.Client {
	return client.New(url, client.WithTokenSource(func() string { return token }))
}

func TestCatalogListingAndFilters(t *testing.T) {
	srv := newTestServer(t)
	c := client.New(srv.URL)
	ctx := context.Background()

	all, err := c.ListProducts(ctx, client.ProductQuery{PerPage: 100})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	teddy, err := c.ListProducts(ctx, client.ProductQuery{Search: "teddy"})
	require.NoError(t, err)
	require.Len(t, teddy, 1)
	assert.Equal(t, "teddy-bear", teddy[0].Slug)
	assert.InDelta(t, 25.99, teddy[0].Price.Float64(), 0.001)

	educational, err := c.ListProducts(ctx, client.ProductQuery{SubCategoryID: 2})
	require.NoError(t, err)
	assert.Len(t, educational, 2)

	paged, err := c.ListProducts(ctx, client.ProductQuery{PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, paged, 2)
}

func TestProductDetailBySlug(t *testing.T) {
	srv := newTestServer(t)
	c := client.New(srv.URL)

	p, err := c.GetProduct(context.Background(), "abacus")
	require.NoError(t, err)
	assert.Equal(t, "Abacus", p.Name)
	require.NotNil(t, p.SubCategory)
	assert.Equal(t, "Educational", p.SubCategory.Name)

	_, err = c.GetProduct(context.Background(), "no-such-toy")
	assert.True(t, client.IsNotFound(err))
}

func TestCategoryTreeWithProducts(t *testing.T) {
	srv := newTestServer(t)

	categories, err := client.New(srv.URL).CategoryTree(context.Background(), true, 10)
	require.NoError(t, err)
	require.Len(t, categories, 4)
	assert.Equal(t, "Soft Toys", categories[0].Name)
	require.Len(t, categories[0].SubCategories, 1)
	require.Len(t, categories[0].SubCategories[0].Products, 1)
	assert.Equal(t, "Teddy Bear", categories[0].SubCategories[0].Products[0].Name)
}

func TestRegisterLoginProfileRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	c := client.New(srv.URL)
	ctx := context.Background()

	payload, err := c.Register(ctx, client.RegisterForm{
		Name:                 "Pat",
		Email:                "pat@example.com",
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, payload.Token)
	assert.Equal(t, models.RoleCustomer, payload.User.Role)

	// Wrong password is a 401.
	_, err = c.Login(ctx, client.Credentials{Email: "pat@example.com", Password: "nope"})
	assert.True(t, client.IsUnauthorized(err))

	payload, err = c.Login(ctx, client.Credentials{Email: "pat@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, payload.Token)

	authed := bearerClient(srv.URL, payload.Token)
	user, err := authed.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "pat@example.com", user.Email)

	require.NoError(t, authed.Logout(ctx))
}

func TestRegisterValidationErrors(t *testing.T) {
	srv := newTestServer(t)
	c := client.New(srv.URL)

	_, err := c.Register(context.Background(), client.RegisterForm{
		Name:                 "",
		Email:                "not-an-email",
		Password:             "short",
		PasswordConfirmation: "different",
	})
	require.Error(t, err)
	require.True(t, client.IsValidation(err))

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Fields, "name")
	assert.Contains(t, apiErr.Fields, "email")
	assert.Contains(t, apiErr.Fields, "password")
}

func TestDuplicateEmailRejected(t *testing.T) {
	srv := newTestServer(t)
	c := client.New(srv.URL)
	ctx := context.Background()

	form := client.RegisterForm{Name: "Pat", Email: "pat@example.com", Password: "secret1", PasswordConfirmation: "secret1"}
	_, err := c.Register(ctx, form)
	require.NoError(t, err)

	_, err = c.Register(ctx, form)
	require.True(t, client.IsValidation(err))
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Fields, "email")
}

func TestPlaceOrderDecrementsStock(t *testing.T) {
	srv := newTestServer(t)
	c := client.New(srv.URL)
	ctx := context.Background()

	order, err := c.PlaceOrder(ctx, models.PlaceOrderRequest{
		CustomerInfo: models.CustomerInfo{FullName: "Pat", Address: "1 Main St", City: "Sydney", Phone: "555"},
		Items: []models.CartLine{
			{Product: models.Product{ID: 1}, Quantity: 2},
		},
		TotalAmount: 51.98,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, order.OrderRef)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	// The server recomputes the total from its own catalog prices.
	assert.InDelta(t, 51.98, order.TotalAmount.Float64(), 0.001)

	p, err := c.GetProduct(ctx, "teddy-bear")
	require.NoError(t, err)
	assert.Equal(t, 8, p.Stock)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	srv := newTestServer(t)
	c := client.New(srv.URL)

	_, err := c.PlaceOrder(context.Background(), models.PlaceOrderRequest{
		CustomerInfo: models.CustomerInfo{FullName: "Pat"},
		Items: []models.CartLine{
			{Product: models.Product{ID: 5}, Quantity: 99}, // only 3 swings in stock
		},
	})
	require.True(t, client.IsValidation(err))
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "boss@example.com")
	srv := newTestServer(t)
	c := client.New(srv.URL)
	ctx := context.Background()

	// A plain customer is forbidden.
	customer, err := c.Register(ctx, client.RegisterForm{Name: "Pat", Email: "pat@example.com", Password: "secret1", PasswordConfirmation: "secret1"})
	require.NoError(t, err)
	_, err = bearerClient(srv.URL, customer.Token).AdminProducts(ctx, 0)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, client.KindForbidden, apiErr.Kind)

	// No token at all is a 401.
	_, err = c.AdminProducts(ctx, 0)
	assert.True(t, client.IsUnauthorized(err))

	boss, err := c.Register(ctx, client.RegisterForm{Name: "Boss", Email: "boss@example.com", Password: "secret1", PasswordConfirmation: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, boss.User.Role)

	products, err := bearerClient(srv.URL, boss.Token).AdminProducts(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, products, 5)
}

func TestAdminProductLifecycle(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "boss@example.com")
	srv := newTestServer(t)
	ctx := context.Background()

	boss, err := client.New(srv.URL).Register(ctx, client.RegisterForm{Name: "Boss", Email: "boss@example.com", Password: "secret1", PasswordConfirmation: "secret1"})
	require.NoError(t, err)
	admin := bearerClient(srv.URL, boss.Token)

	created, err := admin.CreateProduct(ctx, client.ProductForm{
		Name:          "Wooden Train",
		Slug:          "wooden-train",
		Description:   "Six-piece wooden train set.",
		Price:         32.00,
		Stock:         7,
		SubCategoryID: 2,
		Image:         bytes.NewReader([]byte("fake-png")),
		ImageName:     "train.png",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "/uploads/train.png", created.Image)

	// Visible on the public shelf now.
	p, err := client.New(srv.URL).GetProduct(ctx, "wooden-train")
	require.NoError(t, err)
	assert.InDelta(t, 32.00, p.Price.Float64(), 0.001)

	updated, err := admin.UpdateProduct(ctx, created.ID, client.ProductForm{
		Name: created.Name, Slug: created.Slug, Price: 32.00, Stock: 4, SubCategoryID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Stock)

	require.NoError(t, admin.DeleteProduct(ctx, created.ID))
	_, err = client.New(srv.URL).GetProduct(ctx, "wooden-train")
	assert.True(t, client.IsNotFound(err))
}

func TestAdminOrderStatusTransition(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "boss@example.com")
	srv := newTestServer(t)
	c := client.New(srv.URL)
	ctx := context.Background()

	_, err := c.PlaceOrder(ctx, models.PlaceOrderRequest{
		CustomerInfo: models.CustomerInfo{FullName: "Pat"},
		Items:        []models.CartLine{{Product: models.Product{ID: 2}, Quantity: 1}},
	})
	require.NoError(t, err)

	boss, err := c.Register(ctx, client.RegisterForm{Name: "Boss", Email: "boss@example.com", Password: "secret1", PasswordConfirmation: "secret1"})
	require.NoError(t, err)
	admin := bearerClient(srv.URL, boss.Token)

	orders, err := admin.AdminOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusPending, orders[0].Status)

	require.NoError(t, admin.UpdateOrderStatus(ctx, orders[0].ID, models.OrderStatusShipped))

	orders, err = admin.AdminOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, orders[0].Status)

	// Unknown status values are rejected.
	err = admin.UpdateOrderStatus(ctx, orders[0].ID, "teleported")
	assert.True(t, client.IsValidation(err))
}

func TestExportProductsIsXlsx(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "boss@example.com")
	srv := newTestServer(t)
	ctx := context.Background()

	boss, err := client.New(srv.URL).Register(ctx, client.RegisterForm{Name: "Boss", Email: "boss@example.com", Password: "secret1", PasswordConfirmation: "secret1"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, bearerClient(srv.URL, boss.Token).ExportProducts(ctx, &buf))
	// xlsx files are zip archives.
	assert.Equal(t, "PK", buf.String()[:2])
}
