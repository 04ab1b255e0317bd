// Package mockapi is a development stand-in for the remote storefront
// backend. It serves the same HTTP contract the production API does so the
// storefront client can run against localhost: catalog, bearer-token auth,
// orders and the admin console endpoints. State lives in memory by default,
// or in Postgres when DATABASE_URL is set.
package mockapi

import (
	"errors"

	"github.com/Jathol7/oz-baby-toys-store/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already taken")
	ErrDuplicateSlug  = errors.New("slug already taken")
)

// InsufficientStockError reports which product an order could not be filled
// for.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return "insufficient stock for product: " + e.ProductName
}

// ProductFilter narrows ListProducts the way GET /products does.
type ProductFilter struct {
	SubCategoryID uint
	Search        string // matched case-insensitively against name and description
	PerPage       int    // 0 means no limit
}

// Repository is the persistence surface the handlers run on.
// Implementations: memoryRepo (default, seeded), gormRepo (Postgres).
type Repository interface {
	ListProducts(f ProductFilter) ([]models.Product, error)
	GetProductBySlug(slug string) (models.Product, error)
	CreateProduct(p *models.Product) error
	UpdateProduct(p *models.Product) error
	DeleteProduct(id uint) error

	ListCategories(withProducts bool) ([]models.Category, error)
	CreateCategory(c *models.Category) error
	DeleteCategory(id uint) error

	CreateUser(u *models.User) error
	GetUserByEmail(email string) (models.User, error)
	GetUser(id uint) (models.User, error)

	// CreateOrder validates stock for every item, decrements it and stores
	// the order atomically. Items must carry product id and quantity; the
	// repository fills prices and names from the catalog.
	CreateOrder(o *models.Order) error
	ListOrdersByUser(userID uint) ([]models.Order, error)
	ListOrders() ([]models.Order, error)
	UpdateOrderStatus(id uint, status models.OrderStatus) (models.Order, error)
}
