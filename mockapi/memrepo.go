package mockapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Jathol7/oz-baby-toys-store/models"
)

// memoryRepo keeps everything in maps behind one mutex. It is the default
// repository so the mock API runs with zero infrastructure.
type memoryRepo struct {
	mu         sync.Mutex
	products   map[uint]models.Product
	categories map[uint]models.Category
	subcats    map[uint]models.SubCategory
	users      map[uint]models.User
	orders     map[uint]models.Order
	nextID     map[string]uint
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() Repository {
	return &memoryRepo{
		products:   make(map[uint]models.Product),
		categories: make(map[uint]models.Category),
		subcats:    make(map[uint]models.SubCategory),
		users:      make(map[uint]models.User),
		orders:     make(map[uint]models.Order),
		nextID:     make(map[string]uint),
	}
}

// NewSeededRepository returns an in-memory repository preloaded with the
// demo catalog.
func NewSeededRepository() Repository {
	r := NewMemoryRepository().(*memoryRepo)
	r.seed()
	return r
}

func (r *memoryRepo) id(table string) uint {
	r.nextID[table]++
	return r.nextID[table]
}

func (r *memoryRepo) ListProducts(f ProductFilter) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Product
	needle := strings.ToLower(f.Search)
	for _, p := range r.products {
		if f.SubCategoryID != 0 && p.SubCategoryID != f.SubCategoryID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		out = append(out, r.withSubCategory(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if f.PerPage > 0 && len(out) > f.PerPage {
		out = out[:f.PerPage]
	}
	return out, nil
}

func (r *memoryRepo) GetProductBySlug(slug string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Slug == slug {
			return r.withSubCategory(p), nil
		}
	}
	return models.Product{}, ErrNotFound
}

func (r *memoryRepo) CreateProduct(p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.Slug == p.Slug {
			return ErrDuplicateSlug
		}
	}
	p.ID = r.id("products")
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.products[p.ID] = *p
	return nil
}

func (r *memoryRepo) UpdateProduct(p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[p.ID]
	if !ok {
		return ErrNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	r.products[p.ID] = *p
	return nil
}

func (r *memoryRepo) DeleteProduct(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *memoryRepo) ListCategories(withProducts bool) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Category
	for _, c := range r.categories {
		cat := c
		cat.SubCategories = nil
		for _, sc := range r.subcats {
			if sc.CategoryID != cat.ID {
				continue
			}
			sub := sc
			sub.Products = nil
			if withProducts {
				for _, p := range r.products {
					if p.SubCategoryID == sub.ID {
						sub.Products = append(sub.Products, p)
					}
				}
				sort.Slice(sub.Products, func(i, j int) bool { return sub.Products[i].ID < sub.Products[j].ID })
			}
			cat.SubCategories = append(cat.SubCategories, sub)
		}
		sort.Slice(cat.SubCategories, func(i, j int) bool { return cat.SubCategories[i].ID < cat.SubCategories[j].ID })
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryRepo) CreateCategory(c *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Slug == c.Slug {
			return ErrDuplicateSlug
		}
	}
	c.ID = r.id("categories")
	r.categories[c.ID] = models.Category{
		ID: c.ID, Name: c.Name, Slug: c.Slug, IsActive: c.IsActive,
	}
	// Sub-categories supplied inline get created alongside.
	for i := range c.SubCategories {
		c.SubCategories[i].ID = r.id("subcategories")
		c.SubCategories[i].CategoryID = c.ID
		r.subcats[c.SubCategories[i].ID] = c.SubCategories[i]
	}
	return nil
}

func (r *memoryRepo) DeleteCategory(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return ErrNotFound
	}
	delete(r.categories, id)
	for scID, sc := range r.subcats {
		if sc.CategoryID == id {
			delete(r.subcats, scID)
		}
	}
	return nil
}

func (r *memoryRepo) CreateUser(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrDuplicateEmail
		}
	}
	u.ID = r.id("users")
	u.CreatedAt = time.Now()
	r.users[u.ID] = *u
	return nil
}

func (r *memoryRepo) GetUserByEmail(email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (r *memoryRepo) GetUser(id uint) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (r *memoryRepo) CreateOrder(o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Validate every line before touching stock so a late failure cannot
	// leave a half-decremented catalog.
	for i, item := range o.Items {
		p, ok := r.products[item.ProductID]
		if !ok {
			return ErrNotFound
		}
		if p.Stock < item.Quantity {
			return &InsufficientStockError{ProductName: p.Name}
		}
		o.Items[i].Name = p.Name
		o.Items[i].Price = p.Price
	}

	var total float64
	for _, item := range o.Items {
		p := r.products[item.ProductID]
		p.Stock -= item.Quantity
		r.products[item.ProductID] = p
		total += item.Price.Float64() * float64(item.Quantity)
	}

	o.ID = r.id("orders")
	o.TotalAmount = models.Amount(total)
	o.CreatedAt = time.Now()
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	for i := range o.Items {
		o.Items[i].ID = r.id("order_items")
		o.Items[i].OrderID = o.ID
	}
	r.orders[o.ID] = *o
	return nil
}

func (r *memoryRepo) ListOrdersByUser(userID uint) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryRepo) ListOrders() ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryRepo) UpdateOrderStatus(id uint, status models.OrderStatus) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return models.Order{}, ErrNotFound
	}
	o.Status = status
	r.orders[id] = o
	return o, nil
}

func (r *memoryRepo) withSubCategory(p models.Product) models.Product {
	if sc, ok := r.subcats[p.SubCategoryID]; ok {
		sub := sc
		sub.Products = nil
		p.SubCategory = &sub
	}
	return p
}
