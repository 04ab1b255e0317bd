package mockapi

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Jathol7/oz-baby-toys-store/models"
)

// gormRepo persists to Postgres through GORM, for mock deployments that
// need state to survive restarts.
type gormRepo struct {
	db *gorm.DB
}

// NewGormRepository auto-migrates the schema and returns a DB-backed
// repository.
func NewGormRepository(db *gorm.DB) (Repository, error) {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.SubCategory{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return nil, err
	}
	return &gormRepo{db: db}, nil
}

func (r *gormRepo) ListProducts(f ProductFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{}).Preload("SubCategory")
	if f.SubCategoryID != 0 {
		query = query.Where("sub_category_id = ?", f.SubCategoryID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	if f.PerPage > 0 {
		query = query.Limit(f.PerPage)
	}
	var products []models.Product
	if err := query.Order("id asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *gormRepo) GetProductBySlug(slug string) (models.Product, error) {
	var p models.Product
	err := r.db.Preload("SubCategory").Where("slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrNotFound
	}
	return p, err
}

func (r *gormRepo) CreateProduct(p *models.Product) error {
	err := r.db.Create(p).Error
	if err != nil && strings.Contains(err.Error(), "duplicate") {
		return ErrDuplicateSlug
	}
	return err
}

func (r *gormRepo) UpdateProduct(p *models.Product) error {
	res := r.db.Model(&models.Product{}).Where("id = ?", p.ID).Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepo) DeleteProduct(id uint) error {
	res := r.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepo) ListCategories(withProducts bool) ([]models.Category, error) {
	query := r.db.Model(&models.Category{})
	if withProducts {
		query = query.Preload("SubCategories.Products")
	} else {
		query = query.Preload("SubCategories")
	}
	var categories []models.Category
	if err := query.Order("id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *gormRepo) CreateCategory(c *models.Category) error {
	err := r.db.Create(c).Error
	if err != nil && strings.Contains(err.Error(), "duplicate") {
		return ErrDuplicateSlug
	}
	return err
}

func (r *gormRepo) DeleteCategory(id uint) error {
	res := r.db.Delete(&models.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepo) CreateUser(u *models.User) error {
	err := r.db.Create(u).Error
	if err != nil && strings.Contains(err.Error(), "duplicate") {
		return ErrDuplicateEmail
	}
	return err
}

func (r *gormRepo) GetUserByEmail(email string) (models.User, error) {
	var u models.User
	err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

func (r *gormRepo) GetUser(id uint) (models.User, error) {
	var u models.User
	err := r.db.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

func (r *gormRepo) CreateOrder(o *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var total float64
		for i, item := range o.Items {
			var p models.Product
			if err := tx.First(&p, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			if p.Stock < item.Quantity {
				return &InsufficientStockError{ProductName: p.Name}
			}
			p.Stock -= item.Quantity
			if err := tx.Save(&p).Error; err != nil {
				return err
			}
			o.Items[i].Name = p.Name
			o.Items[i].Price = p.Price
			total += p.Price.Float64() * float64(item.Quantity)
		}
		o.TotalAmount = models.Amount(total)
		if o.Status == "" {
			o.Status = models.OrderStatusPending
		}
		return tx.Create(o).Error
	})
}

func (r *gormRepo) ListOrdersByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("user_id = ?", userID).Order("id asc").Find(&orders).Error
	return orders, err
}

func (r *gormRepo) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Preload("User").Order("id asc").Find(&orders).Error
	return orders, err
}

func (r *gormRepo) UpdateOrderStatus(id uint, status models.OrderStatus) (models.Order, error) {
	var o models.Order
	if err := r.db.Preload("Items").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}
	if err := r.db.Model(&o).Update("status", status).Error; err != nil {
		return models.Order{}, err
	}
	o.Status = status
	return o, nil
}
