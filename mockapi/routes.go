package mockapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with every route group wired: public
// catalog, auth, token-protected user routes and the admin group.
func NewRouter(repo Repository) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	feed := NewOrderFeed()
	SetupRoutes(r, repo, feed)
	return r
}

// SetupRoutes wires all route groups onto r.
func SetupRoutes(r *gin.Engine, repo Repository, feed *OrderFeed) {
	// Public catalog + auth
	r.GET("/products", GetProducts(repo))
	r.GET("/products/:slug", GetProductBySlug(repo))
	r.GET("/categories", GetCategories(repo))
	r.POST("/register", Register(repo))
	r.POST("/login", Login(repo))

	// Checkout is deliberately open: the storefront allows guest orders.
	r.POST("/orders", PlaceOrder(repo, feed))

	// Token-protected user routes
	user := r.Group("/")
	user.Use(ValidateToken)
	{
		user.POST("/logout", Logout())
		user.GET("/user", Profile(repo))
		user.GET("/orders", GetUserOrders(repo))
	}

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(ValidateToken, RequireAdmin)
	{
		admin.GET("/products", GetAdminProducts(repo))
		admin.POST("/products", CreateProduct(repo))
		admin.PUT("/products/:id", UpdateProduct(repo))
		admin.DELETE("/products/:id", DeleteProduct(repo))
		admin.GET("/products/export", ExportProductsToExcel(repo))

		admin.GET("/categories", GetAdminCategories(repo))
		admin.POST("/categories", CreateCategory(repo))
		admin.DELETE("/categories/:id", DeleteCategory(repo))

		admin.GET("/orders", GetAllOrders(repo))
	}

	// Status transitions sit under /orders but are admin-only.
	r.PATCH("/orders/:id/status", ValidateToken, RequireAdmin, UpdateOrderStatus(repo, feed))

	// Live order feed for the admin console
	r.GET("/ws/orders", feed.Handler)
}
