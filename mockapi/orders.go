package mockapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Jathol7/oz-baby-toys-store/models"
)

// POST /orders
func PlaceOrder(repo Repository, feed *OrderFeed) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if len(req.Items) == 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message": "The given data was invalid.",
				"errors":  gin.H{"items": []string{"The items field is required."}},
			})
			return
		}

		order := models.Order{
			UserID:    c.GetUint("user_id"), // zero for guest checkout
			OrderRef:  time.Now().Format("20060102150405") + "-" + uuid.NewString(),
			Customer:  req.CustomerInfo,
			Status:    models.OrderStatusPending,
			CreatedAt: time.Now(),
		}
		for _, line := range req.Items {
			order.Items = append(order.Items, models.OrderItem{
				ProductID: line.ID,
				Quantity:  line.Quantity,
			})
		}

		if err := repo.CreateOrder(&order); err != nil {
			var stockErr *InsufficientStockError
			switch {
			case errors.As(err, &stockErr):
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"message": stockErr.Error(),
					"errors":  gin.H{"items": []string{stockErr.Error()}},
				})
			case errors.Is(err, ErrNotFound):
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"message": "One of the ordered products does not exist.",
					"errors":  gin.H{"items": []string{"Unknown product in order."}},
				})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		feed.BroadcastOrder(order)
		c.JSON(http.StatusCreated, gin.H{"data": order})
	}
}

// GET /orders
func GetUserOrders(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := repo.ListOrdersByUser(c.GetUint("user_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		if orders == nil {
			orders = []models.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"data": orders})
	}
}

// GET /admin/orders
func GetAllOrders(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := repo.ListOrders()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		if orders == nil {
			orders = []models.Order{}
		}
		// Bare array, matching the production admin endpoint.
		c.JSON(http.StatusOK, orders)
	}
}

// PATCH /orders/:id/status
func UpdateOrderStatus(repo Repository, feed *OrderFeed) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		status, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message": "The given data was invalid.",
				"errors":  gin.H{"status": []string{err.Error()}},
			})
			return
		}

		order, err := repo.UpdateOrderStatus(uint(id), status)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}

		feed.BroadcastOrder(order)
		c.JSON(http.StatusOK, gin.H{"data": order})
	}
}
