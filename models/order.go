package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting confirmation
	OrderStatusProcessing OrderStatus = "processing" // Being picked and packed
	OrderStatusShipped    OrderStatus = "shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the items
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before shipping
)

// ParseOrderStatus maps a string to an OrderStatus, case-insensitively.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(s)) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusProcessing:
		return OrderStatusProcessing, nil
	case OrderStatusShipped:
		return OrderStatusShipped, nil
	case OrderStatusDelivered:
		return OrderStatusDelivered, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status: " + s)
	}
}

type Order struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderRef    string      `gorm:"uniqueIndex" json:"order_ref,omitempty"`
	UserID      uint        `gorm:"index" json:"user_id"`
	User        *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Customer    CustomerInfo `gorm:"embedded" json:"customer"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	TotalAmount Amount      `json:"total_amount"`
	Status      OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID        uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint     `gorm:"index" json:"order_id"`
	ProductID uint     `json:"product_id"`
	Name      string   `json:"name"`
	Price     Amount   `json:"price"`
	Quantity  int      `json:"quantity"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// CustomerInfo is the shipping form data submitted at checkout. Field names
// follow the backend contract, which mixes camelCase form fields with
// snake_case computed ones.
type CustomerInfo struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Phone    string `json:"phone"`
}

// PlaceOrderRequest is the POST /orders payload: shipping info plus a
// snapshot of the cart at submission time.
type PlaceOrderRequest struct {
	CustomerInfo
	Items       []CartLine `json:"items"`
	TotalAmount float64    `json:"total_amount"`
}
