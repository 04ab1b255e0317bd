package checkout

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Jathol7/oz-baby-toys-store/models"
	"github.com/Jathol7/oz-baby-toys-store/storage"
)

// Ledger is the local fallback order record, used when the backend order
// endpoint is unavailable but checkout is configured to succeed anyway. It
// is append-only and persisted in the same local store as the cart.
type Ledger struct {
	store storage.Store
}

// NewLedger creates a ledger over st.
func NewLedger(st storage.Store) *Ledger {
	return &Ledger{store: st}
}

// Record appends a locally-placed order and returns its generated reference.
func (l *Ledger) Record(customer models.CustomerInfo, items []models.CartLine, total float64) string {
	ref := time.Now().Format("20060102150405") + "-" + uuid.NewString()

	orders := l.Orders()
	orders = append(orders, models.Order{
		OrderRef:    ref,
		Customer:    customer,
		TotalAmount: models.Amount(total),
		Status:      models.OrderStatusPending,
		CreatedAt:   time.Now(),
		Items:       toOrderItems(items),
	})

	raw, err := json.Marshal(orders)
	if err != nil {
		log.Printf("⚠️ Failed to encode order ledger: %v", err)
		return ref
	}
	if err := l.store.Set(storage.KeyOrders, raw); err != nil {
		log.Printf("⚠️ Failed to persist order ledger: %v", err)
	}
	return ref
}

// Orders returns the locally recorded orders, oldest first. A corrupt ledger
// reads as empty.
func (l *Ledger) Orders() []models.Order {
	raw, ok := l.store.Get(storage.KeyOrders)
	if !ok {
		return nil
	}
	var orders []models.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		log.Printf("⚠️ Discarding corrupt order ledger: %v", err)
		return nil
	}
	return orders
}

func toOrderItems(lines []models.CartLine) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID: line.ID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return items
}
