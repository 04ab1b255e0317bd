// Package cart maintains the visitor's pending purchase selection. The cart
// lives for the whole process and survives restarts through the local
// key-value store; it is independent of authentication state.
package cart

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/Jathol7/oz-baby-toys-store/models"
	"github.com/Jathol7/oz-baby-toys-store/storage"
)

// Store holds the cart lines in insertion order, which is also display
// order. At most one line exists per product ID; a line's quantity is always
// at least 1.
type Store struct {
	mu    sync.Mutex
	lines []models.CartLine
	store storage.Store
}

// New creates a cart store backed by st, rehydrating any persisted lines.
// A corrupt persisted cart is discarded and replaced on the next write.
func New(st storage.Store) *Store {
	c := &Store{store: st}
	if raw, ok := st.Get(storage.KeyCart); ok {
		if err := json.Unmarshal(raw, &c.lines); err != nil {
			log.Printf("⚠️ Discarding corrupt persisted cart: %v", err)
			c.lines = nil
		}
	}
	return c
}

// Add puts quantity units of product into the cart. If a line for the
// product already exists its quantity is incremented; otherwise a new line
// is appended. Quantities below 1 are treated as 1.
func (c *Store) Add(p models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ID == p.ID {
			c.lines[i].Quantity += quantity
			c.persist()
			return
		}
	}
	c.lines = append(c.lines, models.CartLine{Product: p, Quantity: quantity})
	c.persist()
}

// Remove deletes the line for productID. Removing an absent product is a
// no-op, not an error.
func (c *Store) Remove(productID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
}

// UpdateQuantity sets the line's quantity. A quantity of zero or less
// removes the line entirely, so no non-positive quantity is ever observable.
func (c *Store) UpdateQuantity(productID uint, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ID == productID {
			c.lines[i].Quantity = quantity
			c.persist()
			return
		}
	}
}

// Clear empties the cart and persists the empty state.
func (c *Store) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.persist()
}

// Lines returns a copy of the cart lines in display order.
func (c *Store) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalItems is the sum of quantities across all lines.
func (c *Store) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is the sum of price times quantity across all lines.
func (c *Store) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, l := range c.lines {
		total += l.LineTotal()
	}
	return total
}

func (c *Store) removeLocked(productID uint) {
	for i := range c.lines {
		if c.lines[i].ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.persist()
			return
		}
	}
}

// persist writes the lines best-effort; a failed write only means the cart
// will not survive a restart. Callers hold c.mu.
func (c *Store) persist() {
	lines := c.lines
	if lines == nil {
		lines = []models.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		log.Printf("⚠️ Failed to encode cart: %v", err)
		return
	}
	if err := c.store.Set(storage.KeyCart, raw); err != nil {
		log.Printf("⚠️ Failed to persist cart: %v", err)
	}
}
