// Package checkout turns the cart into an order. Submission is two-phase:
// snapshot the cart, attempt the remote order, then either clear the cart or
// roll back depending on the outcome and the configured policy.
package checkout

import (
	"context"
	"errors"
	"log"

	"github.com/Jathol7/oz-baby-toys-store/cart"
	"github.com/Jathol7/oz-baby-toys-store/models"
)

// OrderAPI is the slice of the backend client checkout needs.
type OrderAPI interface {
	PlaceOrder(ctx context.Context, req models.PlaceOrderRequest) (models.Order, error)
}

// Policy controls what happens when the remote order call fails.
type Policy struct {
	// MaskFailures keeps the storefront's historical behavior: a failed
	// remote submission is still reported as success, the order is recorded
	// in the local ledger, and the cart is cleared. With it off, a failure
	// leaves the cart intact and is returned to the caller.
	MaskFailures bool
}

// DefaultPolicy matches the shipped product behavior.
var DefaultPolicy = Policy{MaskFailures: true}

// Receipt is the outcome of a successful (or masked) checkout.
type Receipt struct {
	OrderRef string
	// Local marks orders that only exist in the fallback ledger because the
	// backend rejected or never received the submission.
	Local bool
}

// ErrEmptyCart is returned when Submit is called with nothing in the cart.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// Service coordinates cart, backend and ledger for one checkout flow.
type Service struct {
	API    OrderAPI
	Cart   *cart.Store
	Ledger *Ledger
	Policy Policy
}

// NewService wires a checkout service with the default policy.
func NewService(api OrderAPI, c *cart.Store, ledger *Ledger) *Service {
	return &Service{API: api, Cart: c, Ledger: ledger, Policy: DefaultPolicy}
}

// Submit places the order for the current cart contents.
//
// On remote success the cart is cleared and the backend's reference is
// returned. On remote failure the policy decides: masked failures record the
// snapshot in the local ledger, clear the cart and return a local receipt;
// strict mode leaves the cart untouched and returns the error.
func (s *Service) Submit(ctx context.Context, customer models.CustomerInfo) (Receipt, error) {
	lines := s.Cart.Lines()
	if len(lines) == 0 {
		return Receipt{}, ErrEmptyCart
	}
	total := s.Cart.TotalPrice()

	req := models.PlaceOrderRequest{
		CustomerInfo: customer,
		Items:        lines,
		TotalAmount:  total,
	}

	order, err := s.API.PlaceOrder(ctx, req)
	if err == nil {
		s.Cart.Clear()
		return Receipt{OrderRef: order.OrderRef}, nil
	}

	if !s.Policy.MaskFailures {
		return Receipt{}, err
	}

	log.Printf("Order submission failed, recording locally: %v", err)
	ref := s.Ledger.Record(customer, lines, total)
	s.Cart.Clear()
	return Receipt{OrderRef: ref, Local: true}, nil
}
