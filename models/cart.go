package models

// CartLine is one product in the visitor's cart together with the quantity
// they intend to buy. The product fields are a snapshot taken when the line
// was created; quantity is always at least 1 (a line dropped to 0 is removed
// from the cart entirely).
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is price times quantity for this line.
func (l CartLine) LineTotal() float64 {
	return l.Price.Float64() * float64(l.Quantity)
}
