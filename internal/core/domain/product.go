package domain

import "github.com/govalues/decimal"

type Product struct {
	ID          uint64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Available   bool
}

// Purchasable reports whether quantity units can be ordered.
func (p *Product) Purchasable(quantity int) bool {
	return p.Available && p.Stock >= quantity
}
