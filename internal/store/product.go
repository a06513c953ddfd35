package store

import "github.com/shopspring/decimal"

// Product represents a product entity in the store.
type Product struct {
	ID              int64
	Name            string
	Description     *string
	Price           decimal.Decimal
	QuantityOfStock int
}

// clone returns a deep copy so that callers never share the description pointer with the store.
func (p Product) clone() Product {
	if p.Description != nil {
		d := *p.Description
		p.Description = &d
	}
	return p
}
