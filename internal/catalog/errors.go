// Package catalog implements the product catalog service behind the REST
// API: an order-preserving in-memory store plus the business layer over it.
package catalog

import "errors"

var (
	// ErrProductNotFound is returned when no product exists with the
	// requested SKU.
	ErrProductNotFound = errors.New("product not found")

	// ErrSKUExists is returned by Create when the SKU is already taken.
	ErrSKUExists = errors.New("sku already exists")
)
