// Package product defines the Product record shared by the client-side
// store, the REST client and the catalog service.
package product

// Product is a single catalog entry. SKU uniquely identifies a product
// within a collection.
//
// Total is carried as sent by the service; this layer never recomputes it
// from Price and Quantity.
type Product struct {
	SKU      string  `json:"sku"      validate:"required"`
	Name     string  `json:"name"     validate:"required,max=100"`
	Price    float64 `json:"price"    validate:"required,min=0"`
	Quantity int     `json:"quantity" validate:"min=0"`
	Total    float64 `json:"total"    validate:"min=0"`
}
