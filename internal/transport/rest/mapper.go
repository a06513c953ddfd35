package rest

import (
	"encoding/json"

	"github.com/abgdnv/product-api/internal/store"
	"github.com/shopspring/decimal"
)

// ProductRequest is the payload of create and update requests.
// Pointer fields distinguish an absent or null value from a zero value.
type ProductRequest struct {
	Name            string           `json:"name"            validate:"notblank"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"           validate:"required,gt=0"`
	QuantityOfStock *int             `json:"quantityOfStock" validate:"required,gte=0,lte=2147483647"`
}

// ProductResponse is the JSON representation of a stored product.
type ProductResponse struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	Description     *string     `json:"description"`
	Price           json.Number `json:"price"`
	QuantityOfStock int         `json:"quantityOfStock"`
}

// toEntity converts a validated request to a product without an ID.
func toEntity(req ProductRequest) store.Product {
	p := store.Product{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.QuantityOfStock != nil {
		p.QuantityOfStock = *req.QuantityOfStock
	}
	return p
}

func toResponse(p *store.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           json.Number(p.Price.String()),
		QuantityOfStock: p.QuantityOfStock,
	}
}

func toResponseList(products []store.Product) []ProductResponse {
	list := make([]ProductResponse, 0, len(products))
	for i := range products {
		list = append(list, toResponse(&products[i]))
	}
	return list
}
