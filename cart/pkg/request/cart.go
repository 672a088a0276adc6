package request

import (
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultQuantity = 1
	MaxQuantity     = 100
)

// CartItem addresses one cart item through the id carried in the path.
type CartItem struct {
	CartItemID string `validate:"required,uuid" json:"cartItemId" message:"ID do item é inválido"`
}

func (r CartItem) Normalize() CartItem {
	r.CartItemID = strings.TrimSpace(r.CartItemID)
	return r
}

// ID must only be called after validation succeeded.
func (r CartItem) ID() uuid.UUID {
	return uuid.MustParse(r.CartItemID)
}

type AddProductToCart struct {
	ProductVariantID uuid.UUID `validate:"required"      json:"productVariantId" message:"ID da variante é obrigatório"`
	Quantity         int32     `validate:"min=1,max=100" json:"quantity"         message:"Quantidade deve estar entre 1 e 100"`
}

// Normalize fills the default quantity of one when none was sent.
func (r AddProductToCart) Normalize() AddProductToCart {
	if r.Quantity == 0 {
		r.Quantity = DefaultQuantity
	}
	return r
}

type UpdateCartShippingAddress struct {
	ShippingAddressID uuid.UUID `validate:"required" json:"shippingAddressId" message:"ID do endereço é obrigatório"`
}
