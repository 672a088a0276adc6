package response

import (
	"github.com/google/uuid"

	"github.com/Alturino/storefront/internal/repository"
)

type CartItem struct {
	ID                 uuid.UUID `json:"id"`
	ProductVariantID   uuid.UUID `json:"productVariantId"`
	ProductName        string    `json:"productName"`
	ProductVariantName string    `json:"productVariantName"`
	ProductVariantSlug string    `json:"productVariantSlug"`
	ImageUrl           string    `json:"imageUrl"`
	PriceInCents       int32     `json:"priceInCents"`
	Quantity           int32     `json:"quantity"`
	TotalPriceInCents  int64     `json:"totalPriceInCents"`
	TotalPrice         string    `json:"totalPrice"`
}

type Cart struct {
	ID                *uuid.UUID `json:"id"`
	ShippingAddressID *uuid.UUID `json:"shippingAddressId"`
	Items             []CartItem `json:"items"`
	TotalPriceInCents int64      `json:"totalPriceInCents"`
	TotalPrice        string     `json:"totalPrice"`
}

// EmptyCart is the view of a user that never added anything.
func EmptyCart() Cart {
	return Cart{Items: []CartItem{}, TotalPrice: FormatBRL(0)}
}

func NewCart(cart repository.Cart, rows []repository.FindCartItemsByCartIdRow) Cart {
	view := EmptyCart()
	id := cart.ID
	view.ID = &id
	if cart.ShippingAddressID.Valid {
		addressID := uuid.UUID(cart.ShippingAddressID.Bytes)
		view.ShippingAddressID = &addressID
	}

	for _, row := range rows {
		total := int64(row.ProductVariantPriceInCents) * int64(row.Quantity)
		view.Items = append(view.Items, CartItem{
			ID:                 row.ID,
			ProductVariantID:   row.ProductVariantID,
			ProductName:        row.ProductName,
			ProductVariantName: row.ProductVariantName,
			ProductVariantSlug: row.ProductVariantSlug,
			ImageUrl:           row.ProductVariantImageUrl,
			PriceInCents:       row.ProductVariantPriceInCents,
			Quantity:           row.Quantity,
			TotalPriceInCents:  total,
			TotalPrice:         FormatBRL(total),
		})
		view.TotalPriceInCents += total
	}
	view.TotalPrice = FormatBRL(view.TotalPriceInCents)
	return view
}
