package repository

import (
	"context"

	"github.com/google/uuid"
)

type Querier interface {
	DecrementCartItemQuantity(c context.Context, arg DecrementCartItemQuantityParams) (int64, error)
	DeleteCartItemById(c context.Context, arg DeleteCartItemByIdParams) (int64, error)
	DeleteCartItemWithQuantityOne(c context.Context, arg DeleteCartItemWithQuantityOneParams) (int64, error)
	FindCartByUserId(c context.Context, userID uuid.UUID) (Cart, error)
	FindCartItemWithCartById(c context.Context, id uuid.UUID) (FindCartItemWithCartByIdRow, error)
	FindCartItemsByCartId(c context.Context, cartID uuid.UUID) ([]FindCartItemsByCartIdRow, error)
	FindProductVariantById(c context.Context, id uuid.UUID) (ProductVariant, error)
	FindProductVariantBySlug(c context.Context, slug string) (FindProductVariantBySlugRow, error)
	FindProductVariants(c context.Context) ([]ProductVariant, error)
	FindProducts(c context.Context) ([]Product, error)
	FindShippingAddressById(c context.Context, id uuid.UUID) (ShippingAddress, error)
	FindShippingAddressesByUserId(c context.Context, userID uuid.UUID) ([]ShippingAddress, error)
	FindUserByEmail(c context.Context, email string) (User, error)
	FindUserById(c context.Context, id uuid.UUID) (User, error)
	InsertShippingAddress(c context.Context, arg InsertShippingAddressParams) (ShippingAddress, error)
	InsertUser(c context.Context, arg InsertUserParams) (User, error)
	UpdateCartShippingAddress(c context.Context, arg UpdateCartShippingAddressParams) (Cart, error)
	UpsertCartByUserId(c context.Context, userID uuid.UUID) (Cart, error)
	UpsertCartItem(c context.Context, arg UpsertCartItemParams) (CartItem, error)
}

var _ Querier = (*Queries)(nil)
