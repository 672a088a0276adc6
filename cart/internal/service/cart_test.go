package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/internal/cache"
	"github.com/Alturino/storefront/internal/cache/cachetest"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/repository/mocks"
	"github.com/Alturino/storefront/internal/session"
	"github.com/Alturino/storefront/internal/validate"
)

func authenticated(userID uuid.UUID) context.Context {
	return session.AttachToContext(context.Background(), &session.Session{UserID: userID})
}

func newService(store *mocks.MockStore, memory *cachetest.Memory) *CartService {
	return NewCartService(store, memory, validate.New())
}

func cartItem(id uuid.UUID) request.CartItem {
	return request.CartItem{CartItemID: id.String()}
}

func TestRemoveCartItem(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	itemID := uuid.New()
	row := repository.FindCartItemWithCartByIdRow{ID: itemID, CartID: uuid.New(), Quantity: 3, CartUserID: owner}

	t.Run("owner removes the item and the cart cache is dropped", func(t *testing.T) {
		store := &mocks.MockStore{}
		memory := cachetest.NewMemory()
		require.NoError(t, memory.Set(context.Background(), cache.CartKey(owner), response.EmptyCart()))
		store.On("FindCartItemWithCartById", mock.Anything, itemID).Return(row, nil)
		store.On("DeleteCartItemById", mock.Anything, repository.DeleteCartItemByIdParams{ID: itemID, UserID: owner}).
			Return(int64(1), nil)

		err := newService(store, memory).RemoveCartItem(authenticated(owner), cartItem(itemID))

		require.NoError(t, err)
		assert.False(t, memory.Has(cache.CartKey(owner)))
		store.AssertExpectations(t)
	})

	t.Run("second removal is not found", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("FindCartItemWithCartById", mock.Anything, itemID).
			Return(repository.FindCartItemWithCartByIdRow{}, pgx.ErrNoRows)

		err := newService(store, cachetest.NewMemory()).RemoveCartItem(authenticated(owner), cartItem(itemID))

		assert.ErrorIs(t, err, inErrors.ErrNotFound)
		store.AssertNotCalled(t, "DeleteCartItemById", mock.Anything, mock.Anything)
	})

	t.Run("foreign item is forbidden and untouched", func(t *testing.T) {
		store := &mocks.MockStore{}
		memory := cachetest.NewMemory()
		store.On("FindCartItemWithCartById", mock.Anything, itemID).Return(row, nil)

		err := newService(store, memory).RemoveCartItem(authenticated(stranger), cartItem(itemID))

		assert.ErrorIs(t, err, inErrors.ErrForbidden)
		store.AssertNotCalled(t, "DeleteCartItemById", mock.Anything, mock.Anything)
		assert.Empty(t, memory.Deleted)
	})

	t.Run("no session writes nothing", func(t *testing.T) {
		store := &mocks.MockStore{}

		err := newService(store, cachetest.NewMemory()).RemoveCartItem(context.Background(), cartItem(itemID))

		assert.ErrorIs(t, err, inErrors.ErrUnauthenticated)
		store.AssertNotCalled(t, "FindCartItemWithCartById", mock.Anything, mock.Anything)
	})

	t.Run("malformed id fails validation after authentication", func(t *testing.T) {
		store := &mocks.MockStore{}

		err := newService(store, cachetest.NewMemory()).
			RemoveCartItem(authenticated(owner), request.CartItem{CartItemID: "not-a-uuid"})

		assert.ErrorIs(t, err, inErrors.ErrValidationFailed)

		err = newService(store, cachetest.NewMemory()).
			RemoveCartItem(context.Background(), request.CartItem{CartItemID: "not-a-uuid"})
		assert.ErrorIs(t, err, inErrors.ErrUnauthenticated)
	})

	t.Run("item vanishing between check and delete is not found", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("FindCartItemWithCartById", mock.Anything, itemID).Return(row, nil)
		store.On("DeleteCartItemById", mock.Anything, mock.Anything).Return(int64(0), nil)

		err := newService(store, cachetest.NewMemory()).RemoveCartItem(authenticated(owner), cartItem(itemID))

		assert.ErrorIs(t, err, inErrors.ErrNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("FindCartItemWithCartById", mock.Anything, itemID).
			Return(repository.FindCartItemWithCartByIdRow{}, fmt.Errorf("connection reset"))

		err := newService(store, cachetest.NewMemory()).RemoveCartItem(authenticated(owner), cartItem(itemID))

		assert.ErrorIs(t, err, inErrors.ErrStore)
	})
}

func TestDecreaseCartItemQuantity(t *testing.T) {
	owner := uuid.New()
	itemID := uuid.New()
	params := repository.DecrementCartItemQuantityParams{ID: itemID, UserID: owner}
	deleteParams := repository.DeleteCartItemWithQuantityOneParams{ID: itemID, UserID: owner}

	t.Run("quantity above one is decremented", func(t *testing.T) {
		store := &mocks.MockStore{}
		memory := cachetest.NewMemory()
		store.On("FindCartItemWithCartById", mock.Anything, itemID).
			Return(repository.FindCartItemWithCartByIdRow{ID: itemID, Quantity: 3, CartUserID: owner}, nil)
		store.On("DecrementCartItemQuantity", mock.Anything, params).Return(int64(1), nil)

		err := newService(store, memory).DecreaseCartItemQuantity(authenticated(owner), cartItem(itemID))

		require.NoError(t, err)
		store.AssertNotCalled(t, "DeleteCartItemWithQuantityOne", mock.Anything, mock.Anything)
		assert.Equal(t, []string{cache.CartKey(owner)}, memory.Deleted)
	})

	t.Run("quantity one deletes the item", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("FindCartItemWithCartById", mock.Anything, itemID).
			Return(repository.FindCartItemWithCartByIdRow{ID: itemID, Quantity: 1, CartUserID: owner}, nil)
		store.On("DecrementCartItemQuantity", mock.Anything, params).Return(int64(0), nil)
		store.On("DeleteCartItemWithQuantityOne", mock.Anything, deleteParams).Return(int64(1), nil)

		err := newService(store, cachetest.NewMemory()).DecreaseCartItemQuantity(authenticated(owner), cartItem(itemID))

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("item vanished concurrently is not found", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("FindCartItemWithCartById", mock.Anything, itemID).
			Return(repository.FindCartItemWithCartByIdRow{ID: itemID, Quantity: 1, CartUserID: owner}, nil)
		store.On("DecrementCartItemQuantity", mock.Anything, params).Return(int64(0), nil)
		store.On("DeleteCartItemWithQuantityOne", mock.Anything, deleteParams).Return(int64(0), nil)

		err := newService(store, cachetest.NewMemory()).DecreaseCartItemQuantity(authenticated(owner), cartItem(itemID))

		assert.ErrorIs(t, err, inErrors.ErrNotFound)
	})

	t.Run("unknown item is not found", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("FindCartItemWithCartById", mock.Anything, itemID).
			Return(repository.FindCartItemWithCartByIdRow{}, pgx.ErrNoRows)

		err := newService(store, cachetest.NewMemory()).DecreaseCartItemQuantity(authenticated(owner), cartItem(itemID))

		assert.ErrorIs(t, err, inErrors.ErrNotFound)
	})

	t.Run("foreign item is forbidden", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("FindCartItemWithCartById", mock.Anything, itemID).
			Return(repository.FindCartItemWithCartByIdRow{ID: itemID, Quantity: 2, CartUserID: uuid.New()}, nil)

		err := newService(store, cachetest.NewMemory()).DecreaseCartItemQuantity(authenticated(owner), cartItem(itemID))

		assert.ErrorIs(t, err, inErrors.ErrForbidden)
		store.AssertNotCalled(t, "DecrementCartItemQuantity", mock.Anything, mock.Anything)
	})

	t.Run("no session", func(t *testing.T) {
		store := &mocks.MockStore{}

		err := newService(store, cachetest.NewMemory()).DecreaseCartItemQuantity(context.Background(), cartItem(itemID))

		assert.ErrorIs(t, err, inErrors.ErrUnauthenticated)
		store.AssertNotCalled(t, "FindCartItemWithCartById", mock.Anything, mock.Anything)
	})
}

func TestUpdateCartShippingAddress(t *testing.T) {
	owner := uuid.New()
	addressID := uuid.New()
	param := request.UpdateCartShippingAddress{ShippingAddressID: addressID}

	t.Run("owned address is selected", func(t *testing.T) {
		store := &mocks.MockStore{}
		memory := cachetest.NewMemory()
		store.On("FindShippingAddressById", mock.Anything, addressID).
			Return(repository.ShippingAddress{ID: addressID, UserID: owner}, nil)
		store.On("FindCartByUserId", mock.Anything, owner).Return(repository.Cart{ID: uuid.New(), UserID: owner}, nil)
		store.On("UpdateCartShippingAddress", mock.Anything, repository.UpdateCartShippingAddressParams{
			UserID:            owner,
			ShippingAddressID: addressID,
		}).Return(repository.Cart{UserID: owner}, nil)

		_, err := newService(store, memory).UpdateCartShippingAddress(authenticated(owner), param)

		require.NoError(t, err)
		assert.Equal(t, []string{cache.CartKey(owner)}, memory.Deleted)
	})

	t.Run("foreign address is forbidden", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("FindShippingAddressById", mock.Anything, addressID).
			Return(repository.ShippingAddress{ID: addressID, UserID: uuid.New()}, nil)

		_, err := newService(store, cachetest.NewMemory()).UpdateCartShippingAddress(authenticated(owner), param)

		assert.ErrorIs(t, err, inErrors.ErrForbidden)
		store.AssertNotCalled(t, "UpdateCartShippingAddress", mock.Anything, mock.Anything)
	})

	t.Run("unknown address is not found", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("FindShippingAddressById", mock.Anything, addressID).
			Return(repository.ShippingAddress{}, pgx.ErrNoRows)

		_, err := newService(store, cachetest.NewMemory()).UpdateCartShippingAddress(authenticated(owner), param)

		assert.ErrorIs(t, err, inErrors.ErrNotFound)
	})

	t.Run("missing cart is not found", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("FindShippingAddressById", mock.Anything, addressID).
			Return(repository.ShippingAddress{ID: addressID, UserID: owner}, nil)
		store.On("FindCartByUserId", mock.Anything, owner).Return(repository.Cart{}, pgx.ErrNoRows)

		_, err := newService(store, cachetest.NewMemory()).UpdateCartShippingAddress(authenticated(owner), param)

		assert.ErrorIs(t, err, inErrors.ErrNotFound)
		store.AssertNotCalled(t, "UpdateCartShippingAddress", mock.Anything, mock.Anything)
	})

	t.Run("empty id fails validation", func(t *testing.T) {
		store := &mocks.MockStore{}

		_, err := newService(store, cachetest.NewMemory()).
			UpdateCartShippingAddress(authenticated(owner), request.UpdateCartShippingAddress{})

		validationErr := &inErrors.ValidationError{}
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "ID do endereço é obrigatório", validationErr.Fields["shippingAddressId"])
	})
}

func TestAddProductToCart(t *testing.T) {
	owner := uuid.New()
	variantID := uuid.New()
	cartID := uuid.New()

	t.Run("quantity defaults to one and the cart is created on demand", func(t *testing.T) {
		store := &mocks.MockStore{}
		memory := cachetest.NewMemory()
		store.On("FindProductVariantById", mock.Anything, variantID).Return(repository.ProductVariant{ID: variantID}, nil)
		store.On("ExecTx", mock.Anything).Return(nil)
		store.On("UpsertCartByUserId", mock.Anything, owner).Return(repository.Cart{ID: cartID, UserID: owner}, nil)
		store.On("UpsertCartItem", mock.Anything, repository.UpsertCartItemParams{
			CartID:           cartID,
			ProductVariantID: variantID,
			Quantity:         1,
		}).Return(repository.CartItem{ID: uuid.New(), CartID: cartID, Quantity: 4}, nil)

		item, err := newService(store, memory).
			AddProductToCart(authenticated(owner), request.AddProductToCart{ProductVariantID: variantID})

		require.NoError(t, err)
		assert.Equal(t, int32(4), item.Quantity)
		assert.Equal(t, []string{cache.CartKey(owner)}, memory.Deleted)
		store.AssertExpectations(t)
	})

	t.Run("quantity above the limit fails validation", func(t *testing.T) {
		store := &mocks.MockStore{}

		_, err := newService(store, cachetest.NewMemory()).
			AddProductToCart(authenticated(owner), request.AddProductToCart{ProductVariantID: variantID, Quantity: 101})

		assert.ErrorIs(t, err, inErrors.ErrValidationFailed)
		store.AssertNotCalled(t, "FindProductVariantById", mock.Anything, mock.Anything)
	})

	t.Run("unknown variant is not found", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("FindProductVariantById", mock.Anything, variantID).Return(repository.ProductVariant{}, pgx.ErrNoRows)

		_, err := newService(store, cachetest.NewMemory()).
			AddProductToCart(authenticated(owner), request.AddProductToCart{ProductVariantID: variantID, Quantity: 2})

		assert.ErrorIs(t, err, inErrors.ErrNotFound)
		store.AssertNotCalled(t, "ExecTx", mock.Anything)
	})

	t.Run("transaction failure is a store error", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("FindProductVariantById", mock.Anything, variantID).Return(repository.ProductVariant{ID: variantID}, nil)
		store.On("ExecTx", mock.Anything).Return(fmt.Errorf("failed initializing transaction"))

		_, err := newService(store, cachetest.NewMemory()).
			AddProductToCart(authenticated(owner), request.AddProductToCart{ProductVariantID: variantID})

		assert.ErrorIs(t, err, inErrors.ErrStore)
	})
}

func TestGetCart(t *testing.T) {
	owner := uuid.New()
	cartID := uuid.New()

	t.Run("no cart is an empty view", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("FindCartByUserId", mock.Anything, owner).Return(repository.Cart{}, pgx.ErrNoRows)

		view, err := newService(store, cachetest.NewMemory()).GetCart(authenticated(owner))

		require.NoError(t, err)
		assert.Empty(t, view.Items)
		assert.Equal(t, "R$ 0,00", view.TotalPrice)
	})

	t.Run("totals are computed and the view is cached", func(t *testing.T) {
		store := &mocks.MockStore{}
		memory := cachetest.NewMemory()
		store.On("FindCartByUserId", mock.Anything, owner).Return(repository.Cart{ID: cartID, UserID: owner}, nil).Once()
		store.On("FindCartItemsByCartId", mock.Anything, cartID).Return([]repository.FindCartItemsByCartIdRow{
			{ID: uuid.New(), Quantity: 3, ProductVariantPriceInCents: 4990},
		}, nil).Once()
		svc := newService(store, memory)

		view, err := svc.GetCart(authenticated(owner))
		require.NoError(t, err)
		assert.Equal(t, int64(14970), view.TotalPriceInCents)
		assert.Equal(t, "R$ 149,70", view.TotalPrice)

		cached, err := svc.GetCart(authenticated(owner))
		require.NoError(t, err)
		assert.Equal(t, view, cached)
		store.AssertNumberOfCalls(t, "FindCartByUserId", 1)
	})

	t.Run("cart invalidated while loading is not cached", func(t *testing.T) {
		store := &mocks.MockStore{}
		memory := cachetest.NewMemory()
		store.On("FindCartByUserId", mock.Anything, owner).
			Run(func(mock.Arguments) {
				require.NoError(t, memory.Delete(context.Background(), cache.CartKey(owner)))
			}).
			Return(repository.Cart{ID: cartID, UserID: owner}, nil)
		store.On("FindCartItemsByCartId", mock.Anything, cartID).Return([]repository.FindCartItemsByCartIdRow{}, nil)

		view, err := newService(store, memory).GetCart(authenticated(owner))

		require.NoError(t, err)
		assert.Equal(t, &cartID, view.ID)
		assert.False(t, memory.Has(cache.CartKey(owner)))
	})

	t.Run("no session", func(t *testing.T) {
		_, err := newService(&mocks.MockStore{}, cachetest.NewMemory()).GetCart(context.Background())
		assert.ErrorIs(t, err, inErrors.ErrUnauthenticated)
	})
}
