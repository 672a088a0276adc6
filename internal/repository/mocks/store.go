package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Alturino/storefront/internal/repository"
)

type MockStore struct {
	mock.Mock
}

var _ repository.Store = (*MockStore)(nil)

// ExecTx runs fn against the mock itself so expectations set on the mock apply inside the
// transaction as well.
func (m *MockStore) ExecTx(c context.Context, fn func(repository.Querier) error) error {
	args := m.Called(c)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *MockStore) DecrementCartItemQuantity(
	c context.Context,
	arg repository.DecrementCartItemQuantityParams,
) (int64, error) {
	args := m.Called(c, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) DeleteCartItemById(
	c context.Context,
	arg repository.DeleteCartItemByIdParams,
) (int64, error) {
	args := m.Called(c, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) DeleteCartItemWithQuantityOne(
	c context.Context,
	arg repository.DeleteCartItemWithQuantityOneParams,
) (int64, error) {
	args := m.Called(c, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) FindCartByUserId(c context.Context, userID uuid.UUID) (repository.Cart, error) {
	args := m.Called(c, userID)
	return args.Get(0).(repository.Cart), args.Error(1)
}

func (m *MockStore) FindCartItemWithCartById(
	c context.Context,
	id uuid.UUID,
) (repository.FindCartItemWithCartByIdRow, error) {
	args := m.Called(c, id)
	return args.Get(0).(repository.FindCartItemWithCartByIdRow), args.Error(1)
}

func (m *MockStore) FindCartItemsByCartId(
	c context.Context,
	cartID uuid.UUID,
) ([]repository.FindCartItemsByCartIdRow, error) {
	args := m.Called(c, cartID)
	return args.Get(0).([]repository.FindCartItemsByCartIdRow), args.Error(1)
}

func (m *MockStore) FindProductVariantById(
	c context.Context,
	id uuid.UUID,
) (repository.ProductVariant, error) {
	args := m.Called(c, id)
	return args.Get(0).(repository.ProductVariant), args.Error(1)
}

func (m *MockStore) FindProductVariantBySlug(
	c context.Context,
	slug string,
) (repository.FindProductVariantBySlugRow, error) {
	args := m.Called(c, slug)
	return args.Get(0).(repository.FindProductVariantBySlugRow), args.Error(1)
}

func (m *MockStore) FindProductVariants(c context.Context) ([]repository.ProductVariant, error) {
	args := m.Called(c)
	return args.Get(0).([]repository.ProductVariant), args.Error(1)
}

func (m *MockStore) FindProducts(c context.Context) ([]repository.Product, error) {
	args := m.Called(c)
	return args.Get(0).([]repository.Product), args.Error(1)
}

func (m *MockStore) FindShippingAddressById(
	c context.Context,
	id uuid.UUID,
) (repository.ShippingAddress, error) {
	args := m.Called(c, id)
	return args.Get(0).(repository.ShippingAddress), args.Error(1)
}

func (m *MockStore) FindShippingAddressesByUserId(
	c context.Context,
	userID uuid.UUID,
) ([]repository.ShippingAddress, error) {
	args := m.Called(c, userID)
	return args.Get(0).([]repository.ShippingAddress), args.Error(1)
}

func (m *MockStore) FindUserByEmail(c context.Context, email string) (repository.User, error) {
	args := m.Called(c, email)
	return args.Get(0).(repository.User), args.Error(1)
}

func (m *MockStore) FindUserById(c context.Context, id uuid.UUID) (repository.User, error) {
	args := m.Called(c, id)
	return args.Get(0).(repository.User), args.Error(1)
}

func (m *MockStore) InsertShippingAddress(
	c context.Context,
	arg repository.InsertShippingAddressParams,
) (repository.ShippingAddress, error) {
	args := m.Called(c, arg)
	return args.Get(0).(repository.ShippingAddress), args.Error(1)
}

func (m *MockStore) InsertUser(
	c context.Context,
	arg repository.InsertUserParams,
) (repository.User, error) {
	args := m.Called(c, arg)
	return args.Get(0).(repository.User), args.Error(1)
}

func (m *MockStore) UpdateCartShippingAddress(
	c context.Context,
	arg repository.UpdateCartShippingAddressParams,
) (repository.Cart, error) {
	args := m.Called(c, arg)
	return args.Get(0).(repository.Cart), args.Error(1)
}

func (m *MockStore) UpsertCartByUserId(c context.Context, userID uuid.UUID) (repository.Cart, error) {
	args := m.Called(c, userID)
	return args.Get(0).(repository.Cart), args.Error(1)
}

func (m *MockStore) UpsertCartItem(
	c context.Context,
	arg repository.UpsertCartItemParams,
) (repository.CartItem, error) {
	args := m.Called(c, arg)
	return args.Get(0).(repository.CartItem), args.Error(1)
}
