package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/address/pkg/request"
	"github.com/Alturino/storefront/address/pkg/response"
	"github.com/Alturino/storefront/internal/cache"
	"github.com/Alturino/storefront/internal/cache/cachetest"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/repository/mocks"
	"github.com/Alturino/storefront/internal/session"
	"github.com/Alturino/storefront/internal/validate"
)

func validRequest() request.CreateShippingAddress {
	return request.CreateShippingAddress{
		Email:        "ana@example.com",
		FirstName:    "Ana",
		LastName:     "Silva",
		CpfCnpj:      "12345678901",
		Phone:        "11999999999",
		Cep:          "01001000",
		Address:      "Praça da Sé",
		Number:       "1",
		Neighborhood: "Sé",
		City:         "São Paulo",
		State:        "SP",
	}
}

func authenticated(userID uuid.UUID) context.Context {
	return session.AttachToContext(context.Background(), &session.Session{UserID: userID})
}

func rowFrom(params repository.InsertShippingAddressParams) repository.ShippingAddress {
	return repository.ShippingAddress{
		ID:            uuid.New(),
		UserID:        params.UserID,
		RecipientName: params.RecipientName,
		Street:        params.Street,
		Number:        params.Number,
		Complement:    params.Complement,
		Neighborhood:  params.Neighborhood,
		City:          params.City,
		State:         params.State,
		ZipCode:       params.ZipCode,
		Country:       params.Country,
		Phone:         params.Phone,
		Email:         params.Email,
		CpfOrCnpj:     params.CpfOrCnpj,
	}
}

func TestCreateShippingAddress(t *testing.T) {
	userID := uuid.New()

	t.Run("valid input is stored with recipient name and country", func(t *testing.T) {
		store := &mocks.MockStore{}
		memory := cachetest.NewMemory()
		require.NoError(t, memory.Set(context.Background(), cache.ShippingAddressesKey(userID), []string{}))
		var inserted repository.InsertShippingAddressParams
		store.On("InsertShippingAddress", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { inserted = args.Get(1).(repository.InsertShippingAddressParams) }).
			Return(rowFrom(validRequest().Normalize().InsertParams(userID)), nil)

		address, err := NewAddressService(store, memory, validate.New()).
			CreateShippingAddress(authenticated(userID), validRequest())

		require.NoError(t, err)
		assert.Equal(t, "Ana Silva", address.RecipientName)
		assert.Equal(t, "01001000", address.ZipCode)
		assert.Equal(t, "Brasil", inserted.Country)
		assert.Equal(t, userID, inserted.UserID)
		assert.False(t, inserted.Complement.Valid)
		assert.False(t, memory.Has(cache.ShippingAddressesKey(userID)))
		store.AssertNotCalled(t, "ExecTx", mock.Anything)
	})

	t.Run("no session writes nothing", func(t *testing.T) {
		store := &mocks.MockStore{}

		_, err := NewAddressService(store, cachetest.NewMemory(), validate.New()).
			CreateShippingAddress(context.Background(), validRequest())

		assert.ErrorIs(t, err, inErrors.ErrUnauthenticated)
		store.AssertNotCalled(t, "InsertShippingAddress", mock.Anything, mock.Anything)
	})

	t.Run("invalid fields short circuit with messages", func(t *testing.T) {
		store := &mocks.MockStore{}
		req := validRequest()
		req.Cep = "0100"
		req.Phone = "123"
		req.CpfCnpj = "123"
		req.State = "S"
		req.Email = "ana"
		req.City = "   "

		_, err := NewAddressService(store, cachetest.NewMemory(), validate.New()).
			CreateShippingAddress(authenticated(userID), req)

		validationErr := &inErrors.ValidationError{}
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, map[string]string{
			"cep":     "CEP deve ter 8 dígitos",
			"phone":   "Celular deve ter 10 ou 11 dígitos",
			"cpfCnpj": "CPF deve ter 11 dígitos ou CNPJ deve ter 14 dígitos",
			"state":   "Estado é obrigatório",
			"email":   "Email inválido",
			"city":    "Cidade é obrigatória",
		}, validationErr.Fields)
		store.AssertNotCalled(t, "InsertShippingAddress", mock.Anything, mock.Anything)
	})

	t.Run("complement is kept when present", func(t *testing.T) {
		store := &mocks.MockStore{}
		req := validRequest()
		req.Complement = " Apto 12 "
		store.On("InsertShippingAddress", mock.Anything, mock.MatchedBy(func(p repository.InsertShippingAddressParams) bool {
			return p.Complement == pgtype.Text{String: "Apto 12", Valid: true}
		})).Return(repository.ShippingAddress{ID: uuid.New()}, nil)

		_, err := NewAddressService(store, cachetest.NewMemory(), validate.New()).
			CreateShippingAddress(authenticated(userID), req)

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("store failure is a store error", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("InsertShippingAddress", mock.Anything, mock.Anything).
			Return(repository.ShippingAddress{}, fmt.Errorf("connection refused"))

		_, err := NewAddressService(store, cachetest.NewMemory(), validate.New()).
			CreateShippingAddress(authenticated(userID), validRequest())

		assert.ErrorIs(t, err, inErrors.ErrStore)
	})

	t.Run("link to cart inserts and selects the address in one transaction", func(t *testing.T) {
		store := &mocks.MockStore{}
		memory := cachetest.NewMemory()
		addressID := uuid.New()
		req := validRequest()
		req.LinkToCart = true
		store.On("ExecTx", mock.Anything).Return(nil).Once()
		store.On("InsertShippingAddress", mock.Anything, mock.Anything).
			Return(repository.ShippingAddress{ID: addressID, UserID: userID}, nil)
		store.On("UpsertCartByUserId", mock.Anything, userID).Return(repository.Cart{UserID: userID}, nil)
		store.On("UpdateCartShippingAddress", mock.Anything, repository.UpdateCartShippingAddressParams{
			UserID:            userID,
			ShippingAddressID: addressID,
		}).Return(repository.Cart{UserID: userID}, nil)

		address, err := NewAddressService(store, memory, validate.New()).
			CreateShippingAddress(authenticated(userID), req)

		require.NoError(t, err)
		assert.Equal(t, addressID, address.ID)
		assert.ElementsMatch(t, []string{cache.ShippingAddressesKey(userID), cache.CartKey(userID)}, memory.Deleted)
		store.AssertExpectations(t)
	})

	t.Run("link to cart failure is a store error", func(t *testing.T) {
		store := &mocks.MockStore{}
		req := validRequest()
		req.LinkToCart = true
		store.On("ExecTx", mock.Anything).Return(nil)
		store.On("InsertShippingAddress", mock.Anything, mock.Anything).
			Return(repository.ShippingAddress{ID: uuid.New()}, nil)
		store.On("UpsertCartByUserId", mock.Anything, userID).
			Return(repository.Cart{}, fmt.Errorf("deadlock detected"))

		_, err := NewAddressService(store, cachetest.NewMemory(), validate.New()).
			CreateShippingAddress(authenticated(userID), req)

		assert.ErrorIs(t, err, inErrors.ErrStore)
		store.AssertNotCalled(t, "UpdateCartShippingAddress", mock.Anything, mock.Anything)
	})
}

func TestGetShippingAddresses(t *testing.T) {
	userID := uuid.New()

	t.Run("zero addresses is an empty success", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("FindShippingAddressesByUserId", mock.Anything, userID).Return([]repository.ShippingAddress{}, nil)

		result := NewAddressService(store, cachetest.NewMemory(), validate.New()).
			GetShippingAddresses(authenticated(userID))

		assert.True(t, result.Success)
		assert.NotNil(t, result.Data)
		assert.Empty(t, result.Data)
	})

	t.Run("no session is a failed result", func(t *testing.T) {
		store := &mocks.MockStore{}

		result := NewAddressService(store, cachetest.NewMemory(), validate.New()).
			GetShippingAddresses(context.Background())

		assert.False(t, result.Success)
		assert.Equal(t, MessageListFailed, result.Error)
		store.AssertNotCalled(t, "FindShippingAddressesByUserId", mock.Anything, mock.Anything)
	})

	t.Run("store failure is a failed result", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("FindShippingAddressesByUserId", mock.Anything, userID).
			Return([]repository.ShippingAddress(nil), fmt.Errorf("timeout"))

		result := NewAddressService(store, cachetest.NewMemory(), validate.New()).
			GetShippingAddresses(authenticated(userID))

		assert.False(t, result.Success)
		assert.Equal(t, MessageListFailed, result.Error)
	})

	t.Run("created address is listed back with the name split", func(t *testing.T) {
		store := &mocks.MockStore{}
		memory := cachetest.NewMemory()
		created := rowFrom(validRequest().Normalize().InsertParams(userID))
		store.On("InsertShippingAddress", mock.Anything, validRequest().Normalize().InsertParams(userID)).
			Return(created, nil)
		svc := NewAddressService(store, memory, validate.New())

		_, err := svc.CreateShippingAddress(authenticated(userID), validRequest())
		require.NoError(t, err)
		store.On("FindShippingAddressesByUserId", mock.Anything, userID).
			Return([]repository.ShippingAddress{created}, nil).Once()

		result := svc.GetShippingAddresses(authenticated(userID))

		require.True(t, result.Success)
		require.Len(t, result.Data, 1)
		assert.Equal(t, "Ana", result.Data[0].FirstName)
		assert.Equal(t, "Silva", result.Data[0].LastName)
		assert.Equal(t, "01001000", result.Data[0].Cep)
		assert.Equal(t, "Praça da Sé", result.Data[0].Address)
		assert.Equal(t, "", result.Data[0].Complement)

		cached := svc.GetShippingAddresses(authenticated(userID))
		assert.Equal(t, result, cached)
		store.AssertNumberOfCalls(t, "FindShippingAddressesByUserId", 1)
	})

	t.Run("list invalidated while loading is not cached", func(t *testing.T) {
		store := &mocks.MockStore{}
		memory := cachetest.NewMemory()
		key := cache.ShippingAddressesKey(userID)
		store.On("FindShippingAddressesByUserId", mock.Anything, userID).
			Run(func(mock.Arguments) {
				require.NoError(t, memory.Delete(context.Background(), key))
			}).
			Return([]repository.ShippingAddress{}, nil)

		result := NewAddressService(store, memory, validate.New()).GetShippingAddresses(authenticated(userID))

		assert.True(t, result.Success)
		assert.False(t, memory.Has(key))
	})

	t.Run("cache failure falls back to the store", func(t *testing.T) {
		store := &mocks.MockStore{}
		memory := cachetest.NewMemory()
		memory.Err = fmt.Errorf("redis down")
		store.On("FindShippingAddressesByUserId", mock.Anything, userID).
			Return([]repository.ShippingAddress{{ID: uuid.New(), RecipientName: "Ana Maria Souza"}}, nil)

		result := NewAddressService(store, memory, validate.New()).
			GetShippingAddresses(authenticated(userID))

		require.True(t, result.Success)
		assert.Equal(t, []response.ShippingAddress{{
			ID:        result.Data[0].ID,
			FirstName: "Ana",
			LastName:  "Maria Souza",
		}}, result.Data)
	})
}
