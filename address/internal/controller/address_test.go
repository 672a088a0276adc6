package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/address/internal/service"
	"github.com/Alturino/storefront/internal/cache/cachetest"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/repository/mocks"
	"github.com/Alturino/storefront/internal/session"
	"github.com/Alturino/storefront/internal/validate"
)

func newRouter(store *mocks.MockStore) *mux.Router {
	router := mux.NewRouter()
	svc := service.NewAddressService(store, cachetest.NewMemory(), validate.New())
	AttachAddressController(router, svc)
	return router
}

func withSession(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(session.AttachToContext(r.Context(), &session.Session{UserID: userID}))
}

func TestCreateShippingAddress(t *testing.T) {
	body := `{"email":"ana@example.com","firstName":"Ana","lastName":"Silva","cpfCnpj":"12345678901",
		"phone":"11999999999","cep":"01001000","address":"Praça da Sé","number":"1",
		"neighborhood":"Sé","city":"São Paulo","state":"SP"}`

	t.Run("created", func(t *testing.T) {
		store := &mocks.MockStore{}
		userID := uuid.New()
		store.On("InsertShippingAddress", mock.Anything, mock.Anything).
			Return(repository.ShippingAddress{ID: uuid.New(), RecipientName: "Ana Silva"}, nil)

		rec := httptest.NewRecorder()
		req := withSession(httptest.NewRequest(http.MethodPost, "/addresses", strings.NewReader(body)), userID)
		newRouter(store).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "Ana Silva")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		store := &mocks.MockStore{}

		rec := httptest.NewRecorder()
		newRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/addresses", strings.NewReader(body)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		store.AssertNotCalled(t, "InsertShippingAddress", mock.Anything, mock.Anything)
	})

	t.Run("unauthenticated with malformed body", func(t *testing.T) {
		store := &mocks.MockStore{}

		rec := httptest.NewRecorder()
		newRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/addresses", strings.NewReader(`{"x":`)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		store.AssertNotCalled(t, "InsertShippingAddress", mock.Anything, mock.Anything)
	})

	t.Run("invalid cep", func(t *testing.T) {
		store := &mocks.MockStore{}
		invalid := strings.Replace(body, "01001000", "123", 1)

		rec := httptest.NewRecorder()
		req := withSession(httptest.NewRequest(http.MethodPost, "/addresses", strings.NewReader(invalid)), uuid.New())
		newRouter(store).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := map[string]interface{}{}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, map[string]interface{}{"cep": "CEP deve ter 8 dígitos"}, resp["errors"])
	})
}

func TestGetShippingAddresses(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		store := &mocks.MockStore{}
		userID := uuid.New()
		store.On("FindShippingAddressesByUserId", mock.Anything, userID).Return([]repository.ShippingAddress{}, nil)

		rec := httptest.NewRecorder()
		newRouter(store).ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet, "/addresses", nil), userID))

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := map[string]interface{}{}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, []interface{}{}, resp["data"])
	})

	t.Run("unauthenticated is a failed result", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newRouter(&mocks.MockStore{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/addresses", nil))

		resp := map[string]interface{}{}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, service.MessageListFailed, resp["error"])
	})
}
