package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/repository/mocks"
	"github.com/Alturino/storefront/internal/session"
	"github.com/Alturino/storefront/internal/validate"
	"github.com/Alturino/storefront/user/pkg/request"
)

const secret = "test-secret"

func newService(store *mocks.MockStore) *UserService {
	return NewUserService(store, session.NewJwtProvider(secret), validate.New())
}

func TestRegister(t *testing.T) {
	c := context.Background()

	t.Run("hashes password and lowercases email", func(t *testing.T) {
		store := &mocks.MockStore{}
		userID := uuid.New()
		store.On("InsertUser", mock.Anything, mock.MatchedBy(func(arg repository.InsertUserParams) bool {
			return arg.Email == "ana@example.com" &&
				arg.Name == "Ana Silva" &&
				bcrypt.CompareHashAndPassword([]byte(arg.Password), []byte("password123")) == nil
		})).Return(repository.User{ID: userID, Name: "Ana Silva", Email: "ana@example.com"}, nil)

		user, err := newService(store).Register(c, request.RegisterRequest{
			Name:     " Ana Silva ",
			Email:    "Ana@Example.com",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		store.AssertExpectations(t)
	})

	t.Run("short password is rejected before the store", func(t *testing.T) {
		store := &mocks.MockStore{}

		_, err := newService(store).Register(c, request.RegisterRequest{
			Name:     "Ana",
			Email:    "ana@example.com",
			Password: "short",
		})

		validationErr := &inErrors.ValidationError{}
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "password")
		store.AssertNotCalled(t, "InsertUser", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("InsertUser", mock.Anything, mock.Anything).
			Return(repository.User{}, fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}))

		_, err := newService(store).Register(c, request.RegisterRequest{
			Name:     "Ana",
			Email:    "ana@example.com",
			Password: "password123",
		})

		assert.ErrorIs(t, err, inErrors.ErrConflict)
	})
}

func TestLogin(t *testing.T) {
	c := context.Background()
	userID := uuid.New()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := repository.User{ID: userID, Email: "ana@example.com", Password: string(hashed)}

	t.Run("valid credentials issue a token for the user", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("FindUserByEmail", mock.Anything, "ana@example.com").Return(user, nil)

		token, err := newService(store).Login(c, request.LoginRequest{Email: " ANA@example.com", Password: "password123"})
		require.NoError(t, err)

		header := map[string][]string{"Authorization": {"Bearer " + token}}
		s, err := session.NewJwtProvider(secret).Session(c, header)
		require.NoError(t, err)
		assert.Equal(t, userID, s.UserID)
	})

	tests := []struct {
		name     string
		email    string
		password string
		found    repository.User
		findErr  error
		expected error
	}{
		{
			name:     "wrong password",
			email:    "ana@example.com",
			password: "wrong-password",
			found:    user,
			expected: inErrors.ErrUnauthenticated,
		},
		{
			name:     "unknown email",
			email:    "ana@example.com",
			password: "password123",
			findErr:  pgx.ErrNoRows,
			expected: inErrors.ErrUnauthenticated,
		},
		{
			name:     "store failure",
			email:    "ana@example.com",
			password: "password123",
			findErr:  fmt.Errorf("connection reset"),
			expected: inErrors.ErrStore,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mocks.MockStore{}
			store.On("FindUserByEmail", mock.Anything, tt.email).Return(tt.found, tt.findErr)

			token, err := newService(store).Login(c, request.LoginRequest{Email: tt.email, Password: tt.password})

			assert.ErrorIs(t, err, tt.expected)
			assert.Empty(t, token)
		})
	}

	t.Run("invalid email never reaches the store", func(t *testing.T) {
		store := &mocks.MockStore{}
		_, err := newService(store).Login(c, request.LoginRequest{Email: "not-an-email", Password: "x"})
		assert.ErrorIs(t, err, inErrors.ErrValidationFailed)
		store.AssertNotCalled(t, "FindUserByEmail", mock.Anything, mock.Anything)
	})
}
