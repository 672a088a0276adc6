package response

import (
	"github.com/google/uuid"

	"github.com/Alturino/storefront/internal/repository"
)

type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func UserFromRepository(u repository.User) User {
	return User{ID: u.ID, Name: u.Name, Email: u.Email}
}
