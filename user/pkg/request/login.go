package request

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
)

type LoginRequest struct {
	Email    string `validate:"required,email" json:"email"    message:"Email inválido"`
	Password string `validate:"required"       json:"password" message:"Senha é obrigatória"`
}

func (l LoginRequest) Normalize() LoginRequest {
	l.Email = strings.ToLower(strings.TrimSpace(l.Email))
	return l
}

func (l LoginRequest) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", l.Email).Str("password", "***")
}

func (l LoginRequest) MarshalJSON() ([]byte, error) {
	l.Password = "***"
	type L LoginRequest
	return json.Marshal(L(l))
}
