package request

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
)

type RegisterRequest struct {
	Name     string `validate:"required"       json:"name"     message:"Nome é obrigatório"`
	Email    string `validate:"required,email" json:"email"    message:"Email inválido"`
	Password string `validate:"required,min=8" json:"password" message:"Senha deve ter ao menos 8 caracteres"`
}

func (r RegisterRequest) Normalize() RegisterRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return r
}

func (r RegisterRequest) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", r.Email).Str("name", r.Name)
}

func (r RegisterRequest) MarshalJSON() ([]byte, error) {
	r.Password = "***"
	type R RegisterRequest
	return json.Marshal(R(r))
}
