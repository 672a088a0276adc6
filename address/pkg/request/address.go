package request

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/validate"
)

const Country = "Brasil"

type CreateShippingAddress struct {
	Email        string `validate:"required,email" json:"email"        message:"Email inválido"`
	FirstName    string `validate:"required"       json:"firstName"    message:"Nome é obrigatório"`
	LastName     string `validate:"required"       json:"lastName"     message:"Sobrenome é obrigatório"`
	CpfCnpj      string `validate:"cpfcnpj"        json:"cpfCnpj"      message:"CPF deve ter 11 dígitos ou CNPJ deve ter 14 dígitos"`
	Phone        string `validate:"phone"          json:"phone"        message:"Celular deve ter 10 ou 11 dígitos"`
	Cep          string `validate:"cep"            json:"cep"          message:"CEP deve ter 8 dígitos"`
	Address      string `validate:"required"       json:"address"      message:"Endereço é obrigatório"`
	Number       string `validate:"required"       json:"number"       message:"Número é obrigatório"`
	Complement   string `json:"complement"`
	Neighborhood string `validate:"required"       json:"neighborhood" message:"Bairro é obrigatório"`
	City         string `validate:"required"       json:"city"         message:"Cidade é obrigatória"`
	State        string `validate:"min=2"          json:"state"        message:"Estado é obrigatório"`
	// LinkToCart also selects the new address as the caller's cart shipping address.
	LinkToCart bool `json:"linkToCart"`
}

// Normalize trims surrounding whitespace from every field. Document, phone and cep punctuation is
// dropped later by InsertParams.
func (r CreateShippingAddress) Normalize() CreateShippingAddress {
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.CpfCnpj = strings.TrimSpace(r.CpfCnpj)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Cep = strings.TrimSpace(r.Cep)
	r.Address = strings.TrimSpace(r.Address)
	r.Number = strings.TrimSpace(r.Number)
	r.Complement = strings.TrimSpace(r.Complement)
	r.Neighborhood = strings.TrimSpace(r.Neighborhood)
	r.City = strings.TrimSpace(r.City)
	r.State = strings.TrimSpace(r.State)
	return r
}

func (r CreateShippingAddress) RecipientName() string {
	return r.FirstName + " " + r.LastName
}

func (r CreateShippingAddress) InsertParams(userID uuid.UUID) repository.InsertShippingAddressParams {
	return repository.InsertShippingAddressParams{
		UserID:        userID,
		RecipientName: r.RecipientName(),
		Street:        r.Address,
		Number:        r.Number,
		Complement:    pgtype.Text{String: r.Complement, Valid: r.Complement != ""},
		Neighborhood:  r.Neighborhood,
		City:          r.City,
		State:         r.State,
		ZipCode:       validate.Digits(r.Cep),
		Country:       Country,
		Phone:         validate.Digits(r.Phone),
		Email:         r.Email,
		CpfOrCnpj:     validate.Digits(r.CpfCnpj),
	}
}

func (r CreateShippingAddress) MarshalZerologObject(e *zerolog.Event) {
	e.Str("recipientName", r.RecipientName()).
		Str("city", r.City).
		Str("state", r.State).
		Bool("linkToCart", r.LinkToCart)
}
