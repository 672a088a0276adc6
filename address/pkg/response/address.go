package response

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/Alturino/storefront/internal/repository"
)

// ShippingAddress is the shape the address form is filled with.
type ShippingAddress struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	CpfCnpj      string    `json:"cpfCnpj"`
	Phone        string    `json:"phone"`
	Cep          string    `json:"cep"`
	Address      string    `json:"address"`
	Number       string    `json:"number"`
	Complement   string    `json:"complement"`
	Neighborhood string    `json:"neighborhood"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Email        string    `json:"email"`
}

// SplitRecipientName returns the first whitespace separated token and the remainder.
func SplitRecipientName(name string) (string, string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

func FromRepository(a repository.ShippingAddress) ShippingAddress {
	firstName, lastName := SplitRecipientName(a.RecipientName)
	return ShippingAddress{
		ID:           a.ID,
		FirstName:    firstName,
		LastName:     lastName,
		CpfCnpj:      a.CpfOrCnpj,
		Phone:        a.Phone,
		Cep:          a.ZipCode,
		Address:      a.Street,
		Number:       a.Number,
		Complement:   a.Complement.String,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		Email:        a.Email,
	}
}

func FromRepositories(addresses []repository.ShippingAddress) []ShippingAddress {
	result := make([]ShippingAddress, 0, len(addresses))
	for _, a := range addresses {
		result = append(result, FromRepository(a))
	}
	return result
}

// ListResult is either {"success":true,"data":[...]} or {"success":false,"error":"..."}.
type ListResult struct {
	Success bool
	Data    []ShippingAddress
	Error   string
}

func ListSuccess(data []ShippingAddress) ListResult {
	if data == nil {
		data = []ShippingAddress{}
	}
	return ListResult{Success: true, Data: data}
}

func ListFailure(message string) ListResult {
	return ListResult{Success: false, Error: message}
}

func (l ListResult) MarshalJSON() ([]byte, error) {
	if l.Success {
		return json.Marshal(struct {
			Success bool              `json:"success"`
			Data    []ShippingAddress `json:"data"`
		}{Success: true, Data: l.Data})
	}
	return json.Marshal(struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{Success: false, Error: l.Error})
}
