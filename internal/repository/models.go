package repository

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Password  string             `json:"-"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type ShippingAddress struct {
	ID            uuid.UUID          `json:"id"`
	UserID        uuid.UUID          `json:"user_id"`
	RecipientName string             `json:"recipient_name"`
	Street        string             `json:"street"`
	Number        string             `json:"number"`
	Complement    pgtype.Text        `json:"complement"`
	Neighborhood  string             `json:"neighborhood"`
	City          string             `json:"city"`
	State         string             `json:"state"`
	ZipCode       string             `json:"zip_code"`
	Country       string             `json:"country"`
	Phone         string             `json:"phone"`
	Email         string             `json:"email"`
	CpfOrCnpj     string             `json:"cpf_or_cnpj"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

type Cart struct {
	ID                uuid.UUID          `json:"id"`
	UserID            uuid.UUID          `json:"user_id"`
	ShippingAddressID pgtype.UUID        `json:"shipping_address_id"`
	CreatedAt         pgtype.Timestamptz `json:"created_at"`
	UpdatedAt         pgtype.Timestamptz `json:"updated_at"`
}

type CartItem struct {
	ID               uuid.UUID          `json:"id"`
	CartID           uuid.UUID          `json:"cart_id"`
	ProductVariantID uuid.UUID          `json:"product_variant_id"`
	Quantity         int32              `json:"quantity"`
	CreatedAt        pgtype.Timestamptz `json:"created_at"`
}

type Product struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

type ProductVariant struct {
	ID           uuid.UUID          `json:"id"`
	ProductID    uuid.UUID          `json:"product_id"`
	Name         string             `json:"name"`
	Slug         string             `json:"slug"`
	Color        string             `json:"color"`
	ImageUrl     string             `json:"image_url"`
	PriceInCents int32              `json:"price_in_cents"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}
