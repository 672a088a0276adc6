package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const shippingAddressColumns = `id, user_id, recipient_name, street, number, complement, neighborhood, city,
    state, zip_code, country, phone, email, cpf_or_cnpj, created_at`

func scanShippingAddress(row interface{ Scan(...interface{}) error }) (ShippingAddress, error) {
	var i ShippingAddress
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.RecipientName,
		&i.Street,
		&i.Number,
		&i.Complement,
		&i.Neighborhood,
		&i.City,
		&i.State,
		&i.ZipCode,
		&i.Country,
		&i.Phone,
		&i.Email,
		&i.CpfOrCnpj,
		&i.CreatedAt,
	)
	return i, err
}

const insertShippingAddress = `INSERT INTO shipping_addresses (
    user_id, recipient_name, street, number, complement, neighborhood, city, state, zip_code,
    country, phone, email, cpf_or_cnpj
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING ` + shippingAddressColumns

type InsertShippingAddressParams struct {
	UserID        uuid.UUID   `json:"user_id"`
	RecipientName string      `json:"recipient_name"`
	Street        string      `json:"street"`
	Number        string      `json:"number"`
	Complement    pgtype.Text `json:"complement"`
	Neighborhood  string      `json:"neighborhood"`
	City          string      `json:"city"`
	State         string      `json:"state"`
	ZipCode       string      `json:"zip_code"`
	Country       string      `json:"country"`
	Phone         string      `json:"phone"`
	Email         string      `json:"email"`
	CpfOrCnpj     string      `json:"cpf_or_cnpj"`
}

func (q *Queries) InsertShippingAddress(
	c context.Context,
	arg InsertShippingAddressParams,
) (ShippingAddress, error) {
	row := q.db.QueryRow(c, insertShippingAddress,
		arg.UserID,
		arg.RecipientName,
		arg.Street,
		arg.Number,
		arg.Complement,
		arg.Neighborhood,
		arg.City,
		arg.State,
		arg.ZipCode,
		arg.Country,
		arg.Phone,
		arg.Email,
		arg.CpfOrCnpj,
	)
	return scanShippingAddress(row)
}

const findShippingAddressById = `SELECT ` + shippingAddressColumns + `
FROM shipping_addresses
WHERE id = $1`

func (q *Queries) FindShippingAddressById(c context.Context, id uuid.UUID) (ShippingAddress, error) {
	row := q.db.QueryRow(c, findShippingAddressById, id)
	return scanShippingAddress(row)
}

const findShippingAddressesByUserId = `SELECT ` + shippingAddressColumns + `
FROM shipping_addresses
WHERE user_id = $1
ORDER BY created_at, id`

func (q *Queries) FindShippingAddressesByUserId(
	c context.Context,
	userID uuid.UUID,
) ([]ShippingAddress, error) {
	rows, err := q.db.Query(c, findShippingAddressesByUserId, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ShippingAddress{}
	for rows.Next() {
		i, err := scanShippingAddress(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
