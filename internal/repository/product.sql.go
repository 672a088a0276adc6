package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findProducts = `SELECT id, name, slug, description, category, created_at
FROM products
ORDER BY created_at, name`

func (q *Queries) FindProducts(c context.Context) ([]Product, error) {
	rows, err := q.db.Query(c, findProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		var i Product
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Slug,
			&i.Description,
			&i.Category,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const productVariantColumns = `id, product_id, name, slug, color, image_url, price_in_cents, created_at`

func scanProductVariant(row interface{ Scan(...interface{}) error }) (ProductVariant, error) {
	var i ProductVariant
	err := row.Scan(
		&i.ID,
		&i.ProductID,
		&i.Name,
		&i.Slug,
		&i.Color,
		&i.ImageUrl,
		&i.PriceInCents,
		&i.CreatedAt,
	)
	return i, err
}

const findProductVariants = `SELECT ` + productVariantColumns + `
FROM product_variants
ORDER BY created_at, name`

func (q *Queries) FindProductVariants(c context.Context) ([]ProductVariant, error) {
	rows, err := q.db.Query(c, findProductVariants)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ProductVariant{}
	for rows.Next() {
		i, err := scanProductVariant(rows)
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

const findProductVariantById = `SELECT ` + productVariantColumns + `
FROM product_variants
WHERE id = $1`

func (q *Queries) FindProductVariantById(c context.Context, id uuid.UUID) (ProductVariant, error) {
	row := q.db.QueryRow(c, findProductVariantById, id)
	return scanProductVariant(row)
}

const findProductVariantBySlug = `SELECT pv.id, pv.product_id, pv.name, pv.slug, pv.color, pv.image_url,
    pv.price_in_cents, pv.created_at, p.name AS product_name, p.description AS product_description
FROM product_variants pv
JOIN products p ON p.id = pv.product_id
WHERE pv.slug = $1`

type FindProductVariantBySlugRow struct {
	ID                 uuid.UUID          `json:"id"`
	ProductID          uuid.UUID          `json:"product_id"`
	Name               string             `json:"name"`
	Slug               string             `json:"slug"`
	Color              string             `json:"color"`
	ImageUrl           string             `json:"image_url"`
	PriceInCents       int32              `json:"price_in_cents"`
	CreatedAt          pgtype.Timestamptz `json:"created_at"`
	ProductName        string             `json:"product_name"`
	ProductDescription string             `json:"product_description"`
}

func (q *Queries) FindProductVariantBySlug(
	c context.Context,
	slug string,
) (FindProductVariantBySlugRow, error) {
	row := q.db.QueryRow(c, findProductVariantBySlug, slug)
	var i FindProductVariantBySlugRow
	err := row.Scan(
		&i.ID,
		&i.ProductID,
		&i.Name,
		&i.Slug,
		&i.Color,
		&i.ImageUrl,
		&i.PriceInCents,
		&i.CreatedAt,
		&i.ProductName,
		&i.ProductDescription,
	)
	return i, err
}
