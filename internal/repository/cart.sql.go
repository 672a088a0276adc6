package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const cartColumns = `id, user_id, shipping_address_id, created_at, updated_at`

func scanCart(row interface{ Scan(...interface{}) error }) (Cart, error) {
	var i Cart
	err := row.Scan(&i.ID, &i.UserID, &i.ShippingAddressID, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const findCartByUserId = `SELECT ` + cartColumns + `
FROM carts
WHERE user_id = $1`

func (q *Queries) FindCartByUserId(c context.Context, userID uuid.UUID) (Cart, error) {
	row := q.db.QueryRow(c, findCartByUserId, userID)
	return scanCart(row)
}

const upsertCartByUserId = `INSERT INTO carts (user_id)
VALUES ($1)
ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
RETURNING ` + cartColumns

func (q *Queries) UpsertCartByUserId(c context.Context, userID uuid.UUID) (Cart, error) {
	row := q.db.QueryRow(c, upsertCartByUserId, userID)
	return scanCart(row)
}

// The address ownership is checked again inside the statement so a concurrent change of owner
// can not slip in between the service check and the write.
const updateCartShippingAddress = `UPDATE carts
SET shipping_address_id = $2, updated_at = now()
WHERE user_id = $1
  AND EXISTS (
    SELECT 1 FROM shipping_addresses sa WHERE sa.id = $2 AND sa.user_id = $1
  )
RETURNING ` + cartColumns

type UpdateCartShippingAddressParams struct {
	UserID            uuid.UUID `json:"user_id"`
	ShippingAddressID uuid.UUID `json:"shipping_address_id"`
}

func (q *Queries) UpdateCartShippingAddress(
	c context.Context,
	arg UpdateCartShippingAddressParams,
) (Cart, error) {
	row := q.db.QueryRow(c, updateCartShippingAddress, arg.UserID, arg.ShippingAddressID)
	return scanCart(row)
}

const findCartItemWithCartById = `SELECT ci.id, ci.cart_id, ci.product_variant_id, ci.quantity, ci.created_at,
    c.user_id AS cart_user_id
FROM cart_items ci
JOIN carts c ON c.id = ci.cart_id
WHERE ci.id = $1`

type FindCartItemWithCartByIdRow struct {
	ID               uuid.UUID          `json:"id"`
	CartID           uuid.UUID          `json:"cart_id"`
	ProductVariantID uuid.UUID          `json:"product_variant_id"`
	Quantity         int32              `json:"quantity"`
	CreatedAt        pgtype.Timestamptz `json:"created_at"`
	CartUserID       uuid.UUID          `json:"cart_user_id"`
}

func (q *Queries) FindCartItemWithCartById(
	c context.Context,
	id uuid.UUID,
) (FindCartItemWithCartByIdRow, error) {
	row := q.db.QueryRow(c, findCartItemWithCartById, id)
	var i FindCartItemWithCartByIdRow
	err := row.Scan(
		&i.ID,
		&i.CartID,
		&i.ProductVariantID,
		&i.Quantity,
		&i.CreatedAt,
		&i.CartUserID,
	)
	return i, err
}

const deleteCartItemById = `DELETE FROM cart_items ci
USING carts c
WHERE ci.id = $1 AND ci.cart_id = c.id AND c.user_id = $2`

type DeleteCartItemByIdParams struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
}

func (q *Queries) DeleteCartItemById(c context.Context, arg DeleteCartItemByIdParams) (int64, error) {
	result, err := q.db.Exec(c, deleteCartItemById, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const decrementCartItemQuantity = `UPDATE cart_items ci
SET quantity = ci.quantity - 1
FROM carts c
WHERE ci.id = $1 AND ci.cart_id = c.id AND c.user_id = $2 AND ci.quantity > 1`

type DecrementCartItemQuantityParams struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
}

func (q *Queries) DecrementCartItemQuantity(
	c context.Context,
	arg DecrementCartItemQuantityParams,
) (int64, error) {
	result, err := q.db.Exec(c, decrementCartItemQuantity, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteCartItemWithQuantityOne = `DELETE FROM cart_items ci
USING carts c
WHERE ci.id = $1 AND ci.cart_id = c.id AND c.user_id = $2 AND ci.quantity = 1`

type DeleteCartItemWithQuantityOneParams struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
}

func (q *Queries) DeleteCartItemWithQuantityOne(
	c context.Context,
	arg DeleteCartItemWithQuantityOneParams,
) (int64, error) {
	result, err := q.db.Exec(c, deleteCartItemWithQuantityOne, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const upsertCartItem = `INSERT INTO cart_items (cart_id, product_variant_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_variant_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
RETURNING id, cart_id, product_variant_id, quantity, created_at`

type UpsertCartItemParams struct {
	CartID           uuid.UUID `json:"cart_id"`
	ProductVariantID uuid.UUID `json:"product_variant_id"`
	Quantity         int32     `json:"quantity"`
}

func (q *Queries) UpsertCartItem(c context.Context, arg UpsertCartItemParams) (CartItem, error) {
	row := q.db.QueryRow(c, upsertCartItem, arg.CartID, arg.ProductVariantID, arg.Quantity)
	var i CartItem
	err := row.Scan(&i.ID, &i.CartID, &i.ProductVariantID, &i.Quantity, &i.CreatedAt)
	return i, err
}

const findCartItemsByCartId = `SELECT ci.id, ci.cart_id, ci.product_variant_id, ci.quantity, ci.created_at,
    pv.name AS product_variant_name, pv.slug AS product_variant_slug,
    pv.image_url AS product_variant_image_url, pv.price_in_cents AS product_variant_price_in_cents,
    p.name AS product_name
FROM cart_items ci
JOIN product_variants pv ON pv.id = ci.product_variant_id
JOIN products p ON p.id = pv.product_id
WHERE ci.cart_id = $1
ORDER BY ci.created_at, ci.id`

type FindCartItemsByCartIdRow struct {
	ID                         uuid.UUID          `json:"id"`
	CartID                     uuid.UUID          `json:"cart_id"`
	ProductVariantID           uuid.UUID          `json:"product_variant_id"`
	Quantity                   int32              `json:"quantity"`
	CreatedAt                  pgtype.Timestamptz `json:"created_at"`
	ProductVariantName         string             `json:"product_variant_name"`
	ProductVariantSlug         string             `json:"product_variant_slug"`
	ProductVariantImageUrl     string             `json:"product_variant_image_url"`
	ProductVariantPriceInCents int32              `json:"product_variant_price_in_cents"`
	ProductName                string             `json:"product_name"`
}

func (q *Queries) FindCartItemsByCartId(
	c context.Context,
	cartID uuid.UUID,
) ([]FindCartItemsByCartIdRow, error) {
	rows, err := q.db.Query(c, findCartItemsByCartId, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []FindCartItemsByCartIdRow{}
	for rows.Next() {
		var i FindCartItemsByCartIdRow
		if err := rows.Scan(
			&i.ID,
			&i.CartID,
			&i.ProductVariantID,
			&i.Quantity,
			&i.CreatedAt,
			&i.ProductVariantName,
			&i.ProductVariantSlug,
			&i.ProductVariantImageUrl,
			&i.ProductVariantPriceInCents,
			&i.ProductName,
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
