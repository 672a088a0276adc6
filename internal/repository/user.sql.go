package repository

import (
	"context"

	"github.com/google/uuid"
)

const userColumns = `id, name, email, password, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (User, error) {
	var i User
	err := row.Scan(&i.ID, &i.Name, &i.Email, &i.Password, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const insertUser = `INSERT INTO users (name, email, password)
VALUES ($1, $2, $3)
RETURNING ` + userColumns

type InsertUserParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

func (q *Queries) InsertUser(c context.Context, arg InsertUserParams) (User, error) {
	row := q.db.QueryRow(c, insertUser, arg.Name, arg.Email, arg.Password)
	return scanUser(row)
}

const findUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

func (q *Queries) FindUserByEmail(c context.Context, email string) (User, error) {
	row := q.db.QueryRow(c, findUserByEmail, email)
	return scanUser(row)
}

const findUserById = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

func (q *Queries) FindUserById(c context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRow(c, findUserById, id)
	return scanUser(row)
}
