package model

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/synacor/argon2id"

	"qrng-server/pkg/db"
)

const operatorColumns = `
operators.id,
operators.username,
operators.password_hash,
operators.created,
operators.updated`

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrInvalidUsernameOrPassword is an error for an invalid username or password
var ErrInvalidUsernameOrPassword = UserError("invalid username and/or password")

// ErrDuplicateKey happens if an operator is created with a taken username
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// minPasswordLength is the minimum operator password length
const minPasswordLength = 6

// ErrPasswordTooShort is an error if the supplied password is too short
var ErrPasswordTooShort = UserError("password must be at least 6 characters")

// Operator is a record in the `operators` table. Operators manage the
// sample archive through the admin endpoints.
type Operator struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	passwordHash string
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

func getOperatorByRow(row db.Scanner) (*Operator, error) {
	var op Operator
	if err := row.Scan(&op.ID, &op.Username, &op.passwordHash, &op.Created, &op.Updated); err != nil {
		return nil, err
	}

	return &op, nil
}

// CreateOperator creates an operator account
func CreateOperator(ctx context.Context, username, password string) (*Operator, error) {
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := argon2id.DefaultHashPassword(password)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO operators (username, password_hash)
VALUES ($1, $2)
RETURNING ` + operatorColumns

	row := db.Instance().QueryRowContext(ctx, query, username, hash)
	op, err := getOperatorByRow(row)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqDuplicateKeyErrorCode {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	return op, nil
}

// GetOperatorByID returns an operator based on the ID
func GetOperatorByID(ctx context.Context, id int64) (*Operator, error) {
	const query = `
SELECT ` + operatorColumns + `
FROM operators
WHERE id = $1`

	row := db.Instance().QueryRowContext(ctx, query, id)
	return getOperatorByRow(row)
}

// GetOperatorByUsername will return an operator by username
func GetOperatorByUsername(ctx context.Context, username string) (*Operator, error) {
	const query = `
SELECT ` + operatorColumns + `
FROM operators
WHERE lower(username) = lower($1)`

	row := db.Instance().QueryRowContext(ctx, query, username)
	return getOperatorByRow(row)
}

// GetOperatorByUsernameAndPassword will return an operator if the credentials are valid
func GetOperatorByUsernameAndPassword(ctx context.Context, username, password string) (*Operator, error) {
	op, err := GetOperatorByUsername(ctx, username)
	if err != nil {
		if err == sql.ErrNoRows {
			// prevent timing attacks
			_ = argon2id.Compare("", "")
			return nil, ErrInvalidUsernameOrPassword
		}

		return nil, err
	}

	if err := argon2id.Compare(op.passwordHash, password); err != nil {
		return nil, ErrInvalidUsernameOrPassword
	}

	return op, nil
}

// GetOperators returns a page of operators
func GetOperators(ctx context.Context, start int64, rows int) ([]*Operator, error) {
	const query = `
SELECT ` + operatorColumns + `
FROM operators
ORDER BY id
OFFSET $1 LIMIT $2`

	result, err := db.Instance().QueryContext(ctx, query, start, rows)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	operators := make([]*Operator, 0)
	for result.Next() {
		op, err := getOperatorByRow(result)
		if err != nil {
			return nil, err
		}

		operators = append(operators, op)
	}

	return operators, result.Err()
}
