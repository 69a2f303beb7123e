package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrRecordNotFound is returned by single-row lookups that match nothing.
var ErrRecordNotFound = gorm.ErrRecordNotFound

// isDuplicateKeyError reports a Postgres unique violation. An empty
// constraintName matches any constraint.
func isDuplicateKeyError(err error, constraintName string) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && (constraintName == "" || pgErr.ConstraintName == constraintName)
	}
	return false
}
