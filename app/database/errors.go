package database

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a row lookup or a guarded update matches
// nothing.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyApproved is returned when the approve compare-and-set finds the
// payout already approved.
var ErrAlreadyApproved = errors.New("commission payment already approved")

// IsForeignKeyViolation reports whether err is a Postgres foreign key
// violation, which is how protect-on-delete surfaces.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	return false
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
