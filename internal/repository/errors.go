// Package repository defines error values that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as services and handlers to distinguish between failure
// scenarios without inspecting driver-specific errors. Lookups that
// find no row surface the repository's own not-found sentinel rather
// than raw sql.ErrNoRows so callers can map them per resource.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// Not-found sentinels, one per addressable resource.
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrGuestNotFound        = errors.New("guest not found")
	ErrContributionNotFound = errors.New("contribution not found")
	ErrOfferNotFound        = errors.New("ride offer not found")
	ErrRequestNotFound      = errors.New("ride request not found")
	ErrMatchNotFound        = errors.New("ride match not found")
)

// ErrDuplicateMatch is returned when an insert collides with the
// unique (ride_offer_id, ride_request_id) key. The storage-level
// constraint, not a prior existence check, is what closes the race
// between check and insert.
var ErrDuplicateMatch = errors.New("match already exists")

// mysqlDuplicateEntry is the server error number for unique key
// violations (ER_DUP_ENTRY).
const mysqlDuplicateEntry = 1062

// IsDuplicateKey reports whether err is a MySQL unique constraint
// violation. Used for the match pair key and for the regenerate-on-
// collision loops behind event codes and guest tokens.
func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
