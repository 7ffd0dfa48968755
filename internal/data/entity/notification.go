package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an append-only message attached to a booking request.
// Rows live in their own table keyed by (request_id, seq) so concurrent
// appends on the same request never overwrite each other.
type Notification struct {
	ID        uuid.UUID `db:"id"`
	RequestID uuid.UUID `db:"request_id"`
	Seq       int       `db:"seq"`
	Message   string    `db:"message"`
	Read      bool      `db:"read"`
	CreatedAt time.Time `db:"created_at"`
}
