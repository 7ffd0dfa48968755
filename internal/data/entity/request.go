package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RequestStatus represents the current state of a booking request in its
// approval and payment lifecycle.
type RequestStatus string

const (
	StatusPending        RequestStatus = "pending"
	StatusApproved       RequestStatus = "approved"
	StatusRejected       RequestStatus = "rejected"
	StatusPaymentPending RequestStatus = "payment_pending"
	StatusPaid           RequestStatus = "paid"
	StatusCompleted      RequestStatus = "completed"
	StatusCancelled      RequestStatus = "cancelled"
)

// AllRequestStatuses lists every status in lifecycle order.
var AllRequestStatuses = []RequestStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusPaymentPending,
	StatusPaid,
	StatusCompleted,
	StatusCancelled,
}

var requestStatuses = map[RequestStatus]struct{}{
	StatusPending:        {},
	StatusApproved:       {},
	StatusRejected:       {},
	StatusPaymentPending: {},
	StatusPaid:           {},
	StatusCompleted:      {},
	StatusCancelled:      {},
}

// IsValid returns true if the status is a recognized request status.
func (s RequestStatus) IsValid() bool {
	_, exists := requestStatuses[s]
	return exists
}

// IsTerminal returns true if no further transitions are defined from this
// status.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted || s == StatusCancelled
}

// CanCancel returns true if the owner may cancel the request from this
// status.
func (s RequestStatus) CanCancel() bool {
	return s == StatusPending || s == StatusApproved || s == StatusPaymentPending
}

func (s RequestStatus) String() string {
	return string(s)
}

// ParseRequestStatus converts a string to a RequestStatus, returning an error
// if invalid.
func ParseRequestStatus(s string) (RequestStatus, error) {
	status := RequestStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid request status: %s", s)
	}
	return status, nil
}

// AdminResponse records the one-time approve/reject decision.
type AdminResponse struct {
	Message     string    `db:"admin_message"`
	RespondedBy uuid.UUID `db:"responded_by"`
	RespondedAt time.Time `db:"responded_at"`
}

// PaymentInfo is the confirmation payload recorded when a request is paid.
// The engine does not validate it with any payment processor.
type PaymentInfo struct {
	Amount        float64   `db:"payment_amount"`
	Currency      string    `db:"payment_currency"`
	PaymentID     string    `db:"payment_id"`
	PaymentMethod string    `db:"payment_method"`
	PaidAt        time.Time `db:"paid_at"`
}

type BookingRequest struct {
	Base
	UserID       uuid.UUID     `db:"user_id"`
	PackageID    *string       `db:"package_id"`
	PackageTitle string        `db:"package_title"`
	PackagePrice float64       `db:"package_price"`
	Guests       int           `db:"guests"`
	CheckInDate  time.Time     `db:"check_in_date"`
	CheckOutDate time.Time     `db:"check_out_date"`
	Note         *string       `db:"note"`
	TotalAmount  float64       `db:"total_amount"` // packagePrice * guests
	Status       RequestStatus `db:"status"`
	AdminResponse *AdminResponse
	Payment       *PaymentInfo
	// Version guards saves: a transition only lands if nobody else moved the
	// request since it was read.
	Version int64 `db:"version"`
}
