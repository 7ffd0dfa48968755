package response

import (
	"time"

	"travel-booking/internal/data/repository"
)

type LoginLogResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminRequestListResponse pairs the request page with per-status counts for
// the dashboard.
type AdminRequestListResponse struct {
	Requests   []BookingRequestResponse `json:"requests"`
	Stats      map[string]int64         `json:"stats"`
	Pagination PaginationMeta           `json:"pagination"`
}

func LoginLogToResponse(log *repository.LoginLogWithUser) LoginLogResponse {
	return LoginLogResponse{
		ID:        log.ID.String(),
		UserID:    log.UserID.String(),
		UserName:  log.UserName,
		UserEmail: log.UserEmail,
		IPAddress: log.IPAddress,
		UserAgent: log.UserAgent,
		CreatedAt: log.CreatedAt,
	}
}
