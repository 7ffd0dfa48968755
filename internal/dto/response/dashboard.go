package response

type RequestSummary struct {
	ID           string    `json:"id"`
	PackageTitle string    `json:"package_title"`
	Status       string    `json:"status"`
	TotalAmount  float64   `json:"total_amount"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
}

type DashboardOverviewResponse struct {
	Stats               map[string]int64         `json:"stats"`
	RecentRequests      []RequestSummary         `json:"recent_requests"`
	UpcomingBookings    []BookingRequestResponse `json:"upcoming_bookings"`
	UnreadNotifications int64                    `json:"unread_notifications"`
}

type BookingStats struct {
	Total      int64   `json:"total"`
	Completed  int64   `json:"completed"`
	TotalSpent float64 `json:"total_spent"`
}

type ProfileResponse struct {
	User         UserResponse `json:"user"`
	BookingStats BookingStats `json:"booking_stats"`
}
