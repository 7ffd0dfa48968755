package request

type CreateBookingRequest struct {
	PackageID    *string `json:"package_id,omitempty"`
	PackageTitle string  `json:"package_title" validate:"required,min=1,max=200"`
	PackagePrice float64 `json:"package_price" validate:"required,gt=0"`
	Guests       int     `json:"guests" validate:"omitempty,min=1"`
	CheckInDate  string  `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate string  `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	Note         *string `json:"note,omitempty"`
}

type RespondRequest struct {
	Status  string `json:"status" validate:"required,oneof=approved rejected"`
	Message string `json:"message,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note,omitempty"`
}
