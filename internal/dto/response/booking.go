package response

import (
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
)

type AdminResponseView struct {
	Message     string    `json:"message"`
	RespondedBy string    `json:"responded_by"`
	RespondedAt time.Time `json:"responded_at"`
}

type PaymentView struct {
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentID     string    `json:"payment_id"`
	PaymentMethod string    `json:"payment_method"`
	PaidAt        time.Time `json:"paid_at"`
}

type NotificationResponse struct {
	Seq       int       `json:"seq"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type BookingRequestResponse struct {
	ID            string                 `json:"id"`
	UserID        string                 `json:"user_id"`
	PackageID     *string                `json:"package_id,omitempty"`
	PackageTitle  string                 `json:"package_title"`
	PackagePrice  float64                `json:"package_price"`
	Guests        int                    `json:"guests"`
	CheckInDate   string                 `json:"check_in_date"`
	CheckOutDate  string                 `json:"check_out_date"`
	Note          *string                `json:"note,omitempty"`
	TotalAmount   float64                `json:"total_amount"`
	Status        entity.RequestStatus   `json:"status"`
	AdminResponse *AdminResponseView     `json:"admin_response,omitempty"`
	Payment       *PaymentView           `json:"payment,omitempty"`
	Notifications []NotificationResponse `json:"notifications,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

type UnreadNotificationResponse struct {
	RequestID    string               `json:"request_id"`
	PackageTitle string               `json:"package_title"`
	Status       entity.RequestStatus `json:"status"`
	Message      string               `json:"message"`
	CreatedAt    time.Time            `json:"created_at"`
}

// Helper converters

func BookingRequestToResponse(request *entity.BookingRequest) BookingRequestResponse {
	resp := BookingRequestResponse{
		ID:           request.ID.String(),
		UserID:       request.UserID.String(),
		PackageID:    request.PackageID,
		PackageTitle: request.PackageTitle,
		PackagePrice: request.PackagePrice,
		Guests:       request.Guests,
		CheckInDate:  request.CheckInDate.Format("2006-01-02"),
		CheckOutDate: request.CheckOutDate.Format("2006-01-02"),
		Note:         request.Note,
		TotalAmount:  request.TotalAmount,
		Status:       request.Status,
		CreatedAt:    request.CreatedAt,
		UpdatedAt:    request.UpdatedAt,
	}

	if request.AdminResponse != nil {
		resp.AdminResponse = &AdminResponseView{
			Message:     request.AdminResponse.Message,
			RespondedBy: request.AdminResponse.RespondedBy.String(),
			RespondedAt: request.AdminResponse.RespondedAt,
		}
	}

	if request.Payment != nil {
		resp.Payment = &PaymentView{
			Amount:        request.Payment.Amount,
			Currency:      request.Payment.Currency,
			PaymentID:     request.Payment.PaymentID,
			PaymentMethod: request.Payment.PaymentMethod,
			PaidAt:        request.Payment.PaidAt,
		}
	}

	return resp
}

func BookingRequestWithNotifications(request *entity.BookingRequest, notifications []*entity.Notification) BookingRequestResponse {
	resp := BookingRequestToResponse(request)
	resp.Notifications = make([]NotificationResponse, len(notifications))
	for i, notification := range notifications {
		resp.Notifications[i] = NotificationResponse{
			Seq:       notification.Seq,
			Message:   notification.Message,
			Read:      notification.Read,
			CreatedAt: notification.CreatedAt,
		}
	}
	return resp
}

func UnreadToResponse(notification *repository.UnreadNotification) UnreadNotificationResponse {
	return UnreadNotificationResponse{
		RequestID:    notification.RequestID.String(),
		PackageTitle: notification.PackageTitle,
		Status:       notification.Status,
		Message:      notification.Message,
		CreatedAt:    notification.CreatedAt,
	}
}
