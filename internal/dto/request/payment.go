package request

type InitiatePaymentRequest struct {
	RequestID     string `json:"request_id" validate:"required,uuid4"`
	PaymentMethod string `json:"payment_method,omitempty" validate:"omitempty,oneof=card paypal bank_transfer"`
}

type ConfirmPaymentRequest struct {
	RequestID     string  `json:"request_id" validate:"required,uuid4"`
	PaymentID     string  `json:"payment_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method,omitempty" validate:"omitempty,oneof=card paypal bank_transfer"`
	SessionID     string  `json:"session_id,omitempty"`
}

type CancelPaymentRequest struct {
	RequestID string `json:"request_id" validate:"required,uuid4"`
	Reason    string `json:"reason,omitempty"`
}
