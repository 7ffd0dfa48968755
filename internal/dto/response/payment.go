package response

// PaymentSessionResponse is the simulated payment-gateway session handed to
// the client on initiate.
type PaymentSessionResponse struct {
	SessionID string  `json:"session_id"`
	RequestID string  `json:"request_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Status    string  `json:"status"`
}
