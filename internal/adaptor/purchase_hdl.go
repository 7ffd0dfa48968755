package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PurchaseHandler struct {
	service usecase.PurchaseService
	log     *zap.Logger
}

func NewPurchaseHandler(service usecase.PurchaseService, log *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		service: service,
		log:     log.With(zap.String("handler", "purchase")),
	}
}

// PendingPayments handles GET /api/purchases/pending (protected)
func (h *PurchaseHandler) PendingPayments(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	pending, err := h.service.PendingPayments(r.Context(), identity)
	if err != nil {
		respondError(w, h.log, err, "list pending payments")
		return
	}

	utils.ResponseSuccess(w, "success", pending)
}

// Initiate handles POST /api/purchases/initiate (protected)
func (h *PurchaseHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req request.InitiatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	session, err := h.service.Initiate(r.Context(), identity, &req)
	if err != nil {
		respondError(w, h.log, err, "initiate payment")
		return
	}

	utils.ResponseCreated(w, "success", session)
}

// Confirm handles POST /api/purchases/confirm (protected)
func (h *PurchaseHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req request.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.Confirm(r.Context(), identity, &req)
	if err != nil {
		respondError(w, h.log, err, "confirm payment")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CancelPayment handles POST /api/purchases/cancel (protected)
func (h *PurchaseHandler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req request.CancelPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.CancelPayment(r.Context(), identity, &req)
	if err != nil {
		respondError(w, h.log, err, "cancel payment")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// History handles GET /api/purchases/history (protected)
func (h *PurchaseHandler) History(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	history, err := h.service.History(r.Context(), identity, query.Get("status"), page)
	if err != nil {
		respondError(w, h.log, err, "list purchase history")
		return
	}

	utils.ResponseSuccess(w, "success", history)
}

// GetPurchase handles GET /api/purchases/{id} (protected)
func (h *PurchaseHandler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		utils.ResponseBadRequest(w, "Purchase ID is required", nil)
		return
	}

	booking, err := h.service.GetPurchase(r.Context(), identity, requestID)
	if err != nil {
		respondError(w, h.log, err, "get purchase")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}
