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

type RequestHandler struct {
	service usecase.RequestService
	log     *zap.Logger
}

func NewRequestHandler(service usecase.RequestService, log *zap.Logger) *RequestHandler {
	return &RequestHandler{
		service: service,
		log:     log.With(zap.String("handler", "request")),
	}
}

// Create handles POST /api/requests (protected)
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.Create(r.Context(), identity, &req)
	if err != nil {
		respondError(w, h.log, err, "create booking request")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// ListMine handles GET /api/requests (protected)
func (h *RequestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	requests, err := h.service.ListMine(r.Context(), identity, query.Get("status"), page)
	if err != nil {
		respondError(w, h.log, err, "list booking requests")
		return
	}

	utils.ResponseSuccess(w, "success", requests)
}

// GetByID handles GET /api/requests/{id} (protected)
func (h *RequestHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		utils.ResponseBadRequest(w, "Request ID is required", nil)
		return
	}

	booking, err := h.service.GetByID(r.Context(), identity, requestID)
	if err != nil {
		respondError(w, h.log, err, "get booking request")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// Cancel handles PUT /api/requests/{id}/cancel (protected)
func (h *RequestHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		utils.ResponseBadRequest(w, "Request ID is required", nil)
		return
	}

	booking, err := h.service.Cancel(r.Context(), identity, requestID)
	if err != nil {
		respondError(w, h.log, err, "cancel booking request")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// UnreadNotifications handles GET /api/requests/notifications/unread (protected)
func (h *RequestHandler) UnreadNotifications(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	notifications, err := h.service.UnreadNotifications(r.Context(), identity)
	if err != nil {
		respondError(w, h.log, err, "list unread notifications")
		return
	}

	utils.ResponseSuccess(w, "success", notifications)
}

// MarkNotificationsRead handles PUT /api/requests/{id}/notifications/read (protected)
func (h *RequestHandler) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		utils.ResponseBadRequest(w, "Request ID is required", nil)
		return
	}

	if err := h.service.MarkNotificationsRead(r.Context(), identity, requestID); err != nil {
		respondError(w, h.log, err, "mark notifications read")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
