package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	service usecase.DashboardService
	log     *zap.Logger
}

func NewDashboardHandler(service usecase.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log.With(zap.String("handler", "dashboard")),
	}
}

// Overview handles GET /api/dashboard/overview (protected)
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	overview, err := h.service.Overview(r.Context(), identity)
	if err != nil {
		respondError(w, h.log, err, "get dashboard overview")
		return
	}

	utils.ResponseSuccess(w, "success", overview)
}

// Bookings handles GET /api/dashboard/bookings (protected)
func (h *DashboardHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	bookings, err := h.service.Bookings(r.Context(), identity, page)
	if err != nil {
		respondError(w, h.log, err, "list dashboard bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// PendingRequests handles GET /api/dashboard/pending-requests (protected)
func (h *DashboardHandler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	pending, err := h.service.PendingRequests(r.Context(), identity)
	if err != nil {
		respondError(w, h.log, err, "list pending requests")
		return
	}

	utils.ResponseSuccess(w, "success", pending)
}

// Profile handles GET /api/dashboard/profile (protected)
func (h *DashboardHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	profile, err := h.service.Profile(r.Context(), identity)
	if err != nil {
		respondError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "success", profile)
}
