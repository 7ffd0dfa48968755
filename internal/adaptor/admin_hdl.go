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

type AdminHandler struct {
	requests usecase.RequestService
	users    usecase.UserService
	log      *zap.Logger
}

func NewAdminHandler(requests usecase.RequestService, users usecase.UserService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		requests: requests,
		users:    users,
		log:      log.With(zap.String("handler", "admin")),
	}
}

// ==================== REQUEST MANAGEMENT ====================

// ListRequests handles GET /api/admin/requests (admin only)
func (h *AdminHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	sortOrder := values.Get("sort_order")
	if sortOrder == "" {
		sortOrder = "desc"
	}

	query := &request.AdminListRequestsQuery{
		Status:    values.Get("status"),
		Search:    values.Get("search"),
		SortBy:    values.Get("sort_by"),
		SortOrder: sortOrder,
		Page:      utils.ParseInt(values.Get("page"), 1),
		PerPage:   utils.ParseInt(values.Get("per_page"), 10),
	}

	list, err := h.requests.AdminList(r.Context(), query)
	if err != nil {
		respondError(w, h.log, err, "list requests")
		return
	}

	utils.ResponseSuccess(w, "success", list)
}

// GetRequest handles GET /api/admin/requests/{id} (admin only)
func (h *AdminHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		utils.ResponseBadRequest(w, "Request ID is required", nil)
		return
	}

	booking, err := h.requests.AdminGet(r.Context(), requestID)
	if err != nil {
		respondError(w, h.log, err, "get request")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// Respond handles PUT /api/admin/requests/{id}/respond (admin only)
func (h *AdminHandler) Respond(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		utils.ResponseBadRequest(w, "Request ID is required", nil)
		return
	}

	var req request.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.requests.Respond(r.Context(), identity, requestID, &req)
	if err != nil {
		respondError(w, h.log, err, "respond to request")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// SetStatus handles PUT /api/admin/requests/{id}/status (admin only)
func (h *AdminHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		utils.ResponseBadRequest(w, "Request ID is required", nil)
		return
	}

	var req request.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.requests.SetStatus(r.Context(), identity, requestID, &req)
	if err != nil {
		respondError(w, h.log, err, "update request status")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// DeleteRequest handles DELETE /api/admin/requests/{id} (admin only)
func (h *AdminHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		utils.ResponseBadRequest(w, "Request ID is required", nil)
		return
	}

	if err := h.requests.AdminDelete(r.Context(), requestID); err != nil {
		respondError(w, h.log, err, "delete request")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ==================== USER MANAGEMENT ====================

// ListUsers handles GET /api/admin/users (admin only)
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		respondError(w, h.log, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "success", users)
}

// GetUser handles GET /api/admin/users/{id} (admin only)
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		respondError(w, h.log, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

// CreateUser handles POST /api/admin/users (admin only)
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.users.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create user")
		return
	}

	utils.ResponseCreated(w, "success", user)
}

// UpdateUser handles PUT /api/admin/users/{id} (admin only)
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	var req request.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.users.Update(r.Context(), userID, &req)
	if err != nil {
		respondError(w, h.log, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

// DeleteUser handles DELETE /api/admin/users/{id} (admin only)
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	userID := chi.URLParam(r, "id")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	if err := h.users.Delete(r.Context(), identity, userID); err != nil {
		respondError(w, h.log, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// LoginLogs handles GET /api/admin/logins (admin only)
func (h *AdminHandler) LoginLogs(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(values.Get("page"), 1),
		PerPage: utils.ParseInt(values.Get("per_page"), 20),
	}

	logs, err := h.users.LoginLogs(r.Context(), page)
	if err != nil {
		respondError(w, h.log, err, "list login logs")
		return
	}

	utils.ResponseSuccess(w, "success", logs)
}
