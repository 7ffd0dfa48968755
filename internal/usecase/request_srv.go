package usecase

import (
	"context"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestService is the booking-request lifecycle engine. It owns every
// status transition and appends the notifications those transitions produce.
// A transition and its notifications always land in one persisted write.
type RequestService interface {
	// User operations
	Create(ctx context.Context, caller utils.Identity, req *request.CreateBookingRequest) (*response.BookingRequestResponse, error)
	ListMine(ctx context.Context, caller utils.Identity, status string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingRequestResponse], error)
	GetByID(ctx context.Context, caller utils.Identity, requestID string) (*response.BookingRequestResponse, error)
	Cancel(ctx context.Context, caller utils.Identity, requestID string) (*response.BookingRequestResponse, error)
	UnreadNotifications(ctx context.Context, caller utils.Identity) ([]response.UnreadNotificationResponse, error)
	MarkNotificationsRead(ctx context.Context, caller utils.Identity, requestID string) error

	// Admin operations
	Respond(ctx context.Context, caller utils.Identity, requestID string, req *request.RespondRequest) (*response.BookingRequestResponse, error)
	SetStatus(ctx context.Context, caller utils.Identity, requestID string, req *request.UpdateStatusRequest) (*response.BookingRequestResponse, error)
	AdminList(ctx context.Context, query *request.AdminListRequestsQuery) (*response.AdminRequestListResponse, error)
	AdminGet(ctx context.Context, requestID string) (*response.BookingRequestResponse, error)
	AdminDelete(ctx context.Context, requestID string) error
}

type requestService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRequestService(repo *repository.Repository, log *zap.Logger) RequestService {
	return &requestService{
		repo: repo,
		log:  log.With(zap.String("service", "request")),
	}
}

const dateLayout = "2006-01-02"

func (s *requestService) Create(ctx context.Context, caller utils.Identity, req *request.CreateBookingRequest) (*response.BookingRequestResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create request validation failed", zap.Any("errors", errs))
		return nil, apperr.Newf(apperr.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	checkIn, err := time.Parse(dateLayout, req.CheckInDate)
	if err != nil {
		return nil, apperr.Newf(apperr.KindValidation, "invalid check-in date %s", req.CheckInDate)
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOutDate)
	if err != nil {
		return nil, apperr.Newf(apperr.KindValidation, "invalid check-out date %s", req.CheckOutDate)
	}

	// Date guards: check-in today or later, check-out strictly after check-in
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if checkIn.Before(today) {
		return nil, apperr.New(apperr.KindValidation, "check-in date cannot be in the past")
	}
	if !checkOut.After(checkIn) {
		return nil, apperr.New(apperr.KindValidation, "check-out date must be after check-in date")
	}

	guests := req.Guests
	if guests < 1 {
		guests = 1
	}

	booking := &entity.BookingRequest{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:       caller.UserID,
		PackageID:    req.PackageID,
		PackageTitle: req.PackageTitle,
		PackagePrice: req.PackagePrice,
		Guests:       guests,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Note:         req.Note,
		TotalAmount:  req.PackagePrice * float64(guests),
		Status:       entity.StatusPending,
		Version:      1,
	}

	if err := s.repo.Request.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking request",
			zap.Error(err),
			zap.String("user_id", caller.UserID.String()),
		)
		return nil, err
	}

	s.log.Info("Booking request created",
		zap.String("request_id", booking.ID.String()),
		zap.String("user_id", caller.UserID.String()),
		zap.String("package_title", booking.PackageTitle),
		zap.Float64("total_amount", booking.TotalAmount),
	)

	resp := response.BookingRequestToResponse(booking)
	return &resp, nil
}

func (s *requestService) ListMine(ctx context.Context, caller utils.Identity, status string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingRequestResponse], error) {
	filter := repository.RequestFilter{
		UserID: &caller.UserID,
		SortBy: "created_at",
		Limit:  page.Limit(),
		Offset: page.Offset(),
	}

	if status != "" {
		parsed, err := entity.ParseRequestStatus(status)
		if err != nil {
			return nil, apperr.Newf(apperr.KindValidation, "invalid status filter %s", status)
		}
		filter.Statuses = []entity.RequestStatus{parsed}
	}

	requests, err := s.repo.Request.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Request.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]response.BookingRequestResponse, len(requests))
	for i, booking := range requests {
		responses[i] = response.BookingRequestToResponse(booking)
	}

	return response.NewPaginatedResponse(responses, page.Page, page.PerPage, total), nil
}

func (s *requestService) GetByID(ctx context.Context, caller utils.Identity, requestID string) (*response.BookingRequestResponse, error) {
	booking, err := s.findOwned(ctx, caller, requestID)
	if err != nil {
		return nil, err
	}

	notifications, err := s.repo.Notification.FindByRequestID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingRequestWithNotifications(booking, notifications)
	return &resp, nil
}

func (s *requestService) Cancel(ctx context.Context, caller utils.Identity, requestID string) (*response.BookingRequestResponse, error) {
	booking, err := s.findOwned(ctx, caller, requestID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanCancel() {
		return nil, apperr.Newf(apperr.KindInvalidTransition,
			"cannot cancel request in status %s", booking.Status)
	}

	booking.Status = entity.StatusCancelled
	notification := newNotification(booking.ID, "You cancelled this booking request")

	if err := s.repo.Request.SaveTransition(ctx, booking, notification); err != nil {
		s.log.Error("Failed to cancel request",
			zap.Error(err),
			zap.String("request_id", booking.ID.String()),
		)
		return nil, err
	}

	s.log.Info("Booking request cancelled",
		zap.String("request_id", booking.ID.String()),
		zap.String("user_id", caller.UserID.String()),
	)

	resp := response.BookingRequestToResponse(booking)
	return &resp, nil
}

func (s *requestService) UnreadNotifications(ctx context.Context, caller utils.Identity) ([]response.UnreadNotificationResponse, error) {
	unread, err := s.repo.Notification.FindUnreadByUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	responses := make([]response.UnreadNotificationResponse, len(unread))
	for i, notification := range unread {
		responses[i] = response.UnreadToResponse(notification)
	}

	return responses, nil
}

func (s *requestService) MarkNotificationsRead(ctx context.Context, caller utils.Identity, requestID string) error {
	booking, err := s.findOwned(ctx, caller, requestID)
	if err != nil {
		return err
	}

	// Idempotent: marking an already-read set changes nothing
	if err := s.repo.Notification.MarkAllRead(ctx, booking.ID); err != nil {
		s.log.Error("Failed to mark notifications read",
			zap.Error(err),
			zap.String("request_id", booking.ID.String()),
		)
		return err
	}

	return nil
}

// ==================== ADMIN METHODS ====================

func (s *requestService) Respond(ctx context.Context, caller utils.Identity, requestID string, req *request.RespondRequest) (*response.BookingRequestResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Respond validation failed", zap.Any("errors", errs))
		return nil, apperr.Newf(apperr.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.findByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	// Respond is the controlled path: only pending requests are eligible
	if booking.Status != entity.StatusPending {
		return nil, apperr.Newf(apperr.KindInvalidTransition,
			"can only respond to pending requests, current status is %s", booking.Status)
	}

	message := req.Message
	if message == "" {
		message = fmt.Sprintf("Request %s", req.Status)
	}

	var notificationMessage string
	if req.Status == "approved" {
		booking.Status = entity.StatusPaymentPending
		notificationMessage = fmt.Sprintf(
			"Your booking request for %q has been approved! You can now proceed to payment.",
			booking.PackageTitle)
	} else {
		booking.Status = entity.StatusRejected
		notificationMessage = fmt.Sprintf(
			"Your booking request for %q has been rejected. %s",
			booking.PackageTitle, req.Message)
	}

	booking.AdminResponse = &entity.AdminResponse{
		Message:     message,
		RespondedBy: caller.UserID,
		RespondedAt: time.Now(),
	}

	notification := newNotification(booking.ID, notificationMessage)

	if err := s.repo.Request.SaveTransition(ctx, booking, notification); err != nil {
		s.log.Error("Failed to respond to request",
			zap.Error(err),
			zap.String("request_id", booking.ID.String()),
			zap.String("decision", req.Status),
		)
		return nil, err
	}

	s.log.Info("Admin responded to request",
		zap.String("request_id", booking.ID.String()),
		zap.String("decision", req.Status),
		zap.String("admin_id", caller.UserID.String()),
	)

	resp := response.BookingRequestToResponse(booking)
	return &resp, nil
}

func (s *requestService) SetStatus(ctx context.Context, caller utils.Identity, requestID string, req *request.UpdateStatusRequest) (*response.BookingRequestResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Set status validation failed", zap.Any("errors", errs))
		return nil, apperr.Newf(apperr.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	target, err := entity.ParseRequestStatus(req.Status)
	if err != nil {
		return nil, apperr.Newf(apperr.KindValidation, "invalid status %s", req.Status)
	}

	booking, err := s.findByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	// The direct status update accepts any valid target. It is deliberately
	// looser than Respond, which is the only path that sets AdminResponse.
	booking.Status = target

	var notifications []*entity.Notification
	if req.Note != "" {
		notifications = append(notifications, newNotification(booking.ID, req.Note))
	}

	if err := s.repo.Request.SaveTransition(ctx, booking, notifications...); err != nil {
		s.log.Error("Failed to update request status",
			zap.Error(err),
			zap.String("request_id", booking.ID.String()),
			zap.String("status", target.String()),
		)
		return nil, err
	}

	s.log.Info("Request status updated",
		zap.String("request_id", booking.ID.String()),
		zap.String("status", target.String()),
		zap.String("admin_id", caller.UserID.String()),
	)

	resp := response.BookingRequestToResponse(booking)
	return &resp, nil
}

func (s *requestService) AdminList(ctx context.Context, query *request.AdminListRequestsQuery) (*response.AdminRequestListResponse, error) {
	filter := repository.RequestFilter{
		TitleSearch: query.Search,
		SortBy:      query.SortBy,
		SortAsc:     query.SortOrder == "asc",
		Limit:       query.PerPage,
		Offset:      (query.Page - 1) * query.PerPage,
	}

	if query.Status != "" {
		parsed, err := entity.ParseRequestStatus(query.Status)
		if err != nil {
			return nil, apperr.Newf(apperr.KindValidation, "invalid status filter %s", query.Status)
		}
		filter.Statuses = []entity.RequestStatus{parsed}
	}

	requests, err := s.repo.Request.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Request.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.Request.CountByStatus(ctx, nil)
	if err != nil {
		return nil, err
	}
	stats := make(map[string]int64, len(counts))
	for status, count := range counts {
		stats[status.String()] = count
	}

	responses := make([]response.BookingRequestResponse, len(requests))
	for i, booking := range requests {
		responses[i] = response.BookingRequestToResponse(booking)
	}

	totalPages := 0
	if query.PerPage > 0 {
		totalPages = int((total + int64(query.PerPage) - 1) / int64(query.PerPage))
	}

	return &response.AdminRequestListResponse{
		Requests: responses,
		Stats:    stats,
		Pagination: response.PaginationMeta{
			Page:       query.Page,
			PerPage:    query.PerPage,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *requestService) AdminGet(ctx context.Context, requestID string) (*response.BookingRequestResponse, error) {
	booking, err := s.findByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	notifications, err := s.repo.Notification.FindByRequestID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingRequestWithNotifications(booking, notifications)
	return &resp, nil
}

func (s *requestService) AdminDelete(ctx context.Context, requestID string) error {
	id, err := uuid.Parse(requestID)
	if err != nil {
		return apperr.Newf(apperr.KindValidation, "invalid request ID %s", requestID)
	}

	if err := s.repo.Request.Delete(ctx, id); err != nil {
		return err
	}

	return nil
}

// ==================== HELPER METHODS ====================

func (s *requestService) findByID(ctx context.Context, requestID string) (*entity.BookingRequest, error) {
	id, err := uuid.Parse(requestID)
	if err != nil {
		return nil, apperr.Newf(apperr.KindValidation, "invalid request ID %s", requestID)
	}

	booking, err := s.repo.Request.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.Newf(apperr.KindNotFound, "request %s not found", requestID)
	}

	return booking, nil
}

// findOwned resolves a request only if the caller owns it. Unknown and
// foreign IDs look the same to the caller.
func (s *requestService) findOwned(ctx context.Context, caller utils.Identity, requestID string) (*entity.BookingRequest, error) {
	id, err := uuid.Parse(requestID)
	if err != nil {
		return nil, apperr.Newf(apperr.KindValidation, "invalid request ID %s", requestID)
	}

	booking, err := s.repo.Request.FindByIDAndUser(ctx, id, caller.UserID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.Newf(apperr.KindNotFound, "request %s not found", requestID)
	}

	return booking, nil
}

func newNotification(requestID uuid.UUID, message string) *entity.Notification {
	return &entity.Notification{
		ID:        uuid.New(),
		RequestID: requestID,
		Message:   message,
		Read:      false,
		CreatedAt: time.Now(),
	}
}
