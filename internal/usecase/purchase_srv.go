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

// PurchaseService drives the payment leg of a booking request against a
// simulated gateway. Confirm is the only operation that moves status.
type PurchaseService interface {
	PendingPayments(ctx context.Context, caller utils.Identity) ([]response.BookingRequestResponse, error)
	Initiate(ctx context.Context, caller utils.Identity, req *request.InitiatePaymentRequest) (*response.PaymentSessionResponse, error)
	Confirm(ctx context.Context, caller utils.Identity, req *request.ConfirmPaymentRequest) (*response.BookingRequestResponse, error)
	CancelPayment(ctx context.Context, caller utils.Identity, req *request.CancelPaymentRequest) (*response.BookingRequestResponse, error)
	History(ctx context.Context, caller utils.Identity, status string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingRequestResponse], error)
	GetPurchase(ctx context.Context, caller utils.Identity, requestID string) (*response.BookingRequestResponse, error)
}

type purchaseService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPurchaseService(repo *repository.Repository, log *zap.Logger) PurchaseService {
	return &purchaseService{
		repo: repo,
		log:  log.With(zap.String("service", "purchase")),
	}
}

func (s *purchaseService) PendingPayments(ctx context.Context, caller utils.Identity) ([]response.BookingRequestResponse, error) {
	requests, err := s.repo.Request.Find(ctx, repository.RequestFilter{
		UserID:   &caller.UserID,
		Statuses: []entity.RequestStatus{entity.StatusPaymentPending},
		SortBy:   "updated_at",
	})
	if err != nil {
		return nil, err
	}

	responses := make([]response.BookingRequestResponse, len(requests))
	for i, booking := range requests {
		responses[i] = response.BookingRequestToResponse(booking)
	}

	return responses, nil
}

// Initiate opens a simulated gateway session for a payable request. Nothing
// is persisted; the session exists only to be echoed back on confirm.
func (s *purchaseService) Initiate(ctx context.Context, caller utils.Identity, req *request.InitiatePaymentRequest) (*response.PaymentSessionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Newf(apperr.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.findPayable(ctx, caller, req.RequestID)
	if err != nil {
		return nil, err
	}

	session := &response.PaymentSessionResponse{
		SessionID: utils.GeneratePaymentSessionID(),
		RequestID: booking.ID.String(),
		Amount:    booking.TotalAmount,
		Currency:  "USD",
		Status:    "created",
	}

	s.log.Info("Payment session created",
		zap.String("request_id", booking.ID.String()),
		zap.String("session_id", session.SessionID),
		zap.Float64("amount", session.Amount),
	)

	return session, nil
}

func (s *purchaseService) Confirm(ctx context.Context, caller utils.Identity, req *request.ConfirmPaymentRequest) (*response.BookingRequestResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Newf(apperr.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.findPayable(ctx, caller, req.RequestID)
	if err != nil {
		return nil, err
	}

	// The charged amount must match what was quoted at creation exactly.
	// A mismatch leaves the request payable.
	if req.Amount != booking.TotalAmount {
		return nil, apperr.Newf(apperr.KindInvalidTransition,
			"payment amount %.2f does not match total %.2f", req.Amount, booking.TotalAmount)
	}

	method := req.PaymentMethod
	if method == "" {
		method = "card"
	}

	booking.Status = entity.StatusPaid
	booking.Payment = &entity.PaymentInfo{
		Amount:        req.Amount,
		Currency:      "USD",
		PaymentID:     req.PaymentID,
		PaymentMethod: method,
		PaidAt:        time.Now(),
	}

	notification := newNotification(booking.ID, fmt.Sprintf(
		"Payment successful! Your booking for %q is confirmed.", booking.PackageTitle))

	if err := s.repo.Request.SaveTransition(ctx, booking, notification); err != nil {
		s.log.Error("Failed to confirm payment",
			zap.Error(err),
			zap.String("request_id", booking.ID.String()),
		)
		return nil, err
	}

	s.log.Info("Payment confirmed",
		zap.String("request_id", booking.ID.String()),
		zap.String("payment_id", req.PaymentID),
		zap.Float64("amount", req.Amount),
	)

	resp := response.BookingRequestToResponse(booking)
	return &resp, nil
}

// CancelPayment records the cancellation as a notification but leaves the
// request in payment_pending, so the user can retry later.
func (s *purchaseService) CancelPayment(ctx context.Context, caller utils.Identity, req *request.CancelPaymentRequest) (*response.BookingRequestResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Newf(apperr.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.findPayable(ctx, caller, req.RequestID)
	if err != nil {
		return nil, err
	}

	notification := newNotification(booking.ID, fmt.Sprintf(
		"Payment cancelled for %q. %s", booking.PackageTitle, req.Reason))

	if err := s.repo.Request.SaveTransition(ctx, booking, notification); err != nil {
		s.log.Error("Failed to record payment cancellation",
			zap.Error(err),
			zap.String("request_id", booking.ID.String()),
		)
		return nil, err
	}

	s.log.Info("Payment cancelled",
		zap.String("request_id", booking.ID.String()),
		zap.String("user_id", caller.UserID.String()),
	)

	resp := response.BookingRequestToResponse(booking)
	return &resp, nil
}

func (s *purchaseService) History(ctx context.Context, caller utils.Identity, status string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingRequestResponse], error) {
	filter := repository.RequestFilter{
		UserID: &caller.UserID,
		SortBy: "paid_at",
		Limit:  page.Limit(),
		Offset: page.Offset(),
	}

	if status != "" {
		parsed, err := entity.ParseRequestStatus(status)
		if err != nil {
			return nil, apperr.Newf(apperr.KindValidation, "invalid status filter %s", status)
		}
		filter.Statuses = []entity.RequestStatus{parsed}
	} else {
		filter.Statuses = []entity.RequestStatus{
			entity.StatusPaid,
			entity.StatusCompleted,
		}
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

func (s *purchaseService) GetPurchase(ctx context.Context, caller utils.Identity, requestID string) (*response.BookingRequestResponse, error) {
	id, err := uuid.Parse(requestID)
	if err != nil {
		return nil, apperr.Newf(apperr.KindValidation, "invalid request ID %s", requestID)
	}

	booking, err := s.repo.Request.FindByIDAndUser(ctx, id, caller.UserID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.Newf(apperr.KindNotFound, "purchase %s not found", requestID)
	}

	resp := response.BookingRequestToResponse(booking)
	return &resp, nil
}

// findPayable resolves an owned request that is awaiting payment.
func (s *purchaseService) findPayable(ctx context.Context, caller utils.Identity, requestID string) (*entity.BookingRequest, error) {
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

	if booking.Status != entity.StatusPaymentPending {
		return nil, apperr.Newf(apperr.KindInvalidTransition,
			"request is not awaiting payment, current status is %s", booking.Status)
	}

	return booking, nil
}
