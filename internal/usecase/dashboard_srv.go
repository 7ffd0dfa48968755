package usecase

import (
	"context"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type DashboardService interface {
	Overview(ctx context.Context, caller utils.Identity) (*response.DashboardOverviewResponse, error)
	Bookings(ctx context.Context, caller utils.Identity, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingRequestResponse], error)
	PendingRequests(ctx context.Context, caller utils.Identity) ([]response.BookingRequestResponse, error)
	Profile(ctx context.Context, caller utils.Identity) (*response.ProfileResponse, error)
}

type dashboardService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewDashboardService(repo *repository.Repository, log *zap.Logger) DashboardService {
	return &dashboardService{
		repo: repo,
		log:  log.With(zap.String("service", "dashboard")),
	}
}

func (s *dashboardService) Overview(ctx context.Context, caller utils.Identity) (*response.DashboardOverviewResponse, error) {
	counts, err := s.repo.Request.CountByStatus(ctx, &caller.UserID)
	if err != nil {
		return nil, err
	}

	// Every status appears in the stats, zeroed when absent
	stats := make(map[string]int64, len(entity.AllRequestStatuses))
	for _, status := range entity.AllRequestStatuses {
		stats[status.String()] = counts[status]
	}

	recent, err := s.repo.Request.Find(ctx, repository.RequestFilter{
		UserID: &caller.UserID,
		SortBy: "updated_at",
		Limit:  5,
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]response.RequestSummary, len(recent))
	for i, booking := range recent {
		summaries[i] = response.RequestSummary{
			ID:           booking.ID.String(),
			PackageTitle: booking.PackageTitle,
			Status:       booking.Status.String(),
			TotalAmount:  booking.TotalAmount,
			CreatedAt:    booking.CreatedAt.Format(time.RFC3339),
			UpdatedAt:    booking.UpdatedAt.Format(time.RFC3339),
		}
	}

	now := time.Now()
	upcoming, err := s.repo.Request.Find(ctx, repository.RequestFilter{
		UserID:      &caller.UserID,
		Statuses:    []entity.RequestStatus{entity.StatusPaid, entity.StatusCompleted},
		CheckInFrom: &now,
		SortBy:      "check_in_date",
		SortAsc:     true,
		Limit:       3,
	})
	if err != nil {
		return nil, err
	}

	upcomingResponses := make([]response.BookingRequestResponse, len(upcoming))
	for i, booking := range upcoming {
		upcomingResponses[i] = response.BookingRequestToResponse(booking)
	}

	unread, err := s.repo.Notification.CountUnreadByUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	return &response.DashboardOverviewResponse{
		Stats:               stats,
		RecentRequests:      summaries,
		UpcomingBookings:    upcomingResponses,
		UnreadNotifications: unread,
	}, nil
}

func (s *dashboardService) Bookings(ctx context.Context, caller utils.Identity, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingRequestResponse], error) {
	filter := repository.RequestFilter{
		UserID:   &caller.UserID,
		Statuses: []entity.RequestStatus{entity.StatusPaid, entity.StatusCompleted},
		SortBy:   "check_in_date",
		Limit:    page.Limit(),
		Offset:   page.Offset(),
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

func (s *dashboardService) PendingRequests(ctx context.Context, caller utils.Identity) ([]response.BookingRequestResponse, error) {
	requests, err := s.repo.Request.Find(ctx, repository.RequestFilter{
		UserID:   &caller.UserID,
		Statuses: []entity.RequestStatus{entity.StatusPending, entity.StatusPaymentPending},
		SortBy:   "created_at",
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

func (s *dashboardService) Profile(ctx context.Context, caller utils.Identity) (*response.ProfileResponse, error) {
	user, err := s.repo.User.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.New(apperr.KindNotFound, "user not found")
	}

	counts, err := s.repo.Request.CountByStatus(ctx, &caller.UserID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range counts {
		total += count
	}

	spent, err := s.repo.Request.SumPaidAmountByUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	return &response.ProfileResponse{
		User: response.UserToResponse(user),
		BookingStats: response.BookingStats{
			Total:      total,
			Completed:  counts[entity.StatusCompleted],
			TotalSpent: spent,
		},
	}, nil
}
