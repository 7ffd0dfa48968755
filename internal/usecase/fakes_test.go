package usecase

import (
	"context"
	"sort"
	"strings"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/apperr"

	"github.com/google/uuid"
)

// fakeStore is a shared in-memory backing store for the fake repositories.
type fakeStore struct {
	users         map[uuid.UUID]*entity.User
	requests      map[uuid.UUID]*entity.BookingRequest
	notifications []*entity.Notification
	logins        []*entity.LoginLog
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*entity.User),
		requests: make(map[uuid.UUID]*entity.BookingRequest),
	}
}

func newFakeRepository(store *fakeStore) *repository.Repository {
	return &repository.Repository{
		User:         &fakeUserRepo{store},
		Request:      &fakeRequestRepo{store},
		Notification: &fakeNotificationRepo{store},
		LoginLog:     &fakeLoginLogRepo{store},
	}
}

func copyRequest(request *entity.BookingRequest) *entity.BookingRequest {
	clone := *request
	if request.AdminResponse != nil {
		admin := *request.AdminResponse
		clone.AdminResponse = &admin
	}
	if request.Payment != nil {
		payment := *request.Payment
		clone.Payment = &payment
	}
	return &clone
}

// ==================== USERS ====================

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	clone := *user
	r.store.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.store.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(r.store.users))
	for _, user := range r.store.users {
		clone := *user
		users = append(users, &clone)
	}
	return users, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if _, ok := r.store.users[user.ID]; !ok {
		return apperr.New(apperr.KindNotFound, "user not found")
	}
	clone := *user
	r.store.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.store.users[id]; !ok {
		return apperr.New(apperr.KindNotFound, "user not found")
	}
	delete(r.store.users, id)
	return nil
}

// ==================== REQUESTS ====================

type fakeRequestRepo struct {
	store *fakeStore
}

func (r *fakeRequestRepo) Create(ctx context.Context, request *entity.BookingRequest) error {
	r.store.requests[request.ID] = copyRequest(request)
	return nil
}

func (r *fakeRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingRequest, error) {
	request, ok := r.store.requests[id]
	if !ok {
		return nil, nil
	}
	return copyRequest(request), nil
}

func (r *fakeRequestRepo) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.BookingRequest, error) {
	request, ok := r.store.requests[id]
	if !ok || request.UserID != userID {
		return nil, nil
	}
	return copyRequest(request), nil
}

func (r *fakeRequestRepo) matches(request *entity.BookingRequest, filter repository.RequestFilter) bool {
	if filter.UserID != nil && request.UserID != *filter.UserID {
		return false
	}
	if len(filter.Statuses) > 0 {
		found := false
		for _, status := range filter.Statuses {
			if request.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.TitleSearch != "" &&
		!strings.Contains(strings.ToLower(request.PackageTitle), strings.ToLower(filter.TitleSearch)) {
		return false
	}
	if filter.CheckInFrom != nil && request.CheckInDate.Before(*filter.CheckInFrom) {
		return false
	}
	return true
}

func (r *fakeRequestRepo) Find(ctx context.Context, filter repository.RequestFilter) ([]*entity.BookingRequest, error) {
	var matched []*entity.BookingRequest
	for _, request := range r.store.requests {
		if r.matches(request, filter) {
			matched = append(matched, copyRequest(request))
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		var before bool
		switch filter.SortBy {
		case "check_in_date":
			before = matched[i].CheckInDate.Before(matched[j].CheckInDate)
		case "updated_at":
			before = matched[i].UpdatedAt.Before(matched[j].UpdatedAt)
		default:
			before = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if filter.SortAsc {
			return before
		}
		return !before
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

func (r *fakeRequestRepo) Count(ctx context.Context, filter repository.RequestFilter) (int64, error) {
	var count int64
	for _, request := range r.store.requests {
		if r.matches(request, filter) {
			count++
		}
	}
	return count, nil
}

func (r *fakeRequestRepo) CountByStatus(ctx context.Context, userID *uuid.UUID) (map[entity.RequestStatus]int64, error) {
	counts := make(map[entity.RequestStatus]int64)
	for _, request := range r.store.requests {
		if userID != nil && request.UserID != *userID {
			continue
		}
		counts[request.Status]++
	}
	return counts, nil
}

func (r *fakeRequestRepo) SumPaidAmountByUser(ctx context.Context, userID uuid.UUID) (float64, error) {
	var sum float64
	for _, request := range r.store.requests {
		if request.UserID != userID || request.Payment == nil {
			continue
		}
		sum += request.Payment.Amount
	}
	return sum, nil
}

func (r *fakeRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.store.requests[id]; !ok {
		return apperr.New(apperr.KindNotFound, "request not found")
	}
	delete(r.store.requests, id)
	return nil
}

func (r *fakeRequestRepo) SaveTransition(ctx context.Context, request *entity.BookingRequest, notifications ...*entity.Notification) error {
	stored, ok := r.store.requests[request.ID]
	if !ok {
		return apperr.New(apperr.KindNotFound, "request not found")
	}
	if stored.Version != request.Version {
		return apperr.New(apperr.KindConflict, "request was modified concurrently")
	}

	seq := 0
	for _, notification := range r.store.notifications {
		if notification.RequestID == request.ID && notification.Seq > seq {
			seq = notification.Seq
		}
	}
	for _, notification := range notifications {
		seq++
		clone := *notification
		clone.Seq = seq
		r.store.notifications = append(r.store.notifications, &clone)
	}

	request.Version++
	r.store.requests[request.ID] = copyRequest(request)
	return nil
}

// ==================== NOTIFICATIONS ====================

type fakeNotificationRepo struct {
	store *fakeStore
}

func (r *fakeNotificationRepo) FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]*entity.Notification, error) {
	var matched []*entity.Notification
	for _, notification := range r.store.notifications {
		if notification.RequestID == requestID {
			clone := *notification
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Seq < matched[j].Seq })
	return matched, nil
}

func (r *fakeNotificationRepo) FindUnreadByUser(ctx context.Context, userID uuid.UUID) ([]*repository.UnreadNotification, error) {
	var unread []*repository.UnreadNotification
	for _, notification := range r.store.notifications {
		if notification.Read {
			continue
		}
		request, ok := r.store.requests[notification.RequestID]
		if !ok || request.UserID != userID {
			continue
		}
		unread = append(unread, &repository.UnreadNotification{
			RequestID:    request.ID,
			PackageTitle: request.PackageTitle,
			Status:       request.Status,
			Message:      notification.Message,
			CreatedAt:    notification.CreatedAt,
		})
	}
	sort.Slice(unread, func(i, j int) bool { return unread[i].CreatedAt.After(unread[j].CreatedAt) })
	return unread, nil
}

func (r *fakeNotificationRepo) CountUnreadByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	unread, err := r.FindUnreadByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(unread)), nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, requestID uuid.UUID) error {
	for _, notification := range r.store.notifications {
		if notification.RequestID == requestID {
			notification.Read = true
		}
	}
	return nil
}

// ==================== LOGIN LOGS ====================

type fakeLoginLogRepo struct {
	store *fakeStore
}

func (r *fakeLoginLogRepo) Create(ctx context.Context, log *entity.LoginLog) error {
	clone := *log
	r.store.logins = append(r.store.logins, &clone)
	return nil
}

func (r *fakeLoginLogRepo) FindRecent(ctx context.Context, limit, offset int) ([]*repository.LoginLogWithUser, error) {
	var logs []*repository.LoginLogWithUser
	for _, log := range r.store.logins {
		entry := &repository.LoginLogWithUser{LoginLog: *log}
		if user, ok := r.store.users[log.UserID]; ok {
			entry.UserName = user.Name
			entry.UserEmail = user.Email
		}
		logs = append(logs, entry)
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].CreatedAt.After(logs[j].CreatedAt) })

	if offset > 0 {
		if offset >= len(logs) {
			return nil, nil
		}
		logs = logs[offset:]
	}
	if limit > 0 && limit < len(logs) {
		logs = logs[:limit]
	}
	return logs, nil
}
