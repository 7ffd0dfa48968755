package usecase

import (
	"context"
	"testing"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func testIdentity() utils.Identity {
	return utils.Identity{UserID: uuid.New(), Role: "user"}
}

func adminIdentity() utils.Identity {
	return utils.Identity{UserID: uuid.New(), Role: "admin"}
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func validCreateRequest() *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		PackageTitle: "Bali Getaway",
		PackagePrice: 200,
		Guests:       2,
		CheckInDate:  futureDate(7),
		CheckOutDate: futureDate(10),
	}
}

func newRequestTestService() (RequestService, *fakeStore) {
	store := newFakeStore()
	return NewRequestService(newFakeRepository(store), zap.NewNop()), store
}

func TestCreateComputesTotalAndStartsPending(t *testing.T) {
	svc, _ := newRequestTestService()
	caller := testIdentity()

	booking, err := svc.Create(context.Background(), caller, validCreateRequest())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if booking.Status != entity.StatusPending {
		t.Errorf("expected status pending, got %s", booking.Status)
	}
	if booking.TotalAmount != 400 {
		t.Errorf("expected total 400 (200 x 2 guests), got %.2f", booking.TotalAmount)
	}
	if booking.UserID != caller.UserID.String() {
		t.Errorf("expected owner %s, got %s", caller.UserID, booking.UserID)
	}
}

func TestCreateDefaultsGuestsToOne(t *testing.T) {
	svc, _ := newRequestTestService()

	req := validCreateRequest()
	req.Guests = 0

	booking, err := svc.Create(context.Background(), testIdentity(), req)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if booking.Guests != 1 {
		t.Errorf("expected guests to default to 1, got %d", booking.Guests)
	}
	if booking.TotalAmount != 200 {
		t.Errorf("expected total 200 for a single guest, got %.2f", booking.TotalAmount)
	}
}

func TestCreateRejectsBadDates(t *testing.T) {
	svc, _ := newRequestTestService()

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{"check-in in the past", futureDate(-1), futureDate(5)},
		{"check-out before check-in", futureDate(10), futureDate(7)},
		{"check-out equals check-in", futureDate(7), futureDate(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			req.CheckInDate = tt.checkIn
			req.CheckOutDate = tt.checkOut

			_, err := svc.Create(context.Background(), testIdentity(), req)
			if !apperr.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRespondApproveMovesToPaymentPending(t *testing.T) {
	svc, store := newRequestTestService()
	caller := testIdentity()
	admin := adminIdentity()

	created, err := svc.Create(context.Background(), caller, validCreateRequest())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	booking, err := svc.Respond(context.Background(), admin, created.ID, &request.RespondRequest{
		Status: "approved",
	})
	if err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}

	if booking.Status != entity.StatusPaymentPending {
		t.Errorf("expected payment_pending after approve, got %s", booking.Status)
	}
	if booking.AdminResponse == nil {
		t.Fatal("expected admin response to be recorded")
	}
	if booking.AdminResponse.Message != "Request approved" {
		t.Errorf("expected default approve message, got %q", booking.AdminResponse.Message)
	}
	if booking.AdminResponse.RespondedBy != admin.UserID.String() {
		t.Errorf("expected responder %s, got %s", admin.UserID, booking.AdminResponse.RespondedBy)
	}

	if len(store.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(store.notifications))
	}
}

func TestRespondRejectIsTerminal(t *testing.T) {
	svc, _ := newRequestTestService()
	caller := testIdentity()
	admin := adminIdentity()

	created, _ := svc.Create(context.Background(), caller, validCreateRequest())

	booking, err := svc.Respond(context.Background(), admin, created.ID, &request.RespondRequest{
		Status:  "rejected",
		Message: "Fully booked for those dates",
	})
	if err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}
	if booking.Status != entity.StatusRejected {
		t.Errorf("expected rejected, got %s", booking.Status)
	}

	// No further cancellation from a terminal state
	_, err = svc.Cancel(context.Background(), caller, created.ID)
	if !apperr.IsInvalidTransition(err) {
		t.Errorf("expected invalid transition cancelling a rejected request, got %v", err)
	}
}

func TestRespondOnlyFromPending(t *testing.T) {
	svc, _ := newRequestTestService()
	admin := adminIdentity()

	created, _ := svc.Create(context.Background(), testIdentity(), validCreateRequest())

	if _, err := svc.Respond(context.Background(), admin, created.ID, &request.RespondRequest{Status: "approved"}); err != nil {
		t.Fatalf("first respond failed: %v", err)
	}

	_, err := svc.Respond(context.Background(), admin, created.ID, &request.RespondRequest{Status: "rejected"})
	if !apperr.IsInvalidTransition(err) {
		t.Errorf("expected invalid transition responding twice, got %v", err)
	}
}

func TestCancelAllowedStatuses(t *testing.T) {
	tests := []struct {
		status  entity.RequestStatus
		allowed bool
	}{
		{entity.StatusPending, true},
		{entity.StatusApproved, true},
		{entity.StatusPaymentPending, true},
		{entity.StatusPaid, false},
		{entity.StatusCompleted, false},
		{entity.StatusRejected, false},
		{entity.StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			svc, store := newRequestTestService()
			caller := testIdentity()

			created, _ := svc.Create(context.Background(), caller, validCreateRequest())
			id := uuid.MustParse(created.ID)
			store.requests[id].Status = tt.status

			booking, err := svc.Cancel(context.Background(), caller, created.ID)
			if tt.allowed {
				if err != nil {
					t.Fatalf("expected cancel to succeed from %s, got %v", tt.status, err)
				}
				if booking.Status != entity.StatusCancelled {
					t.Errorf("expected cancelled, got %s", booking.Status)
				}
			} else if !apperr.IsInvalidTransition(err) {
				t.Errorf("expected invalid transition from %s, got %v", tt.status, err)
			}
		})
	}
}

func TestSetStatusNotifiesOnlyWithNote(t *testing.T) {
	svc, store := newRequestTestService()
	admin := adminIdentity()

	created, _ := svc.Create(context.Background(), testIdentity(), validCreateRequest())

	if _, err := svc.SetStatus(context.Background(), admin, created.ID, &request.UpdateStatusRequest{
		Status: "completed",
	}); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}
	if len(store.notifications) != 0 {
		t.Errorf("expected no notification without a note, got %d", len(store.notifications))
	}

	if _, err := svc.SetStatus(context.Background(), admin, created.ID, &request.UpdateStatusRequest{
		Status: "pending",
		Note:   "Reopened after review",
	}); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}
	if len(store.notifications) != 1 {
		t.Fatalf("expected 1 notification with a note, got %d", len(store.notifications))
	}
	if store.notifications[0].Message != "Reopened after review" {
		t.Errorf("unexpected notification message %q", store.notifications[0].Message)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newRequestTestService()
	created, _ := svc.Create(context.Background(), testIdentity(), validCreateRequest())

	_, err := svc.SetStatus(context.Background(), adminIdentity(), created.ID, &request.UpdateStatusRequest{
		Status: "archived",
	})
	if !apperr.IsValidation(err) {
		t.Errorf("expected validation error for unknown status, got %v", err)
	}
}

func TestGetByIDScopedToOwner(t *testing.T) {
	svc, _ := newRequestTestService()
	owner := testIdentity()
	stranger := testIdentity()

	created, _ := svc.Create(context.Background(), owner, validCreateRequest())

	if _, err := svc.GetByID(context.Background(), owner, created.ID); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}

	_, err := svc.GetByID(context.Background(), stranger, created.ID)
	if !apperr.IsNotFound(err) {
		t.Errorf("expected not found for non-owner, got %v", err)
	}
}

func TestStaleTransitionConflicts(t *testing.T) {
	svc, store := newRequestTestService()
	caller := testIdentity()

	created, _ := svc.Create(context.Background(), caller, validCreateRequest())
	id := uuid.MustParse(created.ID)

	// Another writer moved the request since our (hypothetical) read
	store.requests[id].Version = 5

	repo := newFakeRepository(store)
	stale := copyRequest(store.requests[id])
	stale.Version = 1
	stale.Status = entity.StatusCancelled

	err := repo.Request.SaveTransition(context.Background(), stale)
	if !apperr.IsConflict(err) {
		t.Errorf("expected conflict for stale version, got %v", err)
	}
}

func TestNotificationFlow(t *testing.T) {
	svc, _ := newRequestTestService()
	caller := testIdentity()
	admin := adminIdentity()
	ctx := context.Background()

	created, _ := svc.Create(ctx, caller, validCreateRequest())

	if _, err := svc.Respond(ctx, admin, created.ID, &request.RespondRequest{Status: "approved"}); err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}

	unread, err := svc.UnreadNotifications(ctx, caller)
	if err != nil {
		t.Fatalf("UnreadNotifications returned error: %v", err)
	}
	if len(unread) != 1 {
		t.Fatalf("expected 1 unread notification, got %d", len(unread))
	}
	if unread[0].PackageTitle != "Bali Getaway" {
		t.Errorf("expected annotation with package title, got %q", unread[0].PackageTitle)
	}

	// Marking read twice stays a no-op
	for i := 0; i < 2; i++ {
		if err := svc.MarkNotificationsRead(ctx, caller, created.ID); err != nil {
			t.Fatalf("MarkNotificationsRead returned error: %v", err)
		}
	}

	unread, _ = svc.UnreadNotifications(ctx, caller)
	if len(unread) != 0 {
		t.Errorf("expected no unread notifications after marking read, got %d", len(unread))
	}
}

func TestAdminListFiltersAndStats(t *testing.T) {
	svc, store := newRequestTestService()
	ctx := context.Background()

	first, _ := svc.Create(ctx, testIdentity(), validCreateRequest())

	other := validCreateRequest()
	other.PackageTitle = "Tokyo City Lights"
	second, _ := svc.Create(ctx, testIdentity(), other)

	store.requests[uuid.MustParse(second.ID)].Status = entity.StatusPaid

	list, err := svc.AdminList(ctx, &request.AdminListRequestsQuery{
		Status: "pending", SortOrder: "desc", Page: 1, PerPage: 10,
	})
	if err != nil {
		t.Fatalf("AdminList returned error: %v", err)
	}
	if len(list.Requests) != 1 || list.Requests[0].ID != first.ID {
		t.Fatalf("expected only the pending request, got %d entries", len(list.Requests))
	}
	if list.Stats["pending"] != 1 || list.Stats["paid"] != 1 {
		t.Errorf("unexpected stats %v", list.Stats)
	}

	list, err = svc.AdminList(ctx, &request.AdminListRequestsQuery{
		Search: "tokyo", Page: 1, PerPage: 10,
	})
	if err != nil {
		t.Fatalf("AdminList returned error: %v", err)
	}
	if len(list.Requests) != 1 || list.Requests[0].ID != second.ID {
		t.Fatalf("expected title search to match one request, got %d", len(list.Requests))
	}
}
