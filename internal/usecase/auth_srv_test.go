package usecase

import (
	"context"
	"errors"
	"testing"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/token"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

// fakeGoogleVerifier returns canned claims without hitting Google.
type fakeGoogleVerifier struct {
	claims *token.Claims
	err    error
}

func (v *fakeGoogleVerifier) Verify(tokenString string) (*token.Claims, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func newAuthTestService(store *fakeStore, google token.Verifier) AuthService {
	if google == nil {
		google = &fakeGoogleVerifier{err: errors.New("no google verifier configured")}
	}
	config := &utils.Config{
		Admin: utils.AdminConfig{
			Name:     "Administrator",
			Email:    "admin@example.com",
			Password: "changeme123",
		},
	}
	return NewAuthService(newFakeRepository(store), token.NewJWT("test-secret", 1), google, config, zap.NewNop())
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeStore()
	svc := newAuthTestService(store, nil)
	ctx := context.Background()

	auth, err := svc.Register(ctx, &request.RegisterRequest{
		Name:     "Ayu Lestari",
		Email:    "ayu@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if auth.Token == "" {
		t.Error("expected a token after registration")
	}
	if auth.User.Role != entity.RoleUser {
		t.Errorf("expected user role, got %s", auth.User.Role)
	}

	login, err := svc.Login(ctx, &request.LoginRequest{
		Email:    "ayu@example.com",
		Password: "secret123",
	}, "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if login.User.Email != "ayu@example.com" {
		t.Errorf("unexpected user %s", login.User.Email)
	}

	if len(store.logins) != 1 {
		t.Errorf("expected login to be recorded, got %d entries", len(store.logins))
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	store := newFakeStore()
	svc := newAuthTestService(store, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &request.RegisterRequest{
		Name:     "Ayu Lestari",
		Email:    "ayu@example.com",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, err := svc.Login(ctx, &request.LoginRequest{
		Email:    "ayu@example.com",
		Password: "wrong-password",
	}, "10.0.0.1", "test-agent")
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Errorf("expected unauthorized, got %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := newAuthTestService(store, nil)
	ctx := context.Background()

	req := &request.RegisterRequest{
		Name:     "Ayu Lestari",
		Email:    "ayu@example.com",
		Password: "secret123",
	}

	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(ctx, req)
	if !apperr.IsConflict(err) {
		t.Errorf("expected conflict for duplicate email, got %v", err)
	}
}

func TestGoogleLoginProvisionsOnFirstSight(t *testing.T) {
	store := newFakeStore()
	google := &fakeGoogleVerifier{claims: &token.Claims{
		UserID: "google-sub-1",
		Role:   "user",
		Email:  "budi@example.com",
		Name:   "Budi Santoso",
	}}
	svc := newAuthTestService(store, google)
	ctx := context.Background()

	auth, err := svc.GoogleLogin(ctx, &request.GoogleLoginRequest{IDToken: "fake-id-token"}, "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("GoogleLogin returned error: %v", err)
	}
	if auth.User.Provider != entity.ProviderGoogle {
		t.Errorf("expected google provider, got %s", auth.User.Provider)
	}

	// Second login reuses the same account
	again, err := svc.GoogleLogin(ctx, &request.GoogleLoginRequest{IDToken: "fake-id-token"}, "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("second GoogleLogin returned error: %v", err)
	}
	if again.User.ID != auth.User.ID {
		t.Errorf("expected same account, got %s and %s", auth.User.ID, again.User.ID)
	}
	if len(store.users) != 1 {
		t.Errorf("expected 1 user, got %d", len(store.users))
	}
}

func TestGoogleLoginRejectsBadToken(t *testing.T) {
	store := newFakeStore()
	google := &fakeGoogleVerifier{err: errors.New("signature invalid")}
	svc := newAuthTestService(store, google)

	_, err := svc.GoogleLogin(context.Background(), &request.GoogleLoginRequest{IDToken: "tampered"}, "10.0.0.1", "test-agent")
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Errorf("expected unauthorized, got %v", err)
	}
}

func TestEnsureAdminIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := newAuthTestService(store, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := svc.EnsureAdmin(ctx); err != nil {
			t.Fatalf("EnsureAdmin returned error: %v", err)
		}
	}

	if len(store.users) != 1 {
		t.Fatalf("expected exactly 1 admin account, got %d users", len(store.users))
	}
	for _, user := range store.users {
		if user.Role != entity.RoleAdmin {
			t.Errorf("expected admin role, got %s", user.Role)
		}
	}
}
