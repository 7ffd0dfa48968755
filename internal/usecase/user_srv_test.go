package usecase

import (
	"context"
	"testing"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestDeleteOwnAccountForbidden(t *testing.T) {
	store := newFakeStore()
	svc := NewUserService(newFakeRepository(store), zap.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, &request.CreateUserRequest{
		Name:     "Site Admin",
		Email:    "admin@example.com",
		Password: "secret123",
		Role:     "admin",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	caller := utils.Identity{UserID: uuid.MustParse(created.ID), Role: "admin"}

	err = svc.Delete(ctx, caller, created.ID)
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("expected forbidden deleting own account, got %v", err)
	}
	if len(store.users) != 1 {
		t.Errorf("expected account to survive, got %d users", len(store.users))
	}
}

func TestDeleteOtherAccount(t *testing.T) {
	store := newFakeStore()
	svc := NewUserService(newFakeRepository(store), zap.NewNop())
	ctx := context.Background()

	target, err := svc.Create(ctx, &request.CreateUserRequest{
		Name:     "Ayu Lestari",
		Email:    "ayu@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	admin := utils.Identity{UserID: uuid.New(), Role: "admin"}
	if err := svc.Delete(ctx, admin, target.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(store.users) != 0 {
		t.Errorf("expected account removed, got %d users", len(store.users))
	}
}

func TestUpdateUserPartialFields(t *testing.T) {
	store := newFakeStore()
	svc := NewUserService(newFakeRepository(store), zap.NewNop())
	ctx := context.Background()

	created, _ := svc.Create(ctx, &request.CreateUserRequest{
		Name:     "Ayu Lestari",
		Email:    "ayu@example.com",
		Password: "secret123",
	})

	role := "admin"
	updated, err := svc.Update(ctx, created.ID, &request.UpdateUserRequest{Role: &role})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Role != entity.RoleAdmin {
		t.Errorf("expected role admin, got %s", updated.Role)
	}
	if updated.Name != "Ayu Lestari" || updated.Email != "ayu@example.com" {
		t.Errorf("untouched fields changed: %s %s", updated.Name, updated.Email)
	}
}

func TestUpdateUserRejectsTakenEmail(t *testing.T) {
	store := newFakeStore()
	svc := NewUserService(newFakeRepository(store), zap.NewNop())
	ctx := context.Background()

	_, _ = svc.Create(ctx, &request.CreateUserRequest{
		Name: "Ayu Lestari", Email: "ayu@example.com", Password: "secret123",
	})
	other, _ := svc.Create(ctx, &request.CreateUserRequest{
		Name: "Budi Santoso", Email: "budi@example.com", Password: "secret123",
	})

	taken := "ayu@example.com"
	_, err := svc.Update(ctx, other.ID, &request.UpdateUserRequest{Email: &taken})
	if !apperr.IsConflict(err) {
		t.Errorf("expected conflict for taken email, got %v", err)
	}
}
