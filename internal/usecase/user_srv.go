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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService is the admin-facing account management surface.
type UserService interface {
	List(ctx context.Context) ([]response.UserResponse, error)
	Get(ctx context.Context, userID string) (*response.UserResponse, error)
	Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	Update(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	Delete(ctx context.Context, caller utils.Identity, userID string) error
	LoginLogs(ctx context.Context, page *request.PaginatedRequest) ([]response.LoginLogResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) List(ctx context.Context) ([]response.UserResponse, error) {
	users, err := s.repo.User.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]response.UserResponse, len(users))
	for i, user := range users {
		responses[i] = response.UserToResponse(user)
	}

	return responses, nil
}

func (s *userService) Get(ctx context.Context, userID string) (*response.UserResponse, error) {
	user, err := s.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, apperr.Newf(apperr.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.KindConflict, "email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "hash password", err)
	}

	role := entity.RoleUser
	if req.Role == string(entity.RoleAdmin) {
		role = entity.RoleAdmin
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: &hash,
		Provider:     entity.ProviderLocal,
		Role:         role,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User created by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update user validation failed", zap.Any("errors", errs))
		return nil, apperr.Newf(apperr.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		existing, err := s.repo.User.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperr.New(apperr.KindConflict, "email already registered")
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindStorage, "hash password", err)
		}
		user.PasswordHash = &hash
	}
	if req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}

	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User updated by admin", zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, caller utils.Identity, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return apperr.Newf(apperr.KindValidation, "invalid user ID %s", userID)
	}

	if id == caller.UserID {
		return apperr.New(apperr.KindForbidden, "you cannot delete your own account")
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("User deleted by admin",
		zap.String("user_id", id.String()),
		zap.String("admin_id", caller.UserID.String()),
	)

	return nil
}

func (s *userService) LoginLogs(ctx context.Context, page *request.PaginatedRequest) ([]response.LoginLogResponse, error) {
	logs, err := s.repo.LoginLog.FindRecent(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	responses := make([]response.LoginLogResponse, len(logs))
	for i, log := range logs {
		responses[i] = response.LoginLogToResponse(log)
	}

	return responses, nil
}

func (s *userService) findByID(ctx context.Context, userID string) (*entity.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperr.Newf(apperr.KindValidation, "invalid user ID %s", userID)
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Newf(apperr.KindNotFound, "user %s not found", userID)
	}

	return user, nil
}
