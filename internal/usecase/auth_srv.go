package usecase

import (
	"context"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/token"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, ip, userAgent string) (*response.AuthResponse, error)
	GoogleLogin(ctx context.Context, req *request.GoogleLoginRequest, ip, userAgent string) (*response.AuthResponse, error)
	Me(ctx context.Context, caller utils.Identity) (*response.UserResponse, error)
	EnsureAdmin(ctx context.Context) error
}

type authService struct {
	repo   *repository.Repository
	jwt    *token.JWT
	google token.Verifier
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, jwt *token.JWT, google token.Verifier, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		jwt:    jwt,
		google: google,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
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
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperr.Wrap(apperr.KindStorage, "hash password", err)
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
		Role:         entity.RoleUser,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	return s.issueFor(user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, ip, userAgent string) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, apperr.Newf(apperr.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid email or password")
	}

	if !utils.CheckPasswordHash(req.Password, *user.PasswordHash) {
		s.log.Warn("Login failed", zap.String("email", req.Email))
		return nil, apperr.New(apperr.KindUnauthorized, "invalid email or password")
	}

	s.recordLogin(ctx, user.ID, ip, userAgent)

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("ip", ip),
	)

	return s.issueFor(user)
}

// GoogleLogin verifies a Google-issued ID token, provisions the account on
// first sight, and exchanges it for a backend access token. Clients hold
// backend tokens only.
func (s *authService) GoogleLogin(ctx context.Context, req *request.GoogleLoginRequest, ip, userAgent string) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Newf(apperr.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	claims, err := s.google.Verify(req.IDToken)
	if err != nil {
		s.log.Warn("Google token verification failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.KindUnauthorized, "invalid Google token", err)
	}

	user, err := s.repo.User.FindByEmail(ctx, claims.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		name := claims.Name
		if name == "" {
			name = claims.Email
		}

		now := time.Now()
		user = &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name:     name,
			Email:    claims.Email,
			Provider: entity.ProviderGoogle,
			Role:     entity.RoleUser,
		}

		if err := s.repo.User.Create(ctx, user); err != nil {
			return nil, err
		}

		s.log.Info("User provisioned via Google",
			zap.String("user_id", user.ID.String()),
			zap.String("email", user.Email),
		)
	}

	s.recordLogin(ctx, user.ID, ip, userAgent)

	return s.issueFor(user)
}

func (s *authService) Me(ctx context.Context, caller utils.Identity) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.New(apperr.KindNotFound, "user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// EnsureAdmin creates the configured admin account if it does not exist yet.
// Called once at startup.
func (s *authService) EnsureAdmin(ctx context.Context) error {
	if s.config.Admin.Email == "" {
		return nil
	}

	existing, err := s.repo.User.FindByEmail(ctx, s.config.Admin.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := utils.HashPassword(s.config.Admin.Password)
	if err != nil {
		return apperr.Wrap(apperr.KindStorage, "hash admin password", err)
	}

	now := time.Now()
	admin := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         s.config.Admin.Name,
		Email:        s.config.Admin.Email,
		PasswordHash: &hash,
		Provider:     entity.ProviderLocal,
		Role:         entity.RoleAdmin,
	}

	if err := s.repo.User.Create(ctx, admin); err != nil {
		return err
	}

	s.log.Info("Admin account created", zap.String("email", admin.Email))
	return nil
}

func (s *authService) issueFor(user *entity.User) (*response.AuthResponse, error) {
	signed, expiresAt, err := s.jwt.Issue(user.ID, string(user.Role))
	if err != nil {
		s.log.Error("Failed to issue access token", zap.Error(err))
		return nil, apperr.Wrap(apperr.KindStorage, "issue access token", err)
	}

	return &response.AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      response.UserToResponse(user),
	}, nil
}

// recordLogin is best effort. A failed audit write never blocks a login.
func (s *authService) recordLogin(ctx context.Context, userID uuid.UUID, ip, userAgent string) {
	log := &entity.LoginLog{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    userID,
		IPAddress: ip,
		UserAgent: userAgent,
	}

	if err := s.repo.LoginLog.Create(ctx, log); err != nil {
		s.log.Warn("Failed to record login", zap.Error(err), zap.String("user_id", userID.String()))
	}
}
