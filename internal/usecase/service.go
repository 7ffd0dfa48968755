package usecase

import (
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/token"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

// Service aggregates every application service behind one constructor.
type Service struct {
	Auth      AuthService
	Request   RequestService
	Purchase  PurchaseService
	Dashboard DashboardService
	User      UserService
}

func NewService(repo *repository.Repository, jwt *token.JWT, google token.Verifier, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:      NewAuthService(repo, jwt, google, config, log),
		Request:   NewRequestService(repo, log),
		Purchase:  NewPurchaseService(repo, log),
		Dashboard: NewDashboardService(repo, log),
		User:      NewUserService(repo, log),
	}
}
