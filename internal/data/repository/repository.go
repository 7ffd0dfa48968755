package repository

import (
	"travel-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Request      RequestRepository
	Notification NotificationRepository
	LoginLog     LoginLogRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Request:      NewRequestRepository(db, log),
		Notification: NewNotificationRepository(db, log),
		LoginLog:     NewLoginLogRepository(db, log),
	}
}
