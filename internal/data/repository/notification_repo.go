package repository

import (
	"context"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UnreadNotification is a notification annotated with its parent request.
type UnreadNotification struct {
	RequestID    uuid.UUID
	PackageTitle string
	Status       entity.RequestStatus
	Message      string
	CreatedAt    time.Time
}

type NotificationRepository interface {
	FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]*entity.Notification, error)
	FindUnreadByUser(ctx context.Context, userID uuid.UUID) ([]*UnreadNotification, error)
	CountUnreadByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkAllRead marks every notification of the request as read. Calling it
	// again once all are read is a no-op.
	MarkAllRead(ctx context.Context, requestID uuid.UUID) error
}

type notificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewNotificationRepository(db database.PgxIface, log *zap.Logger) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "notification")),
	}
}

func (r *notificationRepository) FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]*entity.Notification, error) {
	query := `
		SELECT id, request_id, seq, message, read, created_at
		FROM request_notifications
		WHERE request_id = $1
		ORDER BY seq
	`

	rows, err := r.db.Query(ctx, query, requestID)
	if err != nil {
		r.log.Error("Failed to find notifications by request ID",
			zap.Error(err),
			zap.String("request_id", requestID.String()),
		)
		return nil, apperr.Wrap(apperr.KindStorage, "find notifications by request ID", err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		var notification entity.Notification
		err := rows.Scan(
			&notification.ID,
			&notification.RequestID,
			&notification.Seq,
			&notification.Message,
			&notification.Read,
			&notification.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan notification row", zap.Error(err))
			return nil, apperr.Wrap(apperr.KindStorage, "scan notification row", err)
		}
		notifications = append(notifications, &notification)
	}

	return notifications, nil
}

func (r *notificationRepository) FindUnreadByUser(ctx context.Context, userID uuid.UUID) ([]*UnreadNotification, error) {
	query := `
		SELECT n.request_id, b.package_title, b.status, n.message, n.created_at
		FROM request_notifications n
		JOIN booking_requests b ON b.id = n.request_id
		WHERE b.user_id = $1 AND n.read = FALSE
		ORDER BY n.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find unread notifications",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, apperr.Wrap(apperr.KindStorage, "find unread notifications", err)
	}
	defer rows.Close()

	var notifications []*UnreadNotification
	for rows.Next() {
		var notification UnreadNotification
		err := rows.Scan(
			&notification.RequestID,
			&notification.PackageTitle,
			&notification.Status,
			&notification.Message,
			&notification.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan unread notification row", zap.Error(err))
			return nil, apperr.Wrap(apperr.KindStorage, "scan unread notification row", err)
		}
		notifications = append(notifications, &notification)
	}

	return notifications, nil
}

func (r *notificationRepository) CountUnreadByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM request_notifications n
		JOIN booking_requests b ON b.id = n.request_id
		WHERE b.user_id = $1 AND n.read = FALSE
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count unread notifications",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, apperr.Wrap(apperr.KindStorage, "count unread notifications", err)
	}

	return count, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, requestID uuid.UUID) error {
	query := `UPDATE request_notifications SET read = TRUE WHERE request_id = $1 AND read = FALSE`

	_, err := r.db.Exec(ctx, query, requestID)
	if err != nil {
		r.log.Error("Failed to mark notifications read",
			zap.Error(err),
			zap.String("request_id", requestID.String()),
		)
		return apperr.Wrap(apperr.KindStorage, "mark notifications read", err)
	}

	return nil
}
