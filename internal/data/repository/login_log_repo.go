package repository

import (
	"context"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/database"

	"go.uber.org/zap"
)

// LoginLogWithUser joins a login record with the account it belongs to.
type LoginLogWithUser struct {
	entity.LoginLog
	UserName  string
	UserEmail string
}

type LoginLogRepository interface {
	Create(ctx context.Context, log *entity.LoginLog) error
	FindRecent(ctx context.Context, limit, offset int) ([]*LoginLogWithUser, error)
}

type loginLogRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLoginLogRepository(db database.PgxIface, log *zap.Logger) LoginLogRepository {
	return &loginLogRepository{
		db:  db,
		log: log.With(zap.String("repository", "login_log")),
	}
}

func (r *loginLogRepository) Create(ctx context.Context, log *entity.LoginLog) error {
	query := `
		INSERT INTO login_logs (id, user_id, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		log.ID,
		log.UserID,
		log.IPAddress,
		log.UserAgent,
		log.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create login log",
			zap.Error(err),
			zap.String("user_id", log.UserID.String()),
		)
		return apperr.Wrap(apperr.KindStorage, "create login log", err)
	}

	return nil
}

func (r *loginLogRepository) FindRecent(ctx context.Context, limit, offset int) ([]*LoginLogWithUser, error) {
	query := `
		SELECT l.id, l.user_id, l.ip_address, l.user_agent, l.created_at,
		       u.name, u.email
		FROM login_logs l
		JOIN users u ON u.id = l.user_id
		ORDER BY l.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list login logs", zap.Error(err))
		return nil, apperr.Wrap(apperr.KindStorage, "list login logs", err)
	}
	defer rows.Close()

	var logs []*LoginLogWithUser
	for rows.Next() {
		var log LoginLogWithUser
		err := rows.Scan(
			&log.ID,
			&log.UserID,
			&log.IPAddress,
			&log.UserAgent,
			&log.CreatedAt,
			&log.UserName,
			&log.UserEmail,
		)
		if err != nil {
			r.log.Error("Failed to scan login log row", zap.Error(err))
			return nil, apperr.Wrap(apperr.KindStorage, "scan login log row", err)
		}
		logs = append(logs, &log)
	}

	return logs, nil
}
