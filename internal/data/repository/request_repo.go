package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// RequestFilter narrows request queries. Zero values are ignored.
type RequestFilter struct {
	UserID      *uuid.UUID
	Statuses    []entity.RequestStatus
	TitleSearch string
	CheckInFrom *time.Time
	SortBy      string // created_at, updated_at, check_in_date, paid_at
	SortAsc     bool
	Limit       int
	Offset      int
}

type RequestRepository interface {
	Create(ctx context.Context, request *entity.BookingRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingRequest, error)
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.BookingRequest, error)
	Find(ctx context.Context, filter RequestFilter) ([]*entity.BookingRequest, error)
	Count(ctx context.Context, filter RequestFilter) (int64, error)
	CountByStatus(ctx context.Context, userID *uuid.UUID) (map[entity.RequestStatus]int64, error)
	SumPaidAmountByUser(ctx context.Context, userID uuid.UUID) (float64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// SaveTransition persists a status transition and its notifications as a
	// single transaction. The write only lands if request.Version still
	// matches the stored row; the version is bumped on success.
	SaveTransition(ctx context.Context, request *entity.BookingRequest, notifications ...*entity.Notification) error
}

type requestRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRequestRepository(db database.PgxIface, log *zap.Logger) RequestRepository {
	return &requestRepository{
		db:  db,
		log: log.With(zap.String("repository", "request")),
	}
}

const requestColumns = `
	id, user_id, package_id, package_title, package_price, guests,
	check_in_date, check_out_date, note, total_amount, status,
	admin_message, responded_by, responded_at,
	payment_amount, payment_currency, payment_id, payment_method, paid_at,
	version, created_at, updated_at`

func scanRequest(row pgx.Row) (*entity.BookingRequest, error) {
	var (
		request entity.BookingRequest

		adminMessage *string
		respondedBy  *uuid.UUID
		respondedAt  *time.Time

		paymentAmount   *float64
		paymentCurrency *string
		paymentID       *string
		paymentMethod   *string
		paidAt          *time.Time
	)

	err := row.Scan(
		&request.ID,
		&request.UserID,
		&request.PackageID,
		&request.PackageTitle,
		&request.PackagePrice,
		&request.Guests,
		&request.CheckInDate,
		&request.CheckOutDate,
		&request.Note,
		&request.TotalAmount,
		&request.Status,
		&adminMessage,
		&respondedBy,
		&respondedAt,
		&paymentAmount,
		&paymentCurrency,
		&paymentID,
		&paymentMethod,
		&paidAt,
		&request.Version,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if respondedBy != nil && respondedAt != nil {
		response := entity.AdminResponse{
			RespondedBy: *respondedBy,
			RespondedAt: *respondedAt,
		}
		if adminMessage != nil {
			response.Message = *adminMessage
		}
		request.AdminResponse = &response
	}

	if paidAt != nil {
		payment := entity.PaymentInfo{PaidAt: *paidAt}
		if paymentAmount != nil {
			payment.Amount = *paymentAmount
		}
		if paymentCurrency != nil {
			payment.Currency = *paymentCurrency
		}
		if paymentID != nil {
			payment.PaymentID = *paymentID
		}
		if paymentMethod != nil {
			payment.PaymentMethod = *paymentMethod
		}
		request.Payment = &payment
	}

	return &request, nil
}

func (r *requestRepository) Create(ctx context.Context, request *entity.BookingRequest) error {
	query := `
		INSERT INTO booking_requests (
			id, user_id, package_id, package_title, package_price, guests,
			check_in_date, check_out_date, note, total_amount, status,
			version, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		request.ID,
		request.UserID,
		request.PackageID,
		request.PackageTitle,
		request.PackagePrice,
		request.Guests,
		request.CheckInDate,
		request.CheckOutDate,
		request.Note,
		request.TotalAmount,
		request.Status,
		request.Version,
		request.CreatedAt,
		request.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking request",
			zap.Error(err),
			zap.String("user_id", request.UserID.String()),
			zap.String("package_title", request.PackageTitle),
		)
		return apperr.Wrap(apperr.KindStorage, "create booking request", err)
	}

	return nil
}

func (r *requestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM booking_requests WHERE id = $1`

	request, err := scanRequest(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find request by ID",
			zap.Error(err),
			zap.String("request_id", id.String()),
		)
		return nil, apperr.Wrap(apperr.KindStorage, "find request by ID", err)
	}

	return request, nil
}

func (r *requestRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.BookingRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM booking_requests WHERE id = $1 AND user_id = $2`

	request, err := scanRequest(r.db.QueryRow(ctx, query, id, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find request by ID and user",
			zap.Error(err),
			zap.String("request_id", id.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, apperr.Wrap(apperr.KindStorage, "find request by ID and user", err)
	}

	return request, nil
}

// sortColumns whitelists sortable columns so filter input never reaches SQL
// unescaped.
var sortColumns = map[string]string{
	"created_at":    "created_at",
	"updated_at":    "updated_at",
	"check_in_date": "check_in_date",
	"paid_at":       "paid_at",
}

func buildRequestWhere(filter RequestFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id = $%d", len(args)))
	}

	if len(filter.Statuses) == 1 {
		args = append(args, filter.Statuses[0])
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	} else if len(filter.Statuses) > 1 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ", ")))
	}

	if filter.TitleSearch != "" {
		args = append(args, "%"+filter.TitleSearch+"%")
		clauses = append(clauses, fmt.Sprintf("package_title ILIKE $%d", len(args)))
	}

	if filter.CheckInFrom != nil {
		args = append(args, *filter.CheckInFrom)
		clauses = append(clauses, fmt.Sprintf("check_in_date >= $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *requestRepository) Find(ctx context.Context, filter RequestFilter) ([]*entity.BookingRequest, error) {
	where, args := buildRequestWhere(filter)

	sortColumn, ok := sortColumns[filter.SortBy]
	if !ok {
		sortColumn = "created_at"
	}
	direction := "DESC"
	if filter.SortAsc {
		direction = "ASC"
	}

	query := `SELECT ` + requestColumns + ` FROM booking_requests` + where +
		fmt.Sprintf(" ORDER BY %s %s NULLS LAST", sortColumn, direction)

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find booking requests", zap.Error(err))
		return nil, apperr.Wrap(apperr.KindStorage, "find booking requests", err)
	}
	defer rows.Close()

	var requests []*entity.BookingRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			r.log.Error("Failed to scan request row", zap.Error(err))
			return nil, apperr.Wrap(apperr.KindStorage, "scan request row", err)
		}
		requests = append(requests, request)
	}

	return requests, nil
}

func (r *requestRepository) Count(ctx context.Context, filter RequestFilter) (int64, error) {
	where, args := buildRequestWhere(filter)
	query := `SELECT COUNT(*) FROM booking_requests` + where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count booking requests", zap.Error(err))
		return 0, apperr.Wrap(apperr.KindStorage, "count booking requests", err)
	}

	return count, nil
}

func (r *requestRepository) CountByStatus(ctx context.Context, userID *uuid.UUID) (map[entity.RequestStatus]int64, error) {
	query := `SELECT status, COUNT(*) FROM booking_requests`
	var args []any
	if userID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *userID)
	}
	query += ` GROUP BY status`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to count requests by status", zap.Error(err))
		return nil, apperr.Wrap(apperr.KindStorage, "count requests by status", err)
	}
	defer rows.Close()

	counts := make(map[entity.RequestStatus]int64)
	for rows.Next() {
		var (
			status entity.RequestStatus
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, apperr.Wrap(apperr.KindStorage, "scan status count row", err)
		}
		counts[status] = count
	}

	return counts, nil
}

func (r *requestRepository) SumPaidAmountByUser(ctx context.Context, userID uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(SUM(payment_amount), 0)
		FROM booking_requests
		WHERE user_id = $1 AND status IN ('paid', 'completed')
	`

	var total float64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		r.log.Error("Failed to sum paid amount",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, apperr.Wrap(apperr.KindStorage, "sum paid amount", err)
	}

	return total, nil
}

func (r *requestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM booking_requests WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete request",
			zap.Error(err),
			zap.String("request_id", id.String()),
		)
		return apperr.Wrap(apperr.KindStorage, "delete request", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.Newf(apperr.KindNotFound, "request %s not found", id.String())
	}

	r.log.Info("Booking request deleted", zap.String("request_id", id.String()))
	return nil
}

func (r *requestRepository) SaveTransition(ctx context.Context, request *entity.BookingRequest, notifications ...*entity.Notification) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperr.Wrap(apperr.KindStorage, "begin transition", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE booking_requests
		SET status = $3,
		    admin_message = $4, responded_by = $5, responded_at = $6,
		    payment_amount = $7, payment_currency = $8, payment_id = $9,
		    payment_method = $10, paid_at = $11,
		    version = version + 1, updated_at = $12
		WHERE id = $1 AND version = $2
	`

	var (
		adminMessage *string
		respondedBy  *uuid.UUID
		respondedAt  *time.Time

		paymentAmount   *float64
		paymentCurrency *string
		paymentID       *string
		paymentMethod   *string
		paidAt          *time.Time
	)
	if request.AdminResponse != nil {
		adminMessage = &request.AdminResponse.Message
		respondedBy = &request.AdminResponse.RespondedBy
		respondedAt = &request.AdminResponse.RespondedAt
	}
	if request.Payment != nil {
		paymentAmount = &request.Payment.Amount
		paymentCurrency = &request.Payment.Currency
		paymentID = &request.Payment.PaymentID
		paymentMethod = &request.Payment.PaymentMethod
		paidAt = &request.Payment.PaidAt
	}

	now := time.Now()
	result, err := tx.Exec(ctx, query,
		request.ID,
		request.Version,
		request.Status,
		adminMessage, respondedBy, respondedAt,
		paymentAmount, paymentCurrency, paymentID, paymentMethod, paidAt,
		now,
	)
	if err != nil {
		r.log.Error("Failed to save transition",
			zap.Error(err),
			zap.String("request_id", request.ID.String()),
			zap.String("status", request.Status.String()),
		)
		return apperr.Wrap(apperr.KindStorage, "save transition", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.Newf(apperr.KindConflict,
			"request %s was modified concurrently", request.ID.String())
	}

	for _, notification := range notifications {
		insert := `
			INSERT INTO request_notifications (id, request_id, seq, message, read, created_at)
			VALUES ($1, $2,
				(SELECT COALESCE(MAX(seq), 0) + 1 FROM request_notifications WHERE request_id = $2),
				$3, $4, $5)
		`
		_, err := tx.Exec(ctx, insert,
			notification.ID,
			notification.RequestID,
			notification.Message,
			notification.Read,
			notification.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to append notification",
				zap.Error(err),
				zap.String("request_id", request.ID.String()),
			)
			return apperr.Wrap(apperr.KindStorage, "append notification", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.Wrap(apperr.KindStorage, "commit transition", err)
	}

	request.Version++
	request.UpdatedAt = now
	return nil
}
