package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const absenceRequestColumns = `ar.id, ar.user_id, ar.type, ar.start_date, ar.end_date, ar.reason, ar.status,
	ar.admin_comment, ar.approved_by_id, ar.google_calendar_event_id, ar.created_at, ar.updated_at,
	u.first_name, u.last_name, u.email`

type absenceRequestRepositoryImpl struct {
	db *database.DB
}

func NewAbsenceRequestRepository(db *database.DB) absence.AbsenceRequestRepository {
	return &absenceRequestRepositoryImpl{db: db}
}

func scanAbsenceRequest(row pgx.Row) (absence.AbsenceRequest, error) {
	var a absence.AbsenceRequest
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Type,
		&a.StartDate,
		&a.EndDate,
		&a.Reason,
		&a.Status,
		&a.AdminComment,
		&a.ApprovedByID,
		&a.GoogleCalendarEventID,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.OwnerFirstName,
		&a.OwnerLastName,
		&a.OwnerEmail,
	)
	return a, err
}

// Create implements absence.AbsenceRequestRepository.
func (r *absenceRequestRepositoryImpl) Create(ctx context.Context, req absence.AbsenceRequest) (absence.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	if req.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return absence.AbsenceRequest{}, fmt.Errorf("generate absence request id: %w", err)
		}
		req.ID = id.String()
	}

	query := `
		WITH ar AS (
			INSERT INTO absence_requests (
				id, user_id, type, start_date, end_date, reason, status, admin_comment, approved_by_id
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING *
		)
		SELECT ` + absenceRequestColumns + `
		FROM ar JOIN users u ON u.id = ar.user_id`

	created, err := scanAbsenceRequest(q.QueryRow(ctx, query,
		req.ID,
		req.UserID,
		req.Type,
		req.StartDate,
		req.EndDate,
		req.Reason,
		req.Status,
		req.AdminComment,
		req.ApprovedByID,
	))
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return absence.AbsenceRequest{}, user.ErrUserNotFound
		}
		return absence.AbsenceRequest{}, fmt.Errorf("insert absence request: %w", err)
	}
	return created, nil
}

// GetByID implements absence.AbsenceRequestRepository.
func (r *absenceRequestRepositoryImpl) GetByID(ctx context.Context, id string) (absence.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + absenceRequestColumns + `
		FROM absence_requests ar JOIN users u ON u.id = ar.user_id
		WHERE ar.id = $1`

	a, err := scanAbsenceRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return absence.AbsenceRequest{}, absence.ErrAbsenceRequestNotFound
		}
		return absence.AbsenceRequest{}, fmt.Errorf("get absence request: %w", err)
	}
	return a, nil
}

func absenceFilterWhere(filter absence.Filter) squirrel.And {
	where := squirrel.And{}
	if filter.UserID != "" {
		where = append(where, squirrel.Eq{"ar.user_id": filter.UserID})
	}
	if filter.Type != "" {
		where = append(where, squirrel.Eq{"ar.type": filter.Type})
	}
	if filter.Status != "" {
		where = append(where, squirrel.Eq{"ar.status": filter.Status})
	}
	if filter.Period != nil {
		where = append(where, periodWhere("ar", *filter.Period, filter.Match))
	}
	if filter.ActiveOwnersOnly {
		where = append(where, squirrel.Eq{"u.is_active": true})
	}
	if filter.WithoutCalendarEvent {
		where = append(where, squirrel.Eq{"ar.google_calendar_event_id": nil})
	}
	return where
}

// periodWhere compares a table's start_date/end_date against the period.
func periodWhere(alias string, p leave.Period, match leave.Match) squirrel.Sqlizer {
	start, end := alias+".start_date", alias+".end_date"
	if match == leave.MatchContained {
		return squirrel.And{
			squirrel.GtOrEq{start: p.Start},
			squirrel.LtOrEq{end: p.End},
		}
	}
	return squirrel.Or{
		squirrel.And{squirrel.GtOrEq{start: p.Start}, squirrel.LtOrEq{start: p.End}},
		squirrel.And{squirrel.GtOrEq{end: p.Start}, squirrel.LtOrEq{end: p.End}},
		squirrel.And{squirrel.LtOrEq{start: p.Start}, squirrel.GtOrEq{end: p.End}},
	}
}

// List implements absence.AbsenceRequestRepository.
func (r *absenceRequestRepositoryImpl) List(ctx context.Context, filter absence.Filter) ([]absence.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	builder := psql.Select(absenceRequestColumns).
		From("absence_requests ar").
		Join("users u ON u.id = ar.user_id").
		Where(absenceFilterWhere(filter))
	if filter.OldestFirst {
		builder = builder.OrderBy("ar.start_date ASC", "ar.created_at ASC")
	} else {
		builder = builder.OrderBy("ar.created_at DESC")
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build absence request query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list absence requests: %w", err)
	}
	defer rows.Close()

	requests := []absence.AbsenceRequest{}
	for rows.Next() {
		a, err := scanAbsenceRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan absence request: %w", err)
		}
		requests = append(requests, a)
	}
	return requests, rows.Err()
}

// Count implements absence.AbsenceRequestRepository.
func (r *absenceRequestRepositoryImpl) Count(ctx context.Context, filter absence.Filter) (int, error) {
	q := GetQuerier(ctx, r.db)

	query, args, err := psql.Select("COUNT(*)").
		From("absence_requests ar").
		Join("users u ON u.id = ar.user_id").
		Where(absenceFilterWhere(filter)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build absence request count: %w", err)
	}

	var count int
	if err := q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count absence requests: %w", err)
	}
	return count, nil
}

// CountByStatus implements absence.AbsenceRequestRepository.
func (r *absenceRequestRepositoryImpl) CountByStatus(ctx context.Context, userID string) (map[absence.Status]int, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT status, COUNT(*)
		FROM absence_requests
		WHERE user_id = $1
		GROUP BY status`, userID)
	if err != nil {
		return nil, fmt.Errorf("count absence requests by status: %w", err)
	}
	defer rows.Close()

	counts := map[absence.Status]int{}
	for rows.Next() {
		var status absence.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// Update implements absence.AbsenceRequestRepository.
func (r *absenceRequestRepositoryImpl) Update(ctx context.Context, req absence.AbsenceRequest) (absence.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH ar AS (
			UPDATE absence_requests
			SET type = $1, start_date = $2, end_date = $3, reason = $4, status = $5,
				admin_comment = $6, approved_by_id = $7, updated_at = NOW()
			WHERE id = $8
			RETURNING *
		)
		SELECT ` + absenceRequestColumns + `
		FROM ar JOIN users u ON u.id = ar.user_id`

	updated, err := scanAbsenceRequest(q.QueryRow(ctx, query,
		req.Type,
		req.StartDate,
		req.EndDate,
		req.Reason,
		req.Status,
		req.AdminComment,
		req.ApprovedByID,
		req.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return absence.AbsenceRequest{}, absence.ErrAbsenceRequestNotFound
		}
		return absence.AbsenceRequest{}, fmt.Errorf("update absence request: %w", err)
	}
	return updated, nil
}

// SetCalendarEventID implements absence.AbsenceRequestRepository.
func (r *absenceRequestRepositoryImpl) SetCalendarEventID(ctx context.Context, id string, eventID *string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE absence_requests
		SET google_calendar_event_id = $1, updated_at = NOW()
		WHERE id = $2`, eventID, id)
	if err != nil {
		return fmt.Errorf("set calendar event id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return absence.ErrAbsenceRequestNotFound
	}
	return nil
}

// Delete implements absence.AbsenceRequestRepository.
func (r *absenceRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM absence_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete absence request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return absence.ErrAbsenceRequestNotFound
	}
	return nil
}
