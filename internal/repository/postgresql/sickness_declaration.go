package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/sickness"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const sicknessDeclarationColumns = `sd.id, sd.user_id, sd.start_date, sd.end_date, sd.description,
	sd.document_filename, sd.document_path, sd.email_sent, sd.viewed_by_admin, sd.created_at, sd.updated_at,
	u.first_name, u.last_name, u.email`

type sicknessDeclarationRepositoryImpl struct {
	db *database.DB
}

func NewSicknessDeclarationRepository(db *database.DB) sickness.SicknessDeclarationRepository {
	return &sicknessDeclarationRepositoryImpl{db: db}
}

func scanSicknessDeclaration(row pgx.Row) (sickness.SicknessDeclaration, error) {
	var d sickness.SicknessDeclaration
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.StartDate,
		&d.EndDate,
		&d.Description,
		&d.DocumentFilename,
		&d.DocumentPath,
		&d.EmailSent,
		&d.ViewedByAdmin,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.OwnerFirstName,
		&d.OwnerLastName,
		&d.OwnerEmail,
	)
	return d, err
}

// Create implements sickness.SicknessDeclarationRepository.
func (r *sicknessDeclarationRepositoryImpl) Create(ctx context.Context, d sickness.SicknessDeclaration) (sickness.SicknessDeclaration, error) {
	q := GetQuerier(ctx, r.db)

	if d.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return sickness.SicknessDeclaration{}, fmt.Errorf("generate declaration id: %w", err)
		}
		d.ID = id.String()
	}

	query := `
		WITH sd AS (
			INSERT INTO sickness_declarations (
				id, user_id, start_date, end_date, description, document_filename, document_path
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)
		SELECT ` + sicknessDeclarationColumns + `
		FROM sd JOIN users u ON u.id = sd.user_id`

	created, err := scanSicknessDeclaration(q.QueryRow(ctx, query,
		d.ID,
		d.UserID,
		d.StartDate,
		d.EndDate,
		d.Description,
		d.DocumentFilename,
		d.DocumentPath,
	))
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return sickness.SicknessDeclaration{}, user.ErrUserNotFound
		}
		return sickness.SicknessDeclaration{}, fmt.Errorf("insert sickness declaration: %w", err)
	}
	return created, nil
}

// GetByID implements sickness.SicknessDeclarationRepository.
func (r *sicknessDeclarationRepositoryImpl) GetByID(ctx context.Context, id string) (sickness.SicknessDeclaration, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sicknessDeclarationColumns + `
		FROM sickness_declarations sd JOIN users u ON u.id = sd.user_id
		WHERE sd.id = $1`

	d, err := scanSicknessDeclaration(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sickness.SicknessDeclaration{}, sickness.ErrDeclarationNotFound
		}
		return sickness.SicknessDeclaration{}, fmt.Errorf("get sickness declaration: %w", err)
	}
	return d, nil
}

func sicknessFilterWhere(filter sickness.Filter) squirrel.And {
	where := squirrel.And{}
	if filter.UserID != "" {
		where = append(where, squirrel.Eq{"sd.user_id": filter.UserID})
	}
	if filter.Period != nil {
		where = append(where, periodWhere("sd", *filter.Period, filter.Match))
	}
	if filter.ActiveOwnersOnly {
		where = append(where, squirrel.Eq{"u.is_active": true})
	}
	if filter.Unviewed {
		where = append(where, squirrel.Eq{"sd.viewed_by_admin": false})
	}
	return where
}

// List implements sickness.SicknessDeclarationRepository.
func (r *sicknessDeclarationRepositoryImpl) List(ctx context.Context, filter sickness.Filter) ([]sickness.SicknessDeclaration, error) {
	q := GetQuerier(ctx, r.db)

	builder := psql.Select(sicknessDeclarationColumns).
		From("sickness_declarations sd").
		Join("users u ON u.id = sd.user_id").
		Where(sicknessFilterWhere(filter))
	if filter.OldestFirst {
		builder = builder.OrderBy("sd.start_date ASC", "sd.created_at ASC")
	} else {
		builder = builder.OrderBy("sd.created_at DESC")
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sickness declaration query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sickness declarations: %w", err)
	}
	defer rows.Close()

	declarations := []sickness.SicknessDeclaration{}
	for rows.Next() {
		d, err := scanSicknessDeclaration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sickness declaration: %w", err)
		}
		declarations = append(declarations, d)
	}
	return declarations, rows.Err()
}

// Count implements sickness.SicknessDeclarationRepository.
func (r *sicknessDeclarationRepositoryImpl) Count(ctx context.Context, filter sickness.Filter) (int, error) {
	q := GetQuerier(ctx, r.db)

	query, args, err := psql.Select("COUNT(*)").
		From("sickness_declarations sd").
		Join("users u ON u.id = sd.user_id").
		Where(sicknessFilterWhere(filter)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sickness declaration count: %w", err)
	}

	var count int
	if err := q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count sickness declarations: %w", err)
	}
	return count, nil
}

// MarkEmailSent implements sickness.SicknessDeclarationRepository.
func (r *sicknessDeclarationRepositoryImpl) MarkEmailSent(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE sickness_declarations
		SET email_sent = TRUE, updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark declaration email sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sickness.ErrDeclarationNotFound
	}
	return nil
}

// MarkViewed implements sickness.SicknessDeclarationRepository.
func (r *sicknessDeclarationRepositoryImpl) MarkViewed(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE sickness_declarations
		SET viewed_by_admin = TRUE, updated_at = NOW()
		WHERE id = $1 AND viewed_by_admin = FALSE`, id)
	if err != nil {
		return false, fmt.Errorf("mark declaration viewed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
