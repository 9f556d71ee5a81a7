package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/portfolio/internal/db"
	"github.com/alexanderramin/portfolio/internal/domain"
)

// SQLiteInitiativeRepo implements InitiativeRepo using a SQLite database.
type SQLiteInitiativeRepo struct {
	db db.DBTX
}

// NewSQLiteInitiativeRepo creates a new SQLiteInitiativeRepo.
func NewSQLiteInitiativeRepo(conn db.DBTX) *SQLiteInitiativeRepo {
	return &SQLiteInitiativeRepo{db: conn}
}

const initiativeColumns = `id, short_id, name, stage, status, archived_at, created_at, updated_at`

func (r *SQLiteInitiativeRepo) Create(ctx context.Context, i *domain.Initiative) error {
	query := `INSERT INTO initiatives (` + initiativeColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		i.ID,
		i.ShortID,
		i.Name,
		i.Stage,
		string(i.Status),
		nullableTimeToString(i.ArchivedAt, time.RFC3339),
		i.CreatedAt.Format(time.RFC3339),
		i.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting initiative: %w", err)
	}
	return nil
}

func (r *SQLiteInitiativeRepo) GetByID(ctx context.Context, id string) (*domain.Initiative, error) {
	query := `SELECT ` + initiativeColumns + ` FROM initiatives WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteInitiativeRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Initiative, error) {
	query := `SELECT ` + initiativeColumns + ` FROM initiatives WHERE UPPER(short_id) = UPPER(?)`
	return r.scanOne(r.db.QueryRowContext(ctx, query, shortID))
}

func (r *SQLiteInitiativeRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Initiative, error) {
	query := `SELECT ` + initiativeColumns + ` FROM initiatives WHERE archived_at IS NULL ORDER BY created_at, short_id`
	if includeArchived {
		query = `SELECT ` + initiativeColumns + ` FROM initiatives ORDER BY created_at, short_id`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing initiatives: %w", err)
	}
	defer rows.Close()

	var out []*domain.Initiative
	for rows.Next() {
		i, err := scanInitiative(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning initiative row: %w", err)
		}
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating initiatives: %w", err)
	}
	return out, nil
}

func (r *SQLiteInitiativeRepo) Update(ctx context.Context, i *domain.Initiative) error {
	query := `UPDATE initiatives SET short_id = ?, name = ?, stage = ?, status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		i.ShortID,
		i.Name,
		i.Stage,
		string(i.Status),
		i.UpdatedAt.Format(time.RFC3339),
		i.ID,
	)
	if err != nil {
		return fmt.Errorf("updating initiative: %w", err)
	}
	return requireAffected(res, "initiative")
}

func (r *SQLiteInitiativeRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	query := `UPDATE initiatives SET status = 'archived', archived_at = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return fmt.Errorf("archiving initiative: %w", err)
	}
	return requireAffected(res, "initiative")
}

func (r *SQLiteInitiativeRepo) Unarchive(ctx context.Context, id string) error {
	query := `UPDATE initiatives SET status = 'active', archived_at = NULL, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("unarchiving initiative: %w", err)
	}
	return requireAffected(res, "initiative")
}

// Delete removes the initiative; its plan documents cascade.
func (r *SQLiteInitiativeRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM initiatives WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting initiative: %w", err)
	}
	return requireAffected(res, "initiative")
}

func (r *SQLiteInitiativeRepo) scanOne(row *sql.Row) (*domain.Initiative, error) {
	i, err := scanInitiative(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("initiative %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning initiative: %w", err)
	}
	return i, nil
}

func scanInitiative(s rowScanner) (*domain.Initiative, error) {
	var i domain.Initiative
	var statusStr, createdAtStr, updatedAtStr string
	var archivedAtStr sql.NullString

	if err := s.Scan(
		&i.ID, &i.ShortID, &i.Name, &i.Stage,
		&statusStr, &archivedAtStr,
		&createdAtStr, &updatedAtStr,
	); err != nil {
		return nil, err
	}

	i.Status = domain.InitiativeStatus(statusStr)

	var parseErr error
	i.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	i.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	i.ArchivedAt = parseNullableTime(archivedAtStr, time.RFC3339)

	return &i, nil
}
