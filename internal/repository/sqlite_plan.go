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

// SQLitePlanRepo stores one document per initiative and variant. Saves are
// whole-document replacements; the last write wins.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) Get(ctx context.Context, initiativeID string, variant domain.PlanVariant) (*StoredPlan, error) {
	query := `SELECT initiative_id, variant, document, repair_count, updated_at
		FROM plans WHERE initiative_id = ? AND variant = ?`
	p, err := scanPlan(r.db.QueryRowContext(ctx, query, initiativeID, string(variant)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s plan %w", variant, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	return p, nil
}

func (r *SQLitePlanRepo) Save(ctx context.Context, p *StoredPlan) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	query := `INSERT INTO plans (initiative_id, variant, document, repair_count, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(initiative_id, variant) DO UPDATE SET
			document = excluded.document,
			repair_count = excluded.repair_count,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		p.InitiativeID,
		string(p.Variant),
		string(p.Document),
		p.RepairCount,
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving %s plan: %w", p.Variant, err)
	}
	return nil
}

func (r *SQLitePlanRepo) ListByVariant(ctx context.Context, variant domain.PlanVariant) ([]*StoredPlan, error) {
	query := `SELECT p.initiative_id, p.variant, p.document, p.repair_count, p.updated_at
		FROM plans p JOIN initiatives i ON i.id = p.initiative_id
		WHERE p.variant = ?
		ORDER BY i.created_at, i.short_id`
	rows, err := r.db.QueryContext(ctx, query, string(variant))
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var out []*StoredPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning plan row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return out, nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, initiativeID string, variant domain.PlanVariant) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE initiative_id = ? AND variant = ?`, initiativeID, string(variant))
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return requireAffected(res, string(variant)+" plan")
}

func scanPlan(s rowScanner) (*StoredPlan, error) {
	var p StoredPlan
	var variant, document, updatedAtStr string
	if err := s.Scan(&p.InitiativeID, &variant, &document, &p.RepairCount, &updatedAtStr); err != nil {
		return nil, err
	}
	p.Variant = domain.PlanVariant(variant)
	p.Document = []byte(document)

	var err error
	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
