package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/portfolio/internal/domain"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

// StoredPlan is a persisted plan document. Document holds canonical JSON.
type StoredPlan struct {
	InitiativeID string
	Variant      domain.PlanVariant
	Document     []byte
	RepairCount  int
	UpdatedAt    time.Time
}

type InitiativeRepo interface {
	Create(ctx context.Context, i *domain.Initiative) error
	GetByID(ctx context.Context, id string) (*domain.Initiative, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Initiative, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Initiative, error)
	Update(ctx context.Context, i *domain.Initiative) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type PlanRepo interface {
	Get(ctx context.Context, initiativeID string, variant domain.PlanVariant) (*StoredPlan, error)
	Save(ctx context.Context, p *StoredPlan) error
	ListByVariant(ctx context.Context, variant domain.PlanVariant) ([]*StoredPlan, error)
	Delete(ctx context.Context, initiativeID string, variant domain.PlanVariant) error
}
