package service

import (
	"context"

	"github.com/alexanderramin/portfolio/internal/app"
	"github.com/alexanderramin/portfolio/internal/domain"
)

type InitiativeService interface {
	Create(ctx context.Context, i *domain.Initiative) error
	GetByID(ctx context.Context, id string) (*domain.Initiative, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Initiative, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Initiative, error)
	Update(ctx context.Context, i *domain.Initiative) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

type PlanService interface {
	app.ImportPlanUseCase
	app.TimelineUseCase
	Get(ctx context.Context, initiativeID string, variant domain.PlanVariant) (domain.Plan, error)
	Export(ctx context.Context, initiativeID string, variant domain.PlanVariant) ([]byte, error)
}

type WorkloadService interface {
	app.OwnerLoadUseCase
	app.HeatmapUseCase
}

type ActualsService interface {
	app.ReseedUseCase
	app.VarianceUseCase
}
