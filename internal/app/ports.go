package app

import (
	"context"

	"github.com/alexanderramin/portfolio/internal/domain"
)

type ImportPlanUseCase interface {
	Import(ctx context.Context, initiativeID string, variant domain.PlanVariant, filePath string) (*ImportResult, error)
	ImportBytes(ctx context.Context, initiativeID string, variant domain.PlanVariant, raw []byte) (*ImportResult, error)
}

type TimelineUseCase interface {
	Timeline(ctx context.Context, req TimelineRequest) (*TimelineResponse, error)
}

type OwnerLoadUseCase interface {
	OwnerLoad(ctx context.Context, req LoadRequest) (*LoadResponse, error)
}

type HeatmapUseCase interface {
	Heatmap(ctx context.Context, req HeatmapRequest) (*HeatmapResponse, error)
}

type ReseedUseCase interface {
	Reseed(ctx context.Context, initiativeID string) (*ReseedResult, error)
}

type VarianceUseCase interface {
	Variance(ctx context.Context, initiativeID string) (*VarianceResponse, error)
}
