package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/portfolio/internal/app"
	"github.com/alexanderramin/portfolio/internal/baseline"
	"github.com/alexanderramin/portfolio/internal/domain"
	"github.com/alexanderramin/portfolio/internal/importer"
	"github.com/alexanderramin/portfolio/internal/plantree"
	"github.com/alexanderramin/portfolio/internal/repository"
	"github.com/alexanderramin/portfolio/internal/workload"
)

type planService struct {
	initiatives repository.InitiativeRepo
	plans       repository.PlanRepo
	normalizer  *importer.Normalizer
	logger      *slog.Logger
	observer    UseCaseObserver
}

func NewPlanService(
	initiatives repository.InitiativeRepo,
	plans repository.PlanRepo,
	normalizer *importer.Normalizer,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) PlanService {
	if normalizer == nil {
		normalizer = importer.New(importer.DefaultMaxIndent)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &planService{
		initiatives: initiatives,
		plans:       plans,
		normalizer:  normalizer,
		logger:      logger,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Import(ctx context.Context, initiativeID string, variant domain.PlanVariant, filePath string) (*app.ImportResult, error) {
	raw, err := importer.LoadPlanDocument(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading plan file: %w", err)
	}
	return s.ImportBytes(ctx, initiativeID, variant, raw)
}

// ImportBytes normalizes raw and replaces the stored document. Malformed
// content never fails the import; every repair is reported and logged.
func (s *planService) ImportBytes(ctx context.Context, initiativeID string, variant domain.PlanVariant, raw []byte) (result *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"initiative_id": initiativeID,
		"variant":       string(variant),
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if variant != domain.VariantPlan && variant != domain.VariantActuals {
		return nil, fmt.Errorf("unknown plan variant %q", variant)
	}
	if _, err = s.initiatives.GetByID(ctx, initiativeID); err != nil {
		return nil, fmt.Errorf("loading initiative: %w", err)
	}

	plan, report := s.normalizer.Normalize(raw)
	for _, repair := range report.Repairs {
		s.logger.DebugContext(ctx, "plan_repair", "initiative_id", initiativeID, "variant", string(variant), "repair", repair)
	}
	fields["task_count"] = len(plan.Tasks)
	fields["repair_count"] = len(report.Repairs)

	if err = savePlan(ctx, s.plans, initiativeID, variant, plan, len(report.Repairs)); err != nil {
		return nil, fmt.Errorf("storing plan: %w", err)
	}

	return &app.ImportResult{
		InitiativeID: initiativeID,
		Variant:      variant,
		TaskCount:    len(plan.Tasks),
		Repairs:      report.Repairs,
	}, nil
}

func (s *planService) Get(ctx context.Context, initiativeID string, variant domain.PlanVariant) (domain.Plan, error) {
	plan, _, err := loadPlan(ctx, s.plans, s.normalizer, initiativeID, variant)
	return plan, err
}

func (s *planService) Export(ctx context.Context, initiativeID string, variant domain.PlanVariant) ([]byte, error) {
	plan, err := s.Get(ctx, initiativeID, variant)
	if err != nil {
		return nil, err
	}
	return importer.Marshal(plan)
}

// Timeline joins the plan with its derived tree, rollup, slices and cycles.
// Actuals rows also carry their variance against the working plan.
func (s *planService) Timeline(ctx context.Context, req app.TimelineRequest) (*app.TimelineResponse, error) {
	if req.Variant == "" {
		req.Variant = domain.VariantPlan
	}
	plan, err := s.Get(ctx, req.InitiativeID, req.Variant)
	if err != nil {
		return nil, err
	}

	var baselinePlan *domain.Plan
	if req.Variant == domain.VariantActuals {
		source, found, err := loadPlan(ctx, s.plans, s.normalizer, req.InitiativeID, domain.VariantPlan)
		if err != nil {
			return nil, err
		}
		if found {
			baselinePlan = &source
		}
	}

	tree := plantree.Build(plan.Tasks)
	rollup := tree.Rollup(plan.Tasks)
	cyclic := plantree.CyclicTasks(plan.Tasks)

	resp := &app.TimelineResponse{
		InitiativeID: req.InitiativeID,
		Variant:      req.Variant,
		Rows:         make([]app.TimelineRow, 0, len(plan.Tasks)),
		Cycles:       plantree.DependencyCycles(plan.Tasks),
	}
	for i, task := range plan.Tasks {
		row := app.TimelineRow{
			Task:         task,
			Depth:        tree.Depth[i],
			Progress:     rollup[i].Value,
			AutoProgress: rollup[i].IsAuto,
			Slices:       workload.ResolveSlices(task),
			InCycle:      cyclic[task.ID],
		}
		if req.Variant == domain.VariantActuals {
			v := baseline.Compare(task, baselinePlan)
			row.Variance = &v
		}
		resp.Rows = append(resp.Rows, row)
	}
	if start, end, ok := workload.DateRange(plan); ok {
		resp.Start, resp.End = &start, &end
	}
	return resp, nil
}
