package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/portfolio/internal/app"
	"github.com/alexanderramin/portfolio/internal/baseline"
	"github.com/alexanderramin/portfolio/internal/db"
	"github.com/alexanderramin/portfolio/internal/domain"
	"github.com/alexanderramin/portfolio/internal/importer"
	"github.com/alexanderramin/portfolio/internal/repository"
)

type actualsService struct {
	initiatives repository.InitiativeRepo
	plans       repository.PlanRepo
	uow         db.UnitOfWork
	normalizer  *importer.Normalizer
	// newID generates actuals task IDs; nil means random UUIDs.
	newID func() string
	observer    UseCaseObserver
}

func NewActualsService(
	initiatives repository.InitiativeRepo,
	plans repository.PlanRepo,
	uow db.UnitOfWork,
	normalizer *importer.Normalizer,
	observers ...UseCaseObserver,
) ActualsService {
	if normalizer == nil {
		normalizer = importer.New(importer.DefaultMaxIndent)
	}
	return &actualsService{
		initiatives: initiatives,
		plans:       plans,
		uow:         uow,
		normalizer:  normalizer,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// Reseed replaces the whole actuals set with a fresh copy of the working
// plan. Reading the plan and writing the actuals happen in one transaction.
func (s *actualsService) Reseed(ctx context.Context, initiativeID string) (result *app.ReseedResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"initiative_id": initiativeID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "reseed-actuals",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if _, err = s.initiatives.GetByID(ctx, initiativeID); err != nil {
		return nil, fmt.Errorf("loading initiative: %w", err)
	}

	result = &app.ReseedResult{InitiativeID: initiativeID}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plans := repository.NewSQLitePlanRepo(tx)

		plan, found, err := loadPlan(ctx, plans, s.normalizer, initiativeID, domain.VariantPlan)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("initiative has no plan to reseed from: %w", repository.ErrNotFound)
		}
		_, replaced, err := loadPlan(ctx, plans, s.normalizer, initiativeID, domain.VariantActuals)
		if err != nil {
			return err
		}

		actuals := baseline.Reseed(plan, s.newID)
		if err := savePlan(ctx, plans, initiativeID, domain.VariantActuals, actuals, 0); err != nil {
			return fmt.Errorf("storing actuals: %w", err)
		}
		result.TaskCount = len(actuals.Tasks)
		result.Replaced = replaced
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["task_count"] = result.TaskCount
	fields["replaced"] = result.Replaced
	return result, nil
}

// Variance compares every actuals task against its baseline.
func (s *actualsService) Variance(ctx context.Context, initiativeID string) (resp *app.VarianceResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"initiative_id": initiativeID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "actuals-variance",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	actuals, found, err := loadPlan(ctx, s.plans, s.normalizer, initiativeID, domain.VariantActuals)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("initiative has no actuals (run 'actuals reseed' first): %w", repository.ErrNotFound)
	}
	source, hasPlan, err := loadPlan(ctx, s.plans, s.normalizer, initiativeID, domain.VariantPlan)
	if err != nil {
		return nil, err
	}
	var baselinePlan *domain.Plan
	if hasPlan {
		baselinePlan = &source
	}

	variances := baseline.CompareAll(actuals, baselinePlan)
	resp = &app.VarianceResponse{
		InitiativeID: initiativeID,
		Rows:         make([]app.VarianceRow, len(variances)),
		Summary:      baseline.Summarize(variances),
	}
	for i, v := range variances {
		resp.Rows[i] = app.VarianceRow{
			TaskID:     v.TaskID,
			Name:       actuals.Tasks[i].Name,
			NewlyAdded: v.NewlyAdded,
			Changed:    v.Changed.List(),
		}
	}
	fields["task_count"] = resp.Summary.Tasks
	fields["unchanged"] = resp.Summary.Unchanged
	return resp, nil
}
