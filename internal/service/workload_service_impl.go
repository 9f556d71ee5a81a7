package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/portfolio/internal/app"
	"github.com/alexanderramin/portfolio/internal/domain"
	"github.com/alexanderramin/portfolio/internal/importer"
	"github.com/alexanderramin/portfolio/internal/repository"
	"github.com/alexanderramin/portfolio/internal/workload"
)

// maxConcurrentLoads bounds how many sibling plans are decoded at once.
const maxConcurrentLoads = 4

type workloadService struct {
	initiatives repository.InitiativeRepo
	plans       repository.PlanRepo
	normalizer  *importer.Normalizer
	observer    UseCaseObserver
}

func NewWorkloadService(
	initiatives repository.InitiativeRepo,
	plans repository.PlanRepo,
	normalizer *importer.Normalizer,
	observers ...UseCaseObserver,
) WorkloadService {
	if normalizer == nil {
		normalizer = importer.New(importer.DefaultMaxIndent)
	}
	return &workloadService{
		initiatives: initiatives,
		plans:       plans,
		normalizer:  normalizer,
		observer:    useCaseObserverOrNoop(observers),
	}
}

type initiativePlan struct {
	initiative *domain.Initiative
	plan       domain.Plan
}

// activePlans loads the working plan of every active initiative. Plans are
// decoded concurrently; the result keeps the repository's order.
func (s *workloadService) activePlans(ctx context.Context) ([]initiativePlan, error) {
	initiatives, err := s.initiatives.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("listing initiatives: %w", err)
	}
	var active []*domain.Initiative
	for _, i := range initiatives {
		if i.IsActive() {
			active = append(active, i)
		}
	}

	out := make([]initiativePlan, len(active))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for idx, ini := range active {
		g.Go(func() error {
			plan, _, err := loadPlan(gctx, s.plans, s.normalizer, ini.ID, domain.VariantPlan)
			if err != nil {
				return fmt.Errorf("initiative %s: %w", ini.DisplayID(), err)
			}
			out[idx] = initiativePlan{initiative: ini, plan: plan}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// OwnerLoad splits one owner's load between the requested initiative and
// every other active initiative.
func (s *workloadService) OwnerLoad(ctx context.Context, req app.LoadRequest) (resp *app.LoadResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"initiative_id": req.InitiativeID,
		"unit":          string(req.Unit),
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "owner-load",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if strings.TrimSpace(req.Owner) == "" {
		return nil, &app.LoadError{Code: app.LoadErrMissingOwner, Message: "owner is required"}
	}
	if req.Threshold <= 0 {
		req.Threshold = app.DefaultOverloadThreshold
	}

	all, err := s.activePlans(ctx)
	if err != nil {
		return nil, err
	}

	var active domain.Plan
	var others []domain.Plan
	found := false
	for _, ip := range all {
		if ip.initiative.ID == req.InitiativeID {
			active, found = ip.plan, true
			continue
		}
		others = append(others, ip.plan)
	}
	if !found {
		// Inactive initiatives still report their own load.
		plan, _, err := loadPlan(ctx, s.plans, s.normalizer, req.InitiativeID, domain.VariantPlan)
		if err != nil {
			return nil, err
		}
		active = plan
	}

	buckets, err := bucketsFor(req.Unit, req.Rolling, req.From, req.To, append([]domain.Plan{active}, others...)...)
	if err != nil {
		return nil, err
	}
	load := workload.AggregateLoad(req.Owner, active, others, buckets)

	resp = &app.LoadResponse{
		InitiativeID:     req.InitiativeID,
		Owner:            load.Owner,
		Unit:             req.Unit,
		Threshold:        req.Threshold,
		Buckets:          make([]app.BucketLoad, len(buckets)),
		OtherInitiatives: len(others),
	}
	for i, b := range buckets {
		resp.Buckets[i] = app.BucketLoad{
			Bucket:     b,
			Own:        load.Own[i],
			Other:      load.Other[i],
			Total:      load.Total(i),
			Overloaded: load.Overloaded(i, req.Threshold),
		}
		if resp.Buckets[i].Overloaded {
			resp.OverloadedCount++
		}
	}
	fields["bucket_count"] = len(buckets)
	fields["overloaded_count"] = resp.OverloadedCount
	return resp, nil
}

// Heatmap reports every owner's combined load over all active initiatives.
func (s *workloadService) Heatmap(ctx context.Context, req app.HeatmapRequest) (resp *app.HeatmapResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"unit": string(req.Unit)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "heatmap",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if req.Threshold <= 0 {
		req.Threshold = app.DefaultOverloadThreshold
	}

	all, err := s.activePlans(ctx)
	if err != nil {
		return nil, err
	}
	plans := make([]domain.Plan, len(all))
	for i, ip := range all {
		plans[i] = ip.plan
	}

	buckets, err := bucketsFor(req.Unit, req.Rolling, req.From, req.To, plans...)
	if err != nil {
		return nil, err
	}

	resp = &app.HeatmapResponse{
		Unit:        req.Unit,
		Threshold:   req.Threshold,
		Buckets:     buckets,
		Rows:        workload.Heatmap(plans, buckets),
		Initiatives: len(plans),
	}
	fields["owner_count"] = len(resp.Rows)
	return resp, nil
}
