package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/portfolio/internal/app"
	"github.com/alexanderramin/portfolio/internal/domain"
	"github.com/alexanderramin/portfolio/internal/importer"
	"github.com/alexanderramin/portfolio/internal/repository"
	"github.com/alexanderramin/portfolio/internal/workload"
)

// loadPlan reads a stored document and re-normalizes it. A missing document
// is an empty plan, not an error.
func loadPlan(ctx context.Context, plans repository.PlanRepo, n *importer.Normalizer, initiativeID string, variant domain.PlanVariant) (domain.Plan, bool, error) {
	stored, err := plans.Get(ctx, initiativeID, variant)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Plan{}, false, nil
		}
		return domain.Plan{}, false, fmt.Errorf("loading %s plan: %w", variant, err)
	}
	plan, _ := n.Normalize(stored.Document)
	return plan, true, nil
}

// savePlan stores plan as its canonical document.
func savePlan(ctx context.Context, plans repository.PlanRepo, initiativeID string, variant domain.PlanVariant, plan domain.Plan, repairs int) error {
	doc, err := importer.Marshal(plan)
	if err != nil {
		return err
	}
	return plans.Save(ctx, &repository.StoredPlan{
		InitiativeID: initiativeID,
		Variant:      variant,
		Document:     doc,
		RepairCount:  repairs,
		UpdatedAt:    time.Now().UTC(),
	})
}

// maxReportDays bounds a load report to ten years of buckets.
const maxReportDays = 3653

// bucketsFor picks the reporting range: explicit bounds win, otherwise the
// span of every scheduled task in plans.
func bucketsFor(unit domain.GroupUnit, rolling bool, from, to *time.Time, plans ...domain.Plan) ([]workload.Bucket, error) {
	if !domain.ValidGroupUnits[string(unit)] {
		return nil, &app.LoadError{Code: app.LoadErrInvalidUnit, Message: fmt.Sprintf("unknown unit %q (expected week, month or quarter)", unit)}
	}
	start, end, ok := workload.DateRange(plans...)
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}
	switch {
	case from != nil && to != nil:
		if end.Before(start) {
			return nil, &app.LoadError{Code: app.LoadErrInvalidRange, Message: fmt.Sprintf("range end %s is before start %s", end.Format(domain.DateLayout), start.Format(domain.DateLayout))}
		}
	case from != nil:
		if !ok || end.Before(start) {
			end = start
		}
	case to != nil:
		if !ok || end.Before(start) {
			start = end
		}
	case !ok:
		return nil, nil
	}
	if days := domain.DaysInclusive(start, end); days > maxReportDays {
		return nil, &app.LoadError{Code: app.LoadErrInvalidRange, Message: fmt.Sprintf(
			"range %s to %s spans %d days, more than %d; narrow it with --from/--to",
			start.Format(domain.DateLayout), end.Format(domain.DateLayout), days, maxReportDays)}
	}
	if rolling {
		return workload.BuildRollingBuckets(start, end, unit), nil
	}
	return workload.BuildBuckets(start, end, unit), nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
