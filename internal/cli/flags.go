package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/portfolio/internal/domain"
)

// dateValue is an optional YYYY-MM-DD flag.
type dateValue struct {
	t *time.Time
}

func (d *dateValue) String() string {
	if d.t == nil {
		return ""
	}
	return d.t.Format(domain.DateLayout)
}

func (d *dateValue) Set(s string) error {
	t, ok := domain.ParseDate(strings.TrimSpace(s))
	if !ok {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	d.t = &t
	return nil
}

func (d *dateValue) Type() string { return "date" }

// unitValue is a week|month|quarter flag.
type unitValue struct {
	unit *domain.GroupUnit
}

func (u unitValue) String() string { return string(*u.unit) }

func (u unitValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !domain.ValidGroupUnits[s] {
		return fmt.Errorf("invalid unit %q (expected week, month or quarter)", s)
	}
	*u.unit = domain.GroupUnit(s)
	return nil
}

func (u unitValue) Type() string { return "unit" }

// rangeFlags are shared by the load and heatmap commands.
type rangeFlags struct {
	unit      domain.GroupUnit
	from      dateValue
	to        dateValue
	rolling   bool
	threshold float64
}

func addRangeFlags(fs *pflag.FlagSet, rf *rangeFlags, app *App) {
	rf.unit = app.defaultUnit()
	rf.threshold = app.OverloadThreshold
	fs.Var(unitValue{&rf.unit}, "unit", "Bucket unit (week|month|quarter)")
	fs.Var(&rf.from, "from", "Range start (YYYY-MM-DD); defaults to the earliest task")
	fs.Var(&rf.to, "to", "Range end (YYYY-MM-DD); defaults to the latest task")
	fs.BoolVar(&rf.rolling, "rolling", false, "Start buckets at the range start instead of calendar boundaries")
	fs.Float64Var(&rf.threshold, "threshold", rf.threshold, "Overload threshold in percent of one person")
}

func variantFlag(fs *pflag.FlagSet, actuals *bool) {
	fs.BoolVar(actuals, "actuals", false, "Use the actuals plan instead of the working plan")
}

func variantOf(actuals bool) domain.PlanVariant {
	if actuals {
		return domain.VariantActuals
	}
	return domain.VariantPlan
}
