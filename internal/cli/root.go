package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/portfolio/internal/domain"
	"github.com/alexanderramin/portfolio/internal/importer"
	"github.com/alexanderramin/portfolio/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Initiatives service.InitiativeService
	Plans       service.PlanService
	Workload    service.WorkloadService
	Actuals     service.ActualsService

	// Normalizer backs the storage-free "plan normalize" command.
	Normalizer *importer.Normalizer

	// Defaults for load and heatmap flags.
	DefaultUnit       domain.GroupUnit
	OverloadThreshold float64

	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil falls back to a huh form.
	Confirm func(title, description string) (bool, error)
}

// NewRootCmd creates the top-level "portfolio" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio timelines, capacity load and baseline variance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newInitiativeCmd(app),
		newPlanCmd(app),
		newLoadCmd(app),
		newHeatmapCmd(app),
		newActualsCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) defaultUnit() domain.GroupUnit {
	if a.DefaultUnit == "" {
		return domain.GroupWeek
	}
	return a.DefaultUnit
}
