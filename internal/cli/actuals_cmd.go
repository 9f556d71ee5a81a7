package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/portfolio/internal/cli/formatter"
	"github.com/alexanderramin/portfolio/internal/domain"
	"github.com/alexanderramin/portfolio/internal/repository"
)

func newActualsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actuals",
		Short: "Track actuals against the frozen plan baseline",
	}

	cmd.AddCommand(
		newActualsReseedCmd(app),
		newActualsVarianceCmd(app),
	)

	return cmd
}

func newActualsReseedCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reseed ID",
		Short: "Replace the actuals with a fresh copy of the plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveInitiativeID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !yes {
				plan, err := app.Plans.Get(ctx, id, domain.VariantActuals)
				if err != nil {
					return err
				}
				if len(plan.Tasks) > 0 {
					ok, err := app.confirm(
						fmt.Sprintf("Replace %d actuals tasks?", len(plan.Tasks)),
						"All recorded actuals and their baselines are discarded.",
					)
					if err != nil {
						return err
					}
					if !ok {
						return errors.New("reseed cancelled (use --yes to skip confirmation)")
					}
				}
			}

			result, err := app.Actuals.Reseed(ctx, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("%w (import a plan first)", err)
				}
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReseedResult(result))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Replace existing actuals without asking")

	return cmd
}

func newActualsVarianceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "variance ID",
		Short: "Compare actuals against their baselines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveInitiativeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			resp, err := app.Actuals.Variance(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatVariance(resp))
			return nil
		},
	}
}
