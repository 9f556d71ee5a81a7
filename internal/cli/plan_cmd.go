package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/portfolio/internal/app"
	"github.com/alexanderramin/portfolio/internal/cli/formatter"
	"github.com/alexanderramin/portfolio/internal/importer"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Import, export and inspect plan documents",
	}

	cmd.AddCommand(
		newPlanImportCmd(app),
		newPlanExportCmd(app),
		newPlanShowCmd(app),
		newPlanNormalizeCmd(app),
	)

	return cmd
}

func newPlanImportCmd(a *App) *cobra.Command {
	var initiative string
	var actuals, verbose bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace an initiative's plan with a JSON or YAML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveInitiativeID(ctx, a, initiative)
			if err != nil {
				return err
			}
			result, err := a.Plans.Import(ctx, id, variantOf(actuals), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(result, verbose))
			return nil
		},
	}

	cmd.Flags().StringVarP(&initiative, "initiative", "i", "", "Initiative short ID or UUID")
	variantFlag(cmd.Flags(), &actuals)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every repair")
	_ = cmd.MarkFlagRequired("initiative")

	return cmd
}

func newPlanExportCmd(a *App) *cobra.Command {
	var initiative, out string
	var actuals bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the canonical plan document",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveInitiativeID(ctx, a, initiative)
			if err != nil {
				return err
			}
			data, err := a.Plans.Export(ctx, id, variantOf(actuals))
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", variantOf(actuals), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&initiative, "initiative", "i", "", "Initiative short ID or UUID")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	variantFlag(cmd.Flags(), &actuals)
	_ = cmd.MarkFlagRequired("initiative")

	return cmd
}

func newPlanShowCmd(a *App) *cobra.Command {
	var actuals bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show the task timeline with rolled-up progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveInitiativeID(ctx, a, args[0])
			if err != nil {
				return err
			}
			resp, err := a.Plans.Timeline(ctx, app.TimelineRequest{InitiativeID: id, Variant: variantOf(actuals)})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeline(resp))
			return nil
		},
	}

	variantFlag(cmd.Flags(), &actuals)

	return cmd
}

// newPlanNormalizeCmd repairs a document without touching storage.
func newPlanNormalizeCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize FILE",
		Short: "Print the repaired form of a plan document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := importer.LoadPlanDocument(args[0])
			if err != nil {
				return fmt.Errorf("loading plan file: %w", err)
			}
			n := a.Normalizer
			if n == nil {
				n = importer.New(importer.DefaultMaxIndent)
			}
			plan, report := n.Normalize(raw)
			data, err := importer.Marshal(plan)
			if err != nil {
				return err
			}
			for _, repair := range report.Repairs {
				fmt.Fprintln(cmd.ErrOrStderr(), "repair: "+repair)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
