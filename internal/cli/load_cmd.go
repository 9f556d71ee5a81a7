package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/portfolio/internal/app"
	"github.com/alexanderramin/portfolio/internal/cli/formatter"
)

func newLoadCmd(a *App) *cobra.Command {
	var owner string
	var rf rangeFlags

	cmd := &cobra.Command{
		Use:   "load ID",
		Short: "Show one owner's load in an initiative against all other active initiatives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveInitiativeID(ctx, a, args[0])
			if err != nil {
				return err
			}

			req := app.NewLoadRequest()
			req.InitiativeID = id
			req.Owner = owner
			req.Unit = rf.unit
			req.From, req.To = rf.from.t, rf.to.t
			req.Rolling = rf.rolling
			if rf.threshold > 0 {
				req.Threshold = rf.threshold
			}

			resp, err := a.Workload.OwnerLoad(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOwnerLoad(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Responsible person (matched case-insensitively)")
	addRangeFlags(cmd.Flags(), &rf, a)
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func newHeatmapCmd(a *App) *cobra.Command {
	var rf rangeFlags

	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Show every owner's load across all active initiatives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.NewHeatmapRequest()
			req.Unit = rf.unit
			req.From, req.To = rf.from.t, rf.to.t
			req.Rolling = rf.rolling
			if rf.threshold > 0 {
				req.Threshold = rf.threshold
			}

			resp, err := a.Workload.Heatmap(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHeatmap(resp))
			return nil
		},
	}

	addRangeFlags(cmd.Flags(), &rf, a)

	return cmd
}
