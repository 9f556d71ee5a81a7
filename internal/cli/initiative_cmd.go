package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/portfolio/internal/cli/formatter"
	"github.com/alexanderramin/portfolio/internal/domain"
)

func newInitiativeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "initiative",
		Aliases: []string{"ini"},
		Short:   "Manage initiatives",
	}

	cmd.AddCommand(
		newInitiativeAddCmd(app),
		newInitiativeListCmd(app),
		newInitiativeUpdateCmd(app),
		newInitiativeArchiveCmd(app),
		newInitiativeUnarchiveCmd(app),
		newInitiativeRemoveCmd(app),
	)

	return cmd
}

func newInitiativeAddCmd(app *App) *cobra.Command {
	var name, stage, shortID string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new initiative",
		RunE: func(cmd *cobra.Command, args []string) error {
			i := &domain.Initiative{
				ShortID: strings.ToUpper(shortID),
				Name:    name,
				Stage:   stage,
			}
			if err := app.Initiatives.Create(cmd.Context(), i); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created initiative %s [%s]\n", i.Name, i.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits, e.g. CRM01)")
	cmd.Flags().StringVar(&name, "name", "", "Initiative name")
	cmd.Flags().StringVar(&stage, "stage", "", "Approval stage label")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newInitiativeListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List initiatives",
		RunE: func(cmd *cobra.Command, args []string) error {
			initiatives, err := app.Initiatives.List(cmd.Context(), all)
			if err != nil {
				return err
			}
			if len(initiatives) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No initiatives found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatInitiativeList(initiatives))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived initiatives")

	return cmd
}

func newInitiativeUpdateCmd(app *App) *cobra.Command {
	var name, stage, status, shortID string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an initiative",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveInitiativeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			i, err := app.Initiatives.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("id") {
				i.ShortID = strings.ToUpper(shortID)
			}
			if cmd.Flags().Changed("name") {
				i.Name = name
			}
			if cmd.Flags().Changed("stage") {
				i.Stage = stage
			}
			if cmd.Flags().Changed("status") {
				i.Status = domain.InitiativeStatus(status)
			}

			if err := app.Initiatives.Update(ctx, i); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated initiative %s [%s]\n", i.Name, i.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits)")
	cmd.Flags().StringVar(&name, "name", "", "Initiative name")
	cmd.Flags().StringVar(&stage, "stage", "", "Approval stage label")
	cmd.Flags().StringVar(&status, "status", "", "Status (active|paused|done)")

	return cmd
}

func newInitiativeArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive an initiative; its load no longer counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveInitiativeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Initiatives.Archive(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived initiative %s\n", args[0])
			return nil
		},
	}
}

func newInitiativeUnarchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unarchive ID",
		Short: "Unarchive an initiative",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveInitiativeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Initiatives.Unarchive(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unarchived initiative %s\n", args[0])
			return nil
		},
	}
}

func newInitiativeRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an archived initiative and its plans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveInitiativeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Initiatives.Delete(ctx, id, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed initiative %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Remove even if the initiative is not archived")

	return cmd
}
