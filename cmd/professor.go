package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"professor-registry/internal/config"
	"professor-registry/internal/domain/professor"
	"professor-registry/pkg/validator"

	"github.com/spf13/cobra"
)

var (
	firstName string
	lastName  string
)

var professorCmd = &cobra.Command{
	Use:     "professor",
	Aliases: []string{"professors"},
	Short:   "Manage professor records from the console",
}

var professorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all professors",
	Args:  cobra.NoArgs,
	RunE: withService(func(cmd *cobra.Command, args []string, svc professor.Service) error {
		professors, err := svc.ListProfessors(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "All Professors:")
		for _, p := range professors {
			printProfessor(out, p)
		}
		return nil
	}),
}

var professorGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a professor and its events",
	Args:  cobra.ExactArgs(1),
	RunE: withService(func(cmd *cobra.Command, args []string, svc professor.Service) error {
		id, err := parseProfessorID(args[0])
		if err != nil {
			return err
		}

		result, err := svc.GetProfessorWithEvents(cmd.Context(), id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Professor Data:")
		printProfessor(out, &result.Professor)
		for _, e := range result.Events {
			fmt.Fprintf(out, "  Event %d: %s%s\n", e.ID, e.Title, formatEventTimes(e))
		}
		return nil
	}),
}

var professorEventsCmd = &cobra.Command{
	Use:   "events <id>",
	Short: "List a professor's events",
	Args:  cobra.ExactArgs(1),
	RunE: withService(func(cmd *cobra.Command, args []string, svc professor.Service) error {
		id, err := parseProfessorID(args[0])
		if err != nil {
			return err
		}

		return printProfessorEvents(cmd.Context(), cmd.OutOrStdout(), svc, id)
	}),
}

var professorCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a professor",
	Args:  cobra.NoArgs,
	RunE: withService(func(cmd *cobra.Command, args []string, svc professor.Service) error {
		req := &professor.CreateProfessorRequest{FirstName: firstName, LastName: lastName}
		if err := validateRequest(req); err != nil {
			return err
		}

		p, err := svc.CreateProfessor(cmd.Context(), req)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Professor created successfully. Professor Data:")
		printProfessor(out, p)
		return nil
	}),
}

var professorUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a professor's names",
	Args:  cobra.ExactArgs(1),
	RunE: withService(func(cmd *cobra.Command, args []string, svc professor.Service) error {
		id, err := parseProfessorID(args[0])
		if err != nil {
			return err
		}

		req := &professor.UpdateProfessorRequest{}
		if cmd.Flags().Changed("first-name") {
			req.FirstName = &firstName
		}
		if cmd.Flags().Changed("last-name") {
			req.LastName = &lastName
		}
		if err := validateRequest(req); err != nil {
			return err
		}

		p, err := svc.UpdateProfessor(cmd.Context(), id, req)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Professor updated successfully. Updated Professor Data:")
		printProfessor(out, p)
		return nil
	}),
}

var professorDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a professor and its events",
	Args:  cobra.ExactArgs(1),
	RunE: withService(func(cmd *cobra.Command, args []string, svc professor.Service) error {
		id, err := parseProfessorID(args[0])
		if err != nil {
			return err
		}

		if err := svc.DeleteProfessor(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Professor deleted successfully.")
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(professorCmd)
	professorCmd.AddCommand(professorListCmd, professorGetCmd, professorEventsCmd, professorCreateCmd, professorUpdateCmd, professorDeleteCmd)

	professorCreateCmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	professorCreateCmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	professorCreateCmd.MarkFlagRequired("first-name")
	professorCreateCmd.MarkFlagRequired("last-name")

	professorUpdateCmd.Flags().StringVar(&firstName, "first-name", "", "new first name")
	professorUpdateCmd.Flags().StringVar(&lastName, "last-name", "", "new last name")
	professorUpdateCmd.MarkFlagsOneRequired("first-name", "last-name")
}

// withService opens the configured store for the duration of one console command
func withService(run func(cmd *cobra.Command, args []string, svc professor.Service) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := newApplication(config.Get(), false)
		if err != nil {
			return err
		}
		defer app.Close()

		return run(cmd, args, app.service)
	}
}

func parseProfessorID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 63)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid professor id %q", arg)
	}
	return uint(id), nil
}

func validateRequest(req any) error {
	if err := validator.ValidateStruct(req); err != nil {
		errs := validator.FormatValidationError(err)
		if len(errs) > 0 {
			return fmt.Errorf("invalid input: %s", errs[0].Message)
		}
		return err
	}
	return nil
}

func printProfessorEvents(ctx context.Context, out io.Writer, svc professor.Service, id uint) error {
	events, err := svc.ListProfessorEvents(ctx, id)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Fprintf(out, "Professor %d has no events.\n", id)
		return nil
	}

	fmt.Fprintf(out, "Events for professor %d:\n", id)
	for _, e := range events {
		fmt.Fprintf(out, "  Event %d: %s%s\n", e.ID, e.Title, formatEventTimes(e))
	}
	return nil
}

func printProfessor(out io.Writer, p *professor.Professor) {
	fmt.Fprintf(out, "ID: %d, Name: %s\n", p.ID, p.FullName())
}

func formatEventTimes(e professor.Event) string {
	const layout = "2006-01-02 15:04"
	switch {
	case e.StartsAt != nil && e.EndsAt != nil:
		return fmt.Sprintf(" (%s - %s)", e.StartsAt.Format(layout), e.EndsAt.Format(layout))
	case e.StartsAt != nil:
		return fmt.Sprintf(" (from %s)", e.StartsAt.Format(layout))
	}
	return ""
}
