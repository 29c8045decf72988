package cli

import (
	"github.com/alexanderramin/provost/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import student records and program definitions from JSON",
	}
	cmd.AddCommand(newImportStudentCmd(app), newImportProgramCmd(app))
	return cmd
}

func newImportStudentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "student FILE",
		Short: "Import or replace a student record",
		Long: "Imports a student record. Re-importing an existing student replaces\n" +
			"their courses, holds and milestones and keeps their enrollments.\n" +
			"Programs the record enrolls in must already be imported.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportStudent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.render(cmd, result, func() string { return formatter.FormatImportStudent(result) })
		},
	}
}

func newImportProgramCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "program FILE",
		Short: "Import or replace a program definition and its requirements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportProgram(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.render(cmd, result, func() string { return formatter.FormatImportProgram(result) })
		},
	}
}
