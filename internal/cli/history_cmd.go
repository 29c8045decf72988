package cli

import (
	"github.com/alexanderramin/provost/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history STUDENT_ID",
		Short: "Show recorded standing, SAP and conferral history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := app.History.StudentHistory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.render(cmd, history, func() string { return formatter.FormatHistory(history) })
		},
	}
}

func newStudentsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "students",
		Short: "List imported students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := app.History.ListStudents(cmd.Context())
			if err != nil {
				return err
			}
			return app.render(cmd, students, func() string { return formatter.FormatStudents(students) })
		},
	}
}
