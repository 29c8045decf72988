package cli

import (
	"github.com/alexanderramin/provost/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAuditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "audit STUDENT_PROGRAM_ID",
		Short: "Run a degree audit for one enrollment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Audit.AuditStudentProgram(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.render(cmd, report, func() string { return formatter.FormatAudit(report) })
		},
	}
}
