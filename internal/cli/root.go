package cli

import (
	"github.com/alexanderramin/provost/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and output settings CLI commands run against.
type App struct {
	Import     service.ImportService
	Audit      service.AuditService
	Standing   service.StandingService
	Sap        service.SapService
	Graduation service.GraduationService
	History    service.HistoryService

	// Metrics, when set with MetricsFile, is written out after batch runs.
	Metrics     *service.MetricsObserver
	MetricsFile string

	// IsTerminal reports whether stdout is a terminal. JSON output is
	// forced when it is not. A nil func means not a terminal.
	IsTerminal func() bool
}

// NewRootCmd creates the top-level "provost" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "provost",
		Short:         "Degree audit, academic standing, SAP and graduation checks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("json", false, "Write JSON instead of formatted text")

	root.AddCommand(
		newImportCmd(app),
		newAuditCmd(app),
		newStandingCmd(app),
		newSapCmd(app),
		newGraduationCmd(app),
		newHonorsCmd(app),
		newBatchCmd(app),
		newHistoryCmd(app),
		newStudentsCmd(app),
	)
	return root
}
