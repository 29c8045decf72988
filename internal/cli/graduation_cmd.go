package cli

import (
	"github.com/alexanderramin/provost/internal/app"
	"github.com/alexanderramin/provost/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newGraduationCmd(a *App) *cobra.Command {
	var confer bool

	cmd := &cobra.Command{
		Use:   "graduation STUDENT_ID",
		Short: "Check graduation eligibility, or confer the degree with --confer",
		Long: "Checks the student against their active program. With --confer the\n" +
			"stricter conferral check runs and, when it passes, the degree is\n" +
			"recorded with its Latin honors and the enrollment is completed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if confer {
				report, err := a.Graduation.CheckConferral(cmd.Context(), app.ConferralRequest{
					StudentID: args[0],
					Record:    true,
				})
				if err != nil {
					return err
				}
				return a.render(cmd, report, func() string { return formatter.FormatConferral(report) })
			}

			report, err := a.Graduation.CheckEligibility(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render(cmd, report, func() string { return formatter.FormatGraduation(report) })
		},
	}

	cmd.Flags().BoolVar(&confer, "confer", false, "Record the degree when conferral checks pass")

	return cmd
}

func newHonorsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "honors STUDENT_ID",
		Short: "Determine Latin honors from the student's transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.Graduation.LatinHonors(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render(cmd, result, func() string { return formatter.FormatHonors(result) })
		},
	}
}
