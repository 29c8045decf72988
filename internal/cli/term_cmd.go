package cli

import (
	"github.com/alexanderramin/provost/internal/app"
	"github.com/alexanderramin/provost/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStandingCmd(a *App) *cobra.Command {
	var (
		term      string
		termGPA   float64
		reinstate bool
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "standing STUDENT_ID",
		Short: "Evaluate academic standing for a term and record it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.TermRequest{
				StudentID:             args[0],
				TermID:                term,
				ReinstatementApproved: reinstate,
				DryRun:                dryRun,
			}
			if cmd.Flags().Changed("term-gpa") {
				req.TermGPA = &termGPA
			}

			result, err := a.Standing.EvaluateTerm(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.render(cmd, result, func() string { return formatter.FormatStanding(result) })
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Term being evaluated (e.g. 2025FA)")
	cmd.Flags().Float64Var(&termGPA, "term-gpa", 0, "Term GPA to record alongside the cumulative GPA")
	cmd.Flags().BoolVar(&reinstate, "reinstate", false, "Reinstatement has been approved")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Evaluate without recording history")
	_ = cmd.MarkFlagRequired("term")

	return cmd
}

func newSapCmd(a *App) *cobra.Command {
	var (
		term      string
		reinstate bool
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "sap STUDENT_ID",
		Short: "Evaluate satisfactory academic progress for a term and record it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.Sap.EvaluateTerm(cmd.Context(), app.TermRequest{
				StudentID:             args[0],
				TermID:                term,
				ReinstatementApproved: reinstate,
				DryRun:                dryRun,
			})
			if err != nil {
				return err
			}
			return a.render(cmd, result, func() string { return formatter.FormatSap(result) })
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Term being evaluated (e.g. 2025FA)")
	cmd.Flags().BoolVar(&reinstate, "reinstate", false, "Apply an approved reinstatement of a maximum timeframe ineligibility")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Evaluate without recording history")
	_ = cmd.MarkFlagRequired("term")

	return cmd
}
