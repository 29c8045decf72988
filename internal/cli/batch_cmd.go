package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/provost/internal/app"
	"github.com/alexanderramin/provost/internal/cli/formatter"
	"github.com/alexanderramin/provost/internal/sap"
	"github.com/alexanderramin/provost/internal/standing"
	"github.com/spf13/cobra"
)

func newBatchCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Evaluate many students at once",
		Long: "Runs an evaluation for the listed students, or for every imported\n" +
			"student when none are listed. A student that fails is reported in\n" +
			"the results and never stops the batch.",
	}
	cmd.AddCommand(newBatchStandingCmd(a), newBatchSapCmd(a), newBatchGraduationCmd(a))
	return cmd
}

func newBatchStandingCmd(a *App) *cobra.Command {
	var term string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "standing [STUDENT_ID...]",
		Short: "Evaluate academic standing for a term",
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := a.termRequests(cmd.Context(), args, term, dryRun)
			if err != nil {
				return err
			}
			result := a.Standing.BatchEvaluate(cmd.Context(), reqs)
			if err := a.writeMetrics(); err != nil {
				return err
			}
			return a.render(cmd, result, func() string {
				return formatter.FormatBatch("Standing "+term, result, func(r *standing.AcademicStandingResult) string {
					return formatter.StandingPill(r.Standing)
				})
			})
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Term being evaluated (e.g. 2025FA)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Evaluate without recording history")
	_ = cmd.MarkFlagRequired("term")

	return cmd
}

func newBatchSapCmd(a *App) *cobra.Command {
	var term string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sap [STUDENT_ID...]",
		Short: "Evaluate satisfactory academic progress for a term",
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := a.termRequests(cmd.Context(), args, term, dryRun)
			if err != nil {
				return err
			}
			result := a.Sap.BatchEvaluate(cmd.Context(), reqs)
			if err := a.writeMetrics(); err != nil {
				return err
			}
			return a.render(cmd, result, func() string {
				return formatter.FormatBatch("SAP "+term, result, func(r *sap.SapResult) string {
					return formatter.SapPill(r.Status)
				})
			})
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Term being evaluated (e.g. 2025FA)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Evaluate without recording history")
	_ = cmd.MarkFlagRequired("term")

	return cmd
}

func newBatchGraduationCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "graduation [STUDENT_ID...]",
		Short: "Check graduation eligibility",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := a.studentIDs(cmd.Context(), args)
			if err != nil {
				return err
			}
			result := a.Graduation.BatchCheckEligibility(cmd.Context(), ids)
			if err := a.writeMetrics(); err != nil {
				return err
			}
			return a.render(cmd, result, func() string {
				return formatter.FormatBatch("Graduation", result, func(r *app.GraduationReport) string {
					if r.Result.IsEligible {
						return formatter.StyleGreen.Render("✔ Eligible")
					}
					return formatter.StyleRed.Render(fmt.Sprintf("✖ %d blocker(s)", len(r.Result.Blockers)))
				})
			})
		},
	}
}

// studentIDs returns args, or every stored student when args is empty.
func (a *App) studentIDs(ctx context.Context, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	students, err := a.History.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing students: %w", err)
	}
	ids := make([]string, len(students))
	for i, s := range students {
		ids[i] = s.ID
	}
	return ids, nil
}

func (a *App) termRequests(ctx context.Context, args []string, term string, dryRun bool) ([]app.TermRequest, error) {
	ids, err := a.studentIDs(ctx, args)
	if err != nil {
		return nil, err
	}
	reqs := make([]app.TermRequest, len(ids))
	for i, id := range ids {
		reqs[i] = app.TermRequest{StudentID: id, TermID: term, DryRun: dryRun}
	}
	return reqs, nil
}

func (a *App) writeMetrics() error {
	if a.Metrics == nil || a.MetricsFile == "" {
		return nil
	}
	if err := a.Metrics.WriteTextfile(a.MetricsFile); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}
