package service

import (
	"context"

	"github.com/alexanderramin/provost/internal/app"
	"github.com/alexanderramin/provost/internal/domain"
	"github.com/alexanderramin/provost/internal/sap"
	"github.com/alexanderramin/provost/internal/standing"
)

type ImportService interface {
	app.ImportStudentUseCase
	app.ImportProgramUseCase
}

type AuditService interface {
	app.AuditUseCase
}

type StandingService interface {
	app.StandingUseCase
	BatchEvaluate(ctx context.Context, reqs []app.TermRequest) *app.BatchResult[standing.AcademicStandingResult]
}

type SapService interface {
	app.SapUseCase
	BatchEvaluate(ctx context.Context, reqs []app.TermRequest) *app.BatchResult[sap.SapResult]
}

type GraduationService interface {
	app.GraduationUseCase
	BatchCheckEligibility(ctx context.Context, studentIDs []string) *app.BatchResult[app.GraduationReport]
}

type HistoryService interface {
	app.HistoryUseCase
	ListStudents(ctx context.Context) ([]*domain.Student, error)
}
