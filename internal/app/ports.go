package app

import (
	"context"

	"github.com/alexanderramin/provost/internal/domain"
	"github.com/alexanderramin/provost/internal/graduation"
	"github.com/alexanderramin/provost/internal/importer"
	"github.com/alexanderramin/provost/internal/sap"
	"github.com/alexanderramin/provost/internal/standing"
)

type ImportStudentUseCase interface {
	ImportStudent(ctx context.Context, filePath string) (*ImportStudentResult, error)
	ImportStudentRecord(ctx context.Context, schema *importer.StudentRecordImport) (*ImportStudentResult, error)
}

type ImportProgramUseCase interface {
	ImportProgram(ctx context.Context, filePath string) (*ImportProgramResult, error)
	ImportProgramDefinition(ctx context.Context, schema *importer.ProgramDefinitionImport) (*ImportProgramResult, error)
}

type AuditUseCase interface {
	AuditStudentProgram(ctx context.Context, studentProgramID string) (*AuditReport, error)
}

type StandingUseCase interface {
	EvaluateTerm(ctx context.Context, req TermRequest) (*standing.AcademicStandingResult, error)
}

type SapUseCase interface {
	EvaluateTerm(ctx context.Context, req TermRequest) (*sap.SapResult, error)
}

type GraduationUseCase interface {
	CheckEligibility(ctx context.Context, studentID string) (*GraduationReport, error)
	CheckConferral(ctx context.Context, req ConferralRequest) (*ConferralReport, error)
	LatinHonors(ctx context.Context, studentID string) (*graduation.LatinHonorsResult, error)
}

type HistoryUseCase interface {
	StudentHistory(ctx context.Context, studentID string) (*StudentHistory, error)
}

// StudentHistory is everything the evaluations have recorded for a student.
type StudentHistory struct {
	Student    *domain.Student               `json:"student"`
	Standing   []domain.StandingHistoryEntry `json:"standing"`
	Sap        []domain.SapHistoryEntry      `json:"sap"`
	Programs   []*domain.StudentProgram      `json:"programs"`
	Conferrals []domain.Conferral            `json:"conferrals,omitempty"`
}
