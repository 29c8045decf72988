package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/provost/internal/app"
	"github.com/alexanderramin/provost/internal/db"
	"github.com/alexanderramin/provost/internal/domain"
	"github.com/alexanderramin/provost/internal/importer"
	"github.com/alexanderramin/provost/internal/repository"
	"github.com/google/uuid"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportStudent(ctx context.Context, filePath string) (*app.ImportStudentResult, error) {
	schema, err := importer.LoadStudentRecord(filePath)
	if err != nil {
		return nil, loadError("student record", err)
	}
	return s.ImportStudentRecord(ctx, schema)
}

// ImportStudentRecord replaces a student's stored record with the imported
// one. Courses, holds and milestones are rewritten wholesale; standing
// history entries are upserted per term; existing enrollments are kept.
func (s *importService) ImportStudentRecord(ctx context.Context, schema *importer.StudentRecordImport) (result *app.ImportStudentResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "import-student", startedAt, fields, &err)

	if errs := importer.ValidateStudentRecord(schema); len(errs) > 0 {
		return nil, app.NewValidationError("student record", errs)
	}
	rec := importer.ConvertStudentRecord(schema)
	fields["student_id"] = rec.Student.ID

	result = &app.ImportStudentResult{
		Student:        rec.Student,
		CourseCount:    len(rec.Courses),
		HoldCount:      len(rec.Holds),
		MilestoneCount: len(rec.Milestones),
		HistoryCount:   len(rec.StandingHistory),
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := NewSQLiteRepositories(tx)

		existing, err := repos.Students.GetByID(ctx, rec.Student.ID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			result.Created = true
			if err := repos.Students.Create(ctx, rec.Student); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			rec.Student.CreatedAt = existing.CreatedAt
			if err := repos.Students.Update(ctx, rec.Student); err != nil {
				return err
			}
			if err := clearStudentRecord(ctx, repos, rec.Student.ID); err != nil {
				return err
			}
		}

		for i := range rec.Courses {
			if err := repos.Courses.Create(ctx, &rec.Courses[i]); err != nil {
				return fmt.Errorf("creating course %q: %w", rec.Courses[i].CourseCode, err)
			}
		}
		for i := range rec.Holds {
			if err := repos.Holds.Create(ctx, &rec.Holds[i]); err != nil {
				return fmt.Errorf("creating hold %q: %w", rec.Holds[i].Type, err)
			}
		}
		for i := range rec.Milestones {
			if err := repos.Milestones.Create(ctx, &rec.Milestones[i]); err != nil {
				return fmt.Errorf("creating milestone %q: %w", rec.Milestones[i].Name, err)
			}
		}
		for i := range rec.StandingHistory {
			if err := repos.StandingHistory.Record(ctx, &rec.StandingHistory[i]); err != nil {
				return fmt.Errorf("recording standing for term %s: %w", rec.StandingHistory[i].TermID, err)
			}
		}

		enrollments, err := enrollStudent(ctx, repos, rec.Student.ID, rec.ProgramCodes)
		if err != nil {
			return err
		}
		result.Enrollments = enrollments
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["created"] = result.Created
	fields["course_count"] = result.CourseCount
	return result, nil
}

func clearStudentRecord(ctx context.Context, repos Repositories, studentID string) error {
	if err := repos.Courses.DeleteByStudent(ctx, studentID); err != nil {
		return err
	}
	if err := repos.Holds.DeleteByStudent(ctx, studentID); err != nil {
		return err
	}
	return repos.Milestones.DeleteByStudent(ctx, studentID)
}

// enrollStudent creates an active enrollment for each program code the
// student is not already enrolled in and returns every enrollment.
func enrollStudent(ctx context.Context, repos Repositories, studentID string, codes []string) ([]*domain.StudentProgram, error) {
	current, err := repos.Enrollments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	enrolled := make(map[string]bool, len(current))
	for _, sp := range current {
		enrolled[sp.ProgramID] = true
	}

	for _, code := range codes {
		program, err := repos.Programs.GetByCode(ctx, code)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, app.NewValidationError("student record",
				[]error{fmt.Errorf("programs: unknown program code %q", code)})
		}
		if err != nil {
			return nil, err
		}
		if enrolled[program.ID] {
			continue
		}
		sp := &domain.StudentProgram{
			ID:        uuid.New().String(),
			StudentID: studentID,
			ProgramID: program.ID,
			Status:    domain.EnrollmentActive,
			CreatedAt: time.Now().UTC(),
		}
		if err := repos.Enrollments.Create(ctx, sp); err != nil {
			return nil, fmt.Errorf("enrolling in %s: %w", code, err)
		}
		enrolled[program.ID] = true
		current = append(current, sp)
	}
	return current, nil
}

func (s *importService) ImportProgram(ctx context.Context, filePath string) (*app.ImportProgramResult, error) {
	schema, err := importer.LoadProgramDefinition(filePath)
	if err != nil {
		return nil, loadError("program definition", err)
	}
	return s.ImportProgramDefinition(ctx, schema)
}

// ImportProgramDefinition creates the program or, when its code already
// exists, updates it in place and replaces its requirements. The program
// keeps its ID so enrollments stay attached.
func (s *importService) ImportProgramDefinition(ctx context.Context, schema *importer.ProgramDefinitionImport) (result *app.ImportProgramResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "import-program", startedAt, fields, &err)

	if errs := importer.ValidateProgramDefinition(schema); len(errs) > 0 {
		return nil, app.NewValidationError("program definition", errs)
	}
	def := importer.ConvertProgramDefinition(schema)
	fields["program"] = def.Program.Code

	result = &app.ImportProgramResult{Program: def.Program, RequirementCount: len(def.Requirements)}
	for _, r := range def.Requirements {
		result.GroupCount += len(r.Groups)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		programs := repository.NewSQLiteProgramRepo(tx)

		existing, err := programs.GetByCode(ctx, def.Program.Code)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			result.Created = true
			if err := programs.Create(ctx, def.Program); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			def.Program.ID = existing.ID
			if err := programs.Update(ctx, def.Program); err != nil {
				return err
			}
		}

		for i := range def.Requirements {
			def.Requirements[i].ProgramID = def.Program.ID
		}
		return programs.ReplaceRequirements(ctx, def.Program.ID, def.Requirements)
	})
	if err != nil {
		return nil, err
	}
	fields["created"] = result.Created
	fields["requirement_count"] = result.RequirementCount
	return result, nil
}

// loadError turns a structural schema failure into a validation error so
// callers see it the same way as a domain rule violation.
func loadError(subject string, err error) error {
	var shapeErr *importer.ShapeError
	if !errors.As(err, &shapeErr) {
		return fmt.Errorf("loading import file: %w", err)
	}
	problems := make([]error, len(shapeErr.Problems))
	for i, p := range shapeErr.Problems {
		problems[i] = errors.New(p)
	}
	return app.NewValidationError(subject, problems)
}
