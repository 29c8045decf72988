package service

import (
	"github.com/alexanderramin/provost/internal/db"
	"github.com/alexanderramin/provost/internal/repository"
)

// Repositories groups the stores the use cases read from.
type Repositories struct {
	Students        repository.StudentRepo
	Programs        repository.ProgramRepo
	Enrollments     repository.StudentProgramRepo
	Courses         repository.CourseRepo
	Holds           repository.HoldRepo
	Milestones      repository.MilestoneRepo
	StandingHistory repository.StandingHistoryRepo
	SapHistory      repository.SapHistoryRepo
	Conferrals      repository.ConferralRepo
}

// NewSQLiteRepositories binds every store to conn. Use cases call it with
// the transaction handle inside UnitOfWork.WithinTx.
func NewSQLiteRepositories(conn db.DBTX) Repositories {
	return Repositories{
		Students:        repository.NewSQLiteStudentRepo(conn),
		Programs:        repository.NewSQLiteProgramRepo(conn),
		Enrollments:     repository.NewSQLiteStudentProgramRepo(conn),
		Courses:         repository.NewSQLiteCourseRepo(conn),
		Holds:           repository.NewSQLiteHoldRepo(conn),
		Milestones:      repository.NewSQLiteMilestoneRepo(conn),
		StandingHistory: repository.NewSQLiteStandingHistoryRepo(conn),
		SapHistory:      repository.NewSQLiteSapHistoryRepo(conn),
		Conferrals:      repository.NewSQLiteConferralRepo(conn),
	}
}
