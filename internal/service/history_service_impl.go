package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/provost/internal/app"
	"github.com/alexanderramin/provost/internal/domain"
	"github.com/alexanderramin/provost/internal/repository"
)

type historyService struct {
	repos Repositories
}

func NewHistoryService(repos Repositories) HistoryService {
	return &historyService{repos: repos}
}

func (s *historyService) ListStudents(ctx context.Context) ([]*domain.Student, error) {
	return s.repos.Students.List(ctx)
}

func (s *historyService) StudentHistory(ctx context.Context, studentID string) (*app.StudentHistory, error) {
	student, err := s.repos.Students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	standing, err := s.repos.StandingHistory.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	sapEntries, err := s.repos.SapHistory.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	programs, err := s.repos.Enrollments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	history := &app.StudentHistory{
		Student:  student,
		Standing: standing,
		Sap:      sapEntries,
		Programs: programs,
	}
	for _, sp := range programs {
		c, err := s.repos.Conferrals.GetByStudentProgram(ctx, sp.ID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("loading conferral for %s: %w", sp.ID, err)
		}
		history.Conferrals = append(history.Conferrals, *c)
	}
	return history, nil
}
