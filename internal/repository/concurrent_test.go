package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/provost/internal/db"
	"github.com/alexanderramin/provost/internal/domain"
	"github.com/alexanderramin/provost/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFileTestDB creates a file-backed store in a temp directory, the setup
// batch runs use in production.
func newFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "provost.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_BatchHistoryWrites mirrors a batch standing run:
// many goroutines each read a student's record and write one history entry.
func TestConcurrentAccess_BatchHistoryWrites(t *testing.T) {
	database := newFileTestDB(t)
	ctx := context.Background()

	students := NewSQLiteStudentRepo(database)
	courses := NewSQLiteCourseRepo(database)
	history := NewSQLiteStandingHistoryRepo(database)

	const studentCount = 25
	ids := make([]string, studentCount)
	for i := range ids {
		s := testutil.NewTestStudent(fmt.Sprintf("Student-%02d", i))
		require.NoError(t, students.Create(ctx, s))
		c := testutil.NewTestCourse("CS 101", 3, testutil.WithGrade("B"), testutil.WithOwner(s.ID))
		require.NoError(t, courses.Create(ctx, &c))
		ids[i] = s.ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(studentID string) {
			defer wg.Done()
			record, err := courses.ListByStudent(ctx, studentID)
			if err != nil {
				t.Errorf("listing courses for %s: %v", studentID, err)
				return
			}
			if len(record) != 1 {
				t.Errorf("student %s: got %d courses", studentID, len(record))
				return
			}
			err = history.Record(ctx, &domain.StandingHistoryEntry{
				ID:            uuid.New().String(),
				StudentID:     studentID,
				TermID:        "2025FA",
				Standing:      domain.StandingGood,
				CumulativeGPA: 3.0,
				RecordedAt:    time.Now().UTC(),
			})
			if err != nil {
				t.Errorf("recording history for %s: %v", studentID, err)
			}
		}(id)
	}
	wg.Wait()

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM standing_history`).Scan(&n))
	assert.Equal(t, studentCount, n)
}
