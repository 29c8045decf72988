package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alexanderramin/provost/internal/db"
)

// NewTestDB opens a migrated in-memory store that closes with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// FailOnNthExecUoW is a UnitOfWork that returns Err from the FailOn-th
// ExecContext inside the transaction, counting from 1. With Match set only
// statements containing Match are counted, so a test can target "INSERT
// INTO sap_history" without knowing what runs before it. Reads are never
// counted. Services use it to show a write that fails halfway leaves
// nothing behind.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Match  string
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingExec{DBTX: tx, uow: u})
	})
}

type failingExec struct {
	db.DBTX
	uow   *FailOnNthExecUoW
	count atomic.Int32
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.Match == "" || strings.Contains(query, f.uow.Match) {
		if f.count.Add(1) == f.uow.FailOn {
			return nil, fmt.Errorf("exec %d: %w", f.uow.FailOn, f.uow.Err)
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
