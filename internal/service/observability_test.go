package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf, slog.LevelInfo)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "standing",
		Duration: 12 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"term_id": "2025FA"},
	})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "sap",
		Err:  errors.New("student stu-9: not found"),
	})

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=service_use_case use_case=standing duration_ms=12 success=true")
	assert.Contains(t, out, "term_id=2025FA")
	assert.Contains(t, out, `level=ERROR msg=service_use_case use_case=sap`)
	assert.Contains(t, out, `error="student stu-9: not found"`)
}

func TestLogUseCaseObserver_BatchItemsAtDebug(t *testing.T) {
	var quiet, verbose bytes.Buffer
	ctx := context.Background()

	NewLogUseCaseObserver(&quiet, slog.LevelInfo).(BatchItemObserver).ObserveBatchItem(ctx, "sap", true)
	NewLogUseCaseObserver(&verbose, slog.LevelDebug).(BatchItemObserver).ObserveBatchItem(ctx, "sap", true)

	assert.Empty(t, quiet.String())
	assert.Contains(t, verbose.String(), "msg=batch_item batch=sap success=true")
}

func TestNewLogUseCaseObserver_NilWriter(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil, slog.LevelInfo))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

type countingBatchObserver struct {
	recordingObserver
	items int
}

func (c *countingBatchObserver) ObserveBatchItem(context.Context, string, bool) { c.items++ }

func TestMultiObserver(t *testing.T) {
	plain := &recordingObserver{}
	batch := &countingBatchObserver{}
	obs := NewMultiObserver(plain, nil, batch)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "audit", Success: true})
	itemObs, ok := obs.(BatchItemObserver)
	require.True(t, ok)
	itemObs.ObserveBatchItem(context.Background(), "standing", false)

	assert.Len(t, plain.events, 1)
	assert.Len(t, batch.events, 1)
	assert.Equal(t, 1, batch.items)

	assert.IsType(t, NoopUseCaseObserver{}, NewMultiObserver(nil))
	assert.Same(t, plain, NewMultiObserver(plain))
}
