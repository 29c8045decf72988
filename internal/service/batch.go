package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/provost/internal/app"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type batchRun[T any] struct {
	name     string
	limit    int
	observer UseCaseObserver
	ids      []string
	eval     func(ctx context.Context, i int) (*T, error)
}

// runBatch evaluates every item with at most limit in flight. A failing,
// panicking or canceled item becomes a failed entry; the batch itself
// always completes. Results keep input order.
func runBatch[T any](ctx context.Context, run batchRun[T]) *app.BatchResult[T] {
	result := app.NewBatchResult[T](uuid.New().String(), len(run.ids))
	itemObserver, _ := run.observer.(BatchItemObserver)

	limit := run.limit
	if limit < 1 {
		limit = 1
	}
	var g errgroup.Group
	g.SetLimit(limit)

	for i := range run.ids {
		i := i
		item := &result.Items[i]
		item.StudentID = run.ids[i]
		g.Go(func() error {
			out, err := evalItem(ctx, run, i)
			if err != nil {
				item.Error = err.Error()
			} else {
				item.Result = out
			}
			if itemObserver != nil {
				itemObserver.ObserveBatchItem(ctx, run.name, err == nil)
			}
			return nil
		})
	}
	_ = g.Wait()
	return result
}

func evalItem[T any](ctx context.Context, run batchRun[T], i int) (out *T, err error) {
	defer func() {
		if p := recover(); p != nil {
			out = nil
			err = fmt.Errorf("student %s: panic: %v", run.ids[i], p)
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("student %s: %w", run.ids[i], err)
	}
	out, err = run.eval(ctx, i)
	if err == nil && out == nil {
		err = fmt.Errorf("student %s: no result", run.ids[i])
	}
	return out, err
}
