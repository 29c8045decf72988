package app

import "sort"

// BatchItem is one entry of a batch run. Exactly one of Result and Error is
// set.
type BatchItem[T any] struct {
	Index     int    `json:"index"`
	StudentID string `json:"student_id"`
	Result    *T     `json:"result,omitempty"`
	Error     string `json:"error,omitempty"`
}

// BatchResult collects per-item outcomes in input order. A failed item never
// aborts the batch.
type BatchResult[T any] struct {
	RunID        string         `json:"run_id"`
	Items        []BatchItem[T] `json:"items"`
	Succeeded    int            `json:"succeeded"`
	Failed       int            `json:"failed"`
	StatusCounts map[string]int `json:"status_counts"`
}

// NewBatchResult sizes a result for n items, each pre-indexed.
func NewBatchResult[T any](runID string, n int) *BatchResult[T] {
	items := make([]BatchItem[T], n)
	for i := range items {
		items[i].Index = i
	}
	return &BatchResult[T]{RunID: runID, Items: items, StatusCounts: map[string]int{}}
}

// Tally recomputes the counters from the items. status maps a successful
// result to the label counted in StatusCounts.
func (b *BatchResult[T]) Tally(status func(*T) string) {
	b.Succeeded, b.Failed = 0, 0
	b.StatusCounts = map[string]int{}
	for _, item := range b.Items {
		if item.Result == nil {
			b.Failed++
			continue
		}
		b.Succeeded++
		if status != nil {
			b.StatusCounts[status(item.Result)]++
		}
	}
}

// Statuses returns the StatusCounts keys in a stable order.
func (b *BatchResult[T]) Statuses() []string {
	keys := make([]string, 0, len(b.StatusCounts))
	for k := range b.StatusCounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
