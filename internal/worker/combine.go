package worker

import (
	"context"
	"sort"
	"time"

	"github.com/ppiankov/alphacut/internal/fuzzy"
)

// Task is one binary operation on two resolved fuzzy sets
type Task struct {
	Index int // position in the submitting batch
	Name  string
	Op    string // add or sub
	Left  *fuzzy.FuzzySet
	Right *fuzzy.FuzzySet
	Tnorm fuzzy.Tnorm
}

// Evaluator computes the result of a task
type Evaluator interface {
	Evaluate(ctx context.Context, task Task) (*fuzzy.FuzzySet, bool, error)
}

// CombineJob evaluates a task with an Evaluator
type CombineJob struct {
	Task      Task
	Evaluator Evaluator
}

// Execute executes the combine job
func (j *CombineJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &CombineResult{Task: j.Task, Error: err}
	}
	start := time.Now()
	set, cached, err := j.Evaluator.Evaluate(ctx, j.Task)
	return &CombineResult{
		Task:     j.Task,
		Set:      set,
		Cached:   cached,
		Duration: time.Since(start),
		Error:    err,
	}
}

// CombineResult represents the result of a combine job
type CombineResult struct {
	Task     Task
	Set      *fuzzy.FuzzySet
	Cached   bool // served from the cache
	Duration time.Duration
	Error    error
}

// GetError returns the error from the combine result
func (r *CombineResult) GetError() error {
	return r.Error
}

// BatchEvaluator evaluates independent tasks concurrently
type BatchEvaluator struct {
	evaluator   Evaluator
	concurrency int
}

// NewBatchEvaluator creates a new batch evaluator
func NewBatchEvaluator(evaluator Evaluator, concurrency int) *BatchEvaluator {
	return &BatchEvaluator{
		evaluator:   evaluator,
		concurrency: concurrency,
	}
}

// EvaluateAll runs every task and returns one result per task ordered by
// Task.Index. Indexes must be unique. Tasks that never ran because ctx ended
// carry ctx's error.
func (b *BatchEvaluator) EvaluateAll(ctx context.Context, tasks []Task) []*CombineResult {
	if len(tasks) == 0 {
		return []*CombineResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, task := range tasks {
		if !pool.Submit(&CombineJob{Task: task, Evaluator: b.evaluator}) {
			break
		}
	}

	results := pool.Wait()

	out := make([]*CombineResult, 0, len(tasks))
	done := make(map[int]bool, len(results))
	for _, result := range results {
		r := result.(*CombineResult)
		done[r.Task.Index] = true
		out = append(out, r)
	}
	// Jobs dropped by cancellation never ran
	for _, task := range tasks {
		if done[task.Index] {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		out = append(out, &CombineResult{Task: task, Error: err})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Task.Index < out[j].Task.Index
	})
	return out
}
