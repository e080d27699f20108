package engine

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-errors.v1"

	"github.com/ppiankov/alphacut/internal/cache"
	"github.com/ppiankov/alphacut/internal/fuzzy"
	"github.com/ppiankov/alphacut/internal/model"
	"github.com/ppiankov/alphacut/internal/worker"
)

// Error kinds returned by the engine. They wrap the underlying fuzzy error,
// so fuzzy kinds still match with Kind.Is.
var (
	ErrUnknownSet = errors.NewKind("operation %q references unknown set %q")
	ErrCycle      = errors.NewKind("operations depend on each other: %s")
	ErrBuildSet   = errors.NewKind("build set %q")
	ErrOperation  = errors.NewKind("evaluate operation %q")
)

// NamedSet is a fuzzy set together with its workload name
type NamedSet struct {
	Name string
	Set  *fuzzy.FuzzySet
}

// OperationResult is the outcome of one workload operation
type OperationResult struct {
	Operation model.Operation
	Tnorm     string
	Set       *fuzzy.FuzzySet
	Cached    bool
	Duration  time.Duration
}

// Result holds the input sets and every operation result in workload order
type Result struct {
	Sets       []NamedSet
	Operations []OperationResult
}

// All returns input sets followed by operation results
func (r *Result) All() []NamedSet {
	out := append([]NamedSet(nil), r.Sets...)
	for _, op := range r.Operations {
		out = append(out, NamedSet{Name: op.Operation.Name, Set: op.Set})
	}
	return out
}

// Lookup finds a set or operation result by name
func (r *Result) Lookup(name string) (*fuzzy.FuzzySet, bool) {
	for _, s := range r.All() {
		if s.Name == name {
			return s.Set, true
		}
	}
	return nil, false
}

// Engine orchestrates building sets and evaluating operations
type Engine struct {
	config *model.Config
	cache  cache.Cache // nil when caching is disabled
	batch  *worker.BatchEvaluator
	log    logrus.FieldLogger
}

// New creates an engine. A nil logger discards all output.
func New(cfg *model.Config, log logrus.FieldLogger) *Engine {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	e := &Engine{
		config: cfg,
		log:    log,
	}
	if cfg.Engine.CacheEnabled {
		e.cache = cache.NewMemoryCache(cfg.Engine.CacheTTL, cfg.Engine.CacheCleanup)
	}
	e.batch = worker.NewBatchEvaluator(e, cfg.Engine.Workers)
	return e
}

// Combine applies op to left and right with tn
func Combine(op string, left, right *fuzzy.FuzzySet, tn fuzzy.Tnorm) (*fuzzy.FuzzySet, error) {
	switch op {
	case model.OpAdd:
		return left.AddWithTnorm(right, tn)
	case model.OpSub:
		return left.SubWithTnorm(right, tn)
	default:
		return nil, fuzzy.ErrValue.New("unknown operation " + op)
	}
}

// Evaluate computes one task, consulting the cache first
func (e *Engine) Evaluate(ctx context.Context, task worker.Task) (*fuzzy.FuzzySet, bool, error) {
	var key string
	if e.cache != nil {
		key = cache.CacheKey(task.Op, task.Tnorm.Name(), task.Left, task.Right)
		if fs, ok := e.cache.Get(key); ok {
			return fs, true, nil
		}
	}

	fs, err := Combine(task.Op, task.Left, task.Right, task.Tnorm)
	if err != nil {
		return nil, false, err
	}

	if e.cache != nil {
		if err := e.cache.Set(key, fs, e.config.Engine.CacheTTL); err != nil {
			e.log.WithError(err).WithField("operation", task.Name).Warn("cache store failed")
		}
	}
	return fs, false, nil
}

// BuildSets builds every set of the workload in order
func (e *Engine) BuildSets(w *model.Workload) ([]NamedSet, error) {
	levelKind, bpKind, err := w.Kinds()
	if err != nil {
		return nil, err
	}

	out := make([]NamedSet, 0, len(w.Sets))
	for _, spec := range w.Sets {
		fs, err := spec.Build(levelKind, bpKind)
		if err != nil {
			return nil, ErrBuildSet.Wrap(err, spec.Name)
		}
		e.log.WithFields(logrus.Fields{
			"set":  spec.Name,
			"cuts": fs.Len(),
		}).Debug("set built")
		out = append(out, NamedSet{Name: spec.Name, Set: fs})
	}
	return out, nil
}

// Run builds the workload's sets and evaluates its operations wave by wave
func (e *Engine) Run(ctx context.Context, w *model.Workload) (*Result, error) {
	start := time.Now()
	e.log.WithFields(logrus.Fields{
		"sets":       len(w.Sets),
		"operations": len(w.Operations),
	}).Info("workload loaded")

	sets, err := e.BuildSets(w)
	if err != nil {
		return nil, err
	}

	waves, err := Plan(w.Sets, w.Operations)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]*fuzzy.FuzzySet, len(sets)+len(w.Operations))
	for _, s := range sets {
		resolved[s.Name] = s.Set
	}

	results := make([]OperationResult, len(w.Operations))
	for n, wave := range waves {
		tasks := make([]worker.Task, 0, len(wave))
		for _, i := range wave {
			op := w.Operations[i]
			tn, err := op.ParseTnorm()
			if err != nil {
				return nil, ErrOperation.Wrap(err, op.Name)
			}
			tasks = append(tasks, worker.Task{
				Index: i,
				Name:  op.Name,
				Op:    op.Op,
				Left:  resolved[op.Left],
				Right: resolved[op.Right],
				Tnorm: tn,
			})
		}

		e.log.WithFields(logrus.Fields{"wave": n, "tasks": len(tasks)}).Debug("evaluating wave")
		for _, r := range e.batch.EvaluateAll(ctx, tasks) {
			op := w.Operations[r.Task.Index]
			if r.Error != nil {
				return nil, ErrOperation.Wrap(r.Error, op.Name)
			}
			e.log.WithFields(logrus.Fields{
				"operation": op.Name,
				"tnorm":     r.Task.Tnorm.Name(),
				"cached":    r.Cached,
				"duration":  r.Duration,
			}).Debug("operation evaluated")

			resolved[op.Name] = r.Set
			results[r.Task.Index] = OperationResult{
				Operation: op,
				Tnorm:     r.Task.Tnorm.Name(),
				Set:       r.Set,
				Cached:    r.Cached,
				Duration:  r.Duration,
			}
		}
	}

	e.log.WithFields(logrus.Fields{
		"operations": len(results),
		"duration":   time.Since(start),
	}).Info("workload evaluated")

	return &Result{Sets: sets, Operations: results}, nil
}
