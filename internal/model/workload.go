package model

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/ppiankov/alphacut/internal/fuzzy"
	"github.com/ppiankov/alphacut/internal/numeric"
	"gopkg.in/src-d/go-errors.v1"
	"gopkg.in/yaml.v3"
)

// ErrInvalidWorkload is returned when a workload document is inconsistent
var ErrInvalidWorkload = errors.NewKind("invalid workload: %s")

// Operation kinds accepted in a workload
const (
	OpAdd = "add"
	OpSub = "sub"
)

// Workload describes named fuzzy sets and the operations to evaluate on them
type Workload struct {
	Representation string      `yaml:"representation"`        // Level kind: float, decimal or rational
	Breakpoints    string      `yaml:"breakpoints,omitempty"` // Breakpoint kind, defaults to Representation
	Sets           []SetSpec   `yaml:"sets"`
	Operations     []Operation `yaml:"operations,omitempty"`
}

// SetSpec defines one fuzzy set either by explicit cuts or by samples
type SetSpec struct {
	Name    string      `yaml:"name"`
	Cuts    []CutSpec   `yaml:"cuts,omitempty"`
	Samples *SampleSpec `yaml:"samples,omitempty"`
}

// CutSpec is one alpha-cut given as text
type CutSpec struct {
	Level string   `yaml:"level"`
	Left  []string `yaml:"left"`
	Right []string `yaml:"right"`
}

// SampleSpec derives cuts from a sampled membership function
type SampleSpec struct {
	Levels   []string   `yaml:"levels"`
	Function string     `yaml:"function,omitempty"` // abs_sin, gauss or triangle
	From     float64    `yaml:"from,omitempty"`
	To       float64    `yaml:"to,omitempty"` // exclusive
	Step     float64    `yaml:"step,omitempty"`
	Scale    float64    `yaml:"scale,omitempty"`
	Center   float64    `yaml:"center,omitempty"`
	Points   [][]string `yaml:"points,omitempty"` // explicit [x, membership] pairs
}

// Operation combines two named sets with a t-norm
type Operation struct {
	Name      string   `yaml:"name"`
	Op        string   `yaml:"op"`
	Left      string   `yaml:"left"`
	Right     string   `yaml:"right"`
	Tnorm     string   `yaml:"tnorm,omitempty"`
	Parameter *float64 `yaml:"parameter,omitempty"`
}

// LoadWorkload reads and validates a workload file
func LoadWorkload(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workload: %w", err)
	}
	return ParseWorkload(data)
}

// ParseWorkload decodes and validates a YAML workload
func ParseWorkload(data []byte) (*Workload, error) {
	var w Workload
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode workload: %w", err)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

// Validate checks names and shapes. References between operations are
// resolved later, when the evaluation plan is built.
func (w *Workload) Validate() error {
	if _, _, err := w.Kinds(); err != nil {
		return err
	}
	if len(w.Sets) == 0 {
		return ErrInvalidWorkload.New("no sets defined")
	}

	seen := make(map[string]bool)
	claim := func(name, what string) error {
		if strings.TrimSpace(name) == "" {
			return ErrInvalidWorkload.New(what + " without a name")
		}
		if seen[name] {
			return ErrInvalidWorkload.New(fmt.Sprintf("name %q is defined twice", name))
		}
		seen[name] = true
		return nil
	}

	for _, s := range w.Sets {
		if err := claim(s.Name, "set"); err != nil {
			return err
		}
		if (len(s.Cuts) > 0) == (s.Samples != nil) {
			return ErrInvalidWorkload.New(fmt.Sprintf("set %q needs either cuts or samples", s.Name))
		}
	}
	for _, op := range w.Operations {
		if err := claim(op.Name, "operation"); err != nil {
			return err
		}
		switch op.Op {
		case OpAdd, OpSub:
		default:
			return ErrInvalidWorkload.New(fmt.Sprintf("operation %q: unknown op %q", op.Name, op.Op))
		}
		if _, err := op.ParseTnorm(); err != nil {
			return ErrInvalidWorkload.Wrap(err, fmt.Sprintf("operation %q", op.Name))
		}
	}
	return nil
}

// Kinds returns the level and breakpoint representations
func (w *Workload) Kinds() (level, breakpoints numeric.Kind, err error) {
	rep := w.Representation
	if rep == "" {
		rep = "float"
	}
	level, err = numeric.ParseKind(rep)
	if err != nil {
		return 0, 0, ErrInvalidWorkload.Wrap(err, "representation")
	}
	if level == numeric.KindInt {
		return 0, 0, ErrInvalidWorkload.New("levels cannot use the int representation")
	}
	if w.Breakpoints == "" {
		return level, level, nil
	}
	breakpoints, err = numeric.ParseKind(w.Breakpoints)
	if err != nil {
		return 0, 0, ErrInvalidWorkload.Wrap(err, "breakpoints")
	}
	return level, breakpoints, nil
}

// ParseTnorm resolves the operation's t-norm, defaulting to min
func (o Operation) ParseTnorm() (fuzzy.Tnorm, error) {
	name := o.Tnorm
	if name == "" {
		name = fuzzy.Min{}.Name()
	}
	return fuzzy.ParseTnorm(name, o.Parameter)
}

// Build creates the fuzzy set described by s
func (s SetSpec) Build(levelKind, bpKind numeric.Kind) (*fuzzy.FuzzySet, error) {
	if s.Samples != nil {
		return s.Samples.Build(levelKind, bpKind)
	}
	cuts := make([]fuzzy.AlphaCut, 0, len(s.Cuts))
	for _, c := range s.Cuts {
		cut, err := c.Build(levelKind, bpKind)
		if err != nil {
			return nil, err
		}
		cuts = append(cuts, cut)
	}
	return fuzzy.NewFuzzySet(cuts...)
}

// Build parses the cut in the given representations
func (c CutSpec) Build(levelKind, bpKind numeric.Kind) (fuzzy.AlphaCut, error) {
	level, err := parseLevel(levelKind, c.Level)
	if err != nil {
		return fuzzy.AlphaCut{}, err
	}
	left, err := numeric.ParseAll(bpKind, c.Left)
	if err != nil {
		return fuzzy.AlphaCut{}, err
	}
	right, err := numeric.ParseAll(bpKind, c.Right)
	if err != nil {
		return fuzzy.AlphaCut{}, err
	}
	return fuzzy.NewAlphaCutOf(level, left, right)
}

func parseLevel(kind numeric.Kind, text string) (fuzzy.Alpha, error) {
	v, err := numeric.Parse(kind, text)
	if err != nil {
		return fuzzy.Alpha{}, err
	}
	return fuzzy.NewAlpha(v, false)
}

// membership functions for sampled sets; values are already in [0, 1]
var membership = map[string]func(x, center, scale float64) float64{
	"abs_sin": func(x, center, scale float64) float64 {
		return math.Abs(math.Sin((x - center) / scale))
	},
	"gauss": func(x, center, scale float64) float64 {
		d := (x - center) / scale
		return math.Exp(-d * d / 2)
	},
	"triangle": func(x, center, scale float64) float64 {
		return math.Max(0, 1-math.Abs(x-center)/scale)
	},
}

// Build samples the membership function, or uses the explicit points, and
// derives one cut per level.
func (s *SampleSpec) Build(levelKind, bpKind numeric.Kind) (*fuzzy.FuzzySet, error) {
	levels := make([]fuzzy.Alpha, 0, len(s.Levels))
	for _, text := range s.Levels {
		a, err := parseLevel(levelKind, text)
		if err != nil {
			return nil, err
		}
		levels = append(levels, a)
	}
	samples, err := s.samples(levelKind, bpKind)
	if err != nil {
		return nil, err
	}
	return fuzzy.FromPoints(levels, samples)
}

func (s *SampleSpec) samples(levelKind, bpKind numeric.Kind) ([]fuzzy.Sample, error) {
	if len(s.Points) > 0 {
		out := make([]fuzzy.Sample, 0, len(s.Points))
		for _, p := range s.Points {
			if len(p) != 2 {
				return nil, ErrInvalidWorkload.New(fmt.Sprintf("sample point %v must be [x, membership]", p))
			}
			x, err := numeric.Parse(bpKind, p[0])
			if err != nil {
				return nil, err
			}
			y, err := numeric.Parse(levelKind, p[1])
			if err != nil {
				return nil, err
			}
			out = append(out, fuzzy.Sample{X: x, Y: y})
		}
		return out, nil
	}

	fn, ok := membership[s.Function]
	if !ok {
		return nil, ErrInvalidWorkload.New(fmt.Sprintf("unknown membership function %q", s.Function))
	}
	step, scale := s.Step, s.Scale
	if step == 0 {
		step = 1
	}
	if scale == 0 {
		scale = 1
	}
	if step < 0 || s.To <= s.From {
		return nil, ErrInvalidWorkload.New(fmt.Sprintf("sample range [%g, %g) with step %g is empty", s.From, s.To, step))
	}

	n := int(math.Ceil((s.To - s.From) / step))
	out := make([]fuzzy.Sample, 0, n)
	for i := 0; i < n; i++ {
		xf := s.From + float64(i)*step
		x, err := numeric.FromFloat(bpKind, xf)
		if err != nil {
			return nil, err
		}
		y, err := numeric.FromFloat(levelKind, fn(xf, s.Center, scale))
		if err != nil {
			return nil, err
		}
		out = append(out, fuzzy.Sample{X: x, Y: y})
	}
	return out, nil
}
