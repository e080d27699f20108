package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/alphacut/internal/fuzzy"
	"github.com/ppiankov/alphacut/internal/numeric"
)

const sampleWorkload = `
representation: float
breakpoints: int
sets:
  - name: a
    cuts:
      - {level: "1.0", left: ["0"], right: ["1"]}
  - name: wave
    samples:
      levels: ["0", "0.1", "0.2", "1"]
      function: abs_sin
      from: 0
      to: 100
      step: 1
      scale: 20
operations:
  - {name: sum, op: add, left: a, right: a, tnorm: min}
  - {name: diff, op: sub, left: sum, right: a, tnorm: sklar, parameter: 0.5}
`

func TestParseWorkload(t *testing.T) {
	w, err := ParseWorkload([]byte(sampleWorkload))
	require.NoError(t, err)

	require.Len(t, w.Sets, 2)
	require.Len(t, w.Operations, 2)
	require.NotNil(t, w.Operations[1].Parameter)
	assert.Equal(t, 0.5, *w.Operations[1].Parameter)

	level, bp, err := w.Kinds()
	require.NoError(t, err)
	assert.Equal(t, numeric.KindFloat, level)
	assert.Equal(t, numeric.KindInt, bp)

	tn, err := w.Operations[1].ParseTnorm()
	require.NoError(t, err)
	assert.Equal(t, "sklar(0.5)", tn.Name())
}

func TestLoadWorkload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workload.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleWorkload), 0o644))

	w, err := LoadWorkload(path)
	require.NoError(t, err)
	assert.Equal(t, "wave", w.Sets[1].Name)

	_, err = LoadWorkload(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWorkload_Validate_Errors(t *testing.T) {
	tests := map[string]string{
		"no sets": `representation: float`,
		"int levels": `
representation: int
sets: [{name: a, cuts: [{level: "1", left: ["0"], right: ["1"]}]}]`,
		"duplicate name": `
sets:
  - {name: a, cuts: [{level: "1", left: ["0"], right: ["1"]}]}
  - {name: a, cuts: [{level: "1", left: ["0"], right: ["1"]}]}`,
		"cuts and samples": `
sets:
  - name: a
    cuts: [{level: "1", left: ["0"], right: ["1"]}]
    samples: {levels: ["0.5"], function: gauss, to: 10}`,
		"unknown op": `
sets: [{name: a, cuts: [{level: "1", left: ["0"], right: ["1"]}]}]
operations: [{name: m, op: mul, left: a, right: a}]`,
		"sklar without parameter": `
sets: [{name: a, cuts: [{level: "1", left: ["0"], right: ["1"]}]}]
operations: [{name: s, op: add, left: a, right: a, tnorm: sklar}]`,
	}
	for name, doc := range tests {
		_, err := ParseWorkload([]byte(doc))
		assert.True(t, ErrInvalidWorkload.Is(err), "%s: %v", name, err)
	}
}

func TestSetSpec_Build_Cuts(t *testing.T) {
	spec := SetSpec{
		Name: "a",
		Cuts: []CutSpec{
			{Level: "1/2", Left: []string{"0"}, Right: []string{"4"}},
			{Level: "1", Left: []string{"1"}, Right: []string{"3"}},
		},
	}
	fs, err := spec.Build(numeric.KindRational, numeric.KindInt)
	require.NoError(t, err)
	require.Equal(t, 2, fs.Len())
	assert.Equal(t, numeric.KindRational, fs.Levels()[0].Kind())

	spec.Cuts[1].Right = []string{"9"}
	_, err = spec.Build(numeric.KindRational, numeric.KindInt)
	assert.True(t, fuzzy.ErrObstructed.Is(err))
}

func TestSampleSpec_Build_Function(t *testing.T) {
	w, err := ParseWorkload([]byte(sampleWorkload))
	require.NoError(t, err)

	fs, err := w.Sets[1].Build(numeric.KindFloat, numeric.KindInt)
	require.NoError(t, err)
	assert.Equal(t, 3, fs.Len())

	cut, ok := fs.Cut(fuzzy.MustAlpha(0.1))
	require.True(t, ok)
	assert.True(t, cut.Left().Equal(mustInts(t, 3, 65)), cut.String())
	assert.True(t, cut.Right().Equal(mustInts(t, 60, 99)), cut.String())
}

func TestSampleSpec_Build_Points(t *testing.T) {
	spec := &SampleSpec{
		Levels: []string{"0.5"},
		Points: [][]string{{"0", "0.1"}, {"1", "0.6"}, {"2", "0.9"}, {"3", "0.2"}},
	}
	fs, err := spec.Build(numeric.KindDecimal, numeric.KindDecimal)
	require.NoError(t, err)
	require.Equal(t, 1, fs.Len())
	cut := fs.AlphaCuts()[0]
	assert.Equal(t, "1", cut.Left().At(0).String())
	assert.Equal(t, "2", cut.Right().At(0).String())

	spec.Points = append(spec.Points, []string{"1", "0.3"})
	_, err = spec.Build(numeric.KindDecimal, numeric.KindDecimal)
	assert.True(t, fuzzy.ErrDomainObstructed.Is(err))
}

func TestSampleSpec_Build_Errors(t *testing.T) {
	_, err := (&SampleSpec{Levels: []string{"0.5"}, Function: "cosh", To: 10}).Build(numeric.KindFloat, numeric.KindFloat)
	assert.True(t, ErrInvalidWorkload.Is(err))

	_, err = (&SampleSpec{Levels: []string{"0.5"}, Function: "gauss", From: 5, To: 1}).Build(numeric.KindFloat, numeric.KindFloat)
	assert.True(t, ErrInvalidWorkload.Is(err))

	_, err = (&SampleSpec{Levels: []string{"0.5"}, Function: "gauss", To: 2, Step: 0.5}).Build(numeric.KindFloat, numeric.KindInt)
	assert.True(t, numeric.ErrType.Is(err))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Greater(t, cfg.Engine.Workers, 0)
	assert.True(t, cfg.Engine.CacheEnabled)
	assert.Equal(t, "png", cfg.Plot.Format)
}

func mustInts(t *testing.T, vs ...int64) fuzzy.Border {
	t.Helper()
	b, err := fuzzy.NewBorder(numeric.Ints(vs...), fuzzy.SideNone)
	require.NoError(t, err)
	return b
}
