package plot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/alphacut/internal/fuzzy"
	"github.com/ppiankov/alphacut/internal/numeric"
)

func testSeries(t *testing.T) []Series {
	t.Helper()
	low, err := fuzzy.NewAlphaCutOf(0.25, numeric.Ints(0, 6), numeric.Ints(4, 9))
	require.NoError(t, err)
	high, err := fuzzy.NewAlphaCutOf(0.75, numeric.Ints(1), numeric.Ints(3))
	require.NoError(t, err)
	a, err := fuzzy.NewFuzzySet(low, high)
	require.NoError(t, err)

	top, err := fuzzy.NewAlphaCutOf(1.0, numeric.Ints(-2), numeric.Ints(2))
	require.NoError(t, err)
	b, err := fuzzy.NewFuzzySet(top)
	require.NoError(t, err)

	return []Series{{Name: "a", Set: a}, {Name: "b", Set: b}}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"png", "png", false},
		{".SVG", "svg", false},
		{" png ", "png", false},
		{"pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_SkipsEmptySets(t *testing.T) {
	series := append(testSeries(t), Series{Name: "empty", Set: &fuzzy.FuzzySet{}})

	p, err := Build(series, "cuts")
	require.NoError(t, err)
	assert.Equal(t, "cuts", p.Title.Text)
	assert.Equal(t, -2.0, p.X.Min)
	assert.Equal(t, 9.0, p.X.Max)

	var buf bytes.Buffer
	wt, err := p.WriterTo(200, 150, "svg")
	require.NoError(t, err)
	_, err = wt.WriteTo(&buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), ">empty<")
	assert.Contains(t, buf.String(), ">a<")
}

func TestRender_PNG(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, testSeries(t), Options{Title: "png", WidthInches: 4, HeightInches: 3, Format: "png"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestRender_SVG(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, testSeries(t), Options{WidthInches: 4, HeightInches: 3, Format: "svg"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<svg")
}

func TestRender_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, testSeries(t), Options{WidthInches: 4, HeightInches: 3, Format: "gif"}))
	assert.Error(t, Render(&buf, testSeries(t), Options{WidthInches: 0, HeightInches: 3, Format: "png"}))
	assert.Zero(t, buf.Len())
}
