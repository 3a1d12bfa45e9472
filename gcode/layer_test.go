package gcode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mriveralee/go-gcode/coord"
)

func mustLayer(t *testing.T, raw []string, num int) *Layer {
	t.Helper()
	l, err := NewLayer(raw, num)
	assert.NoError(t, err)
	return l
}

func TestNewLayer_Filters(t *testing.T) {
	l := mustLayer(t, []string{
		";TYPE:WALL-OUTER",
		"G1 X5 Y5",
		"",
		"   ",
		"M117 printing",
	}, 1)

	assert.Len(t, l.Lines, 2)
	assert.Equal(t, "G1", l.Lines[0].Code)
	assert.Equal(t, "M117", l.Lines[1].Code)
}

func TestLayer_Z(t *testing.T) {
	l := mustLayer(t, []string{
		"G1 X5 Y5",
		"G1 Z0.3 F300",
		"G1 Z9.9",
	}, 1)

	ok, z := l.Z()
	assert.True(t, ok)
	assert.Equal(t, Float(0.3), z)

	ok, _ = mustLayer(t, []string{"G1 X5"}, 1).Z()
	assert.False(t, ok)
}

func TestLayer_Extents(t *testing.T) {
	l := mustLayer(t, []string{"G1 X5 Y5"}, 1)

	box, err := l.Extents()
	assert.NoError(t, err)
	assert.Equal(t, coord.Box{
		Min: coord.Point{X: 5, Y: 5},
		Max: coord.Point{X: 5, Y: 5},
	}, box)

	l = mustLayer(t, []string{
		"G1 X-2 Y10",
		"G1 X7",       // no Y, excluded from the Y axis only
		"G0 Y-3 Z0.2", // no X
	}, 1)
	box, err = l.Extents()
	assert.NoError(t, err)
	assert.Equal(t, coord.Box{
		Min: coord.Point{X: -2, Y: -3},
		Max: coord.Point{X: 7, Y: 10},
	}, box)
}

func TestLayer_Extents_Empty(t *testing.T) {
	l := mustLayer(t, []string{"G1 Y5"}, 1)

	_, err := l.Extents()
	var ee *EmptyExtentError
	assert.True(t, errors.As(err, &ee))
	assert.Equal(t, byte('X'), ee.Axis)

	_, err = mustLayer(t, []string{"M104 S200"}, 1).Extents()
	assert.True(t, errors.As(err, &ee))
}

func TestLayer_ExtentLines(t *testing.T) {
	l := mustLayer(t, []string{
		"G1 X1.5 Y8",
		"G1 X4 Y2.25",
	}, 1)

	lo, hi, err := l.ExtentLines()
	assert.NoError(t, err)
	assert.Equal(t, "G0 X1.5 Y2.25", lo.String())
	assert.Equal(t, "G0 X4 Y8", hi.String())
	assert.Equal(t, "", lo.Comment)
}

func TestLayer_Shift(t *testing.T) {
	l := mustLayer(t, []string{
		"G1 X5 Y10",
		"G1 X7",
		"M104 S200",
	}, 1)

	l.Shift(map[byte]float64{'X': 5})
	_, x := l.Lines[0].Arg('X')
	assert.Equal(t, Int(10), x)
	_, x = l.Lines[1].Arg('X')
	assert.Equal(t, Int(12), x)

	// shift never introduces an argument
	ok, _ := l.Lines[2].Arg('X')
	assert.False(t, ok)

	// unshift restores the original values exactly
	l.Shift(map[byte]float64{'X': -5})
	_, x = l.Lines[0].Arg('X')
	assert.Equal(t, Int(5), x)

	// empty map is a no-op
	l.Shift(map[byte]float64{})
	_, x = l.Lines[0].Arg('X')
	assert.Equal(t, Int(5), x)
}

func TestLayer_Multiply(t *testing.T) {
	l := mustLayer(t, []string{"G1 X8 Y1.5"}, 1)

	l.Multiply(map[byte]float64{'X': 2, 'Y': 2})
	_, x := l.Lines[0].Arg('X')
	_, y := l.Lines[0].Arg('Y')
	assert.Equal(t, Int(16), x)
	assert.Equal(t, Float(3), y)

	l.Multiply(map[byte]float64{'X': 0.5})
	_, x = l.Lines[0].Arg('X')
	assert.InEpsilon(t, 8, x.Value, 1e-9)

	// factor 1 is an identity
	before := x
	l.Multiply(map[byte]float64{'X': 1})
	_, x = l.Lines[0].Arg('X')
	assert.Equal(t, before, x)
}

func TestLayer_PreamblePostamble(t *testing.T) {
	l := mustLayer(t, []string{"G1 X1 Y1"}, 1)

	assert.NoError(t, l.SetPreamble("M117 layer start\nG91"))
	assert.NoError(t, l.SetPostamble("G90"))
	assert.Equal(t, "M117 layer start\nG91\nG1 X1 Y1\nG90", l.Construct())

	// replacement, not addition
	assert.NoError(t, l.SetPreamble("G28"))
	assert.Equal(t, "G28\nG1 X1 Y1\nG90", l.Construct())

	// edits do not touch injected lines
	l.Shift(map[byte]float64{'X': 5})
	assert.Equal(t, "G28\nG1 X6 Y1\nG90", l.Construct())
}

func TestLayer_Find(t *testing.T) {
	l := mustLayer(t, []string{
		"G1 X1",
		"M104 S200",
		"G1 X2",
	}, 1)
	assert.NoError(t, l.SetPreamble("G1 X9"))

	found := l.Find("G1")
	assert.Len(t, found, 2)
	assert.Equal(t, "G1 X1", found[0].String())
	assert.Equal(t, "G1 X2", found[1].String())

	assert.Empty(t, l.Find("G28"))
}
