package recipe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mriveralee/go-gcode/gcode"
)

const docText = `G28
;LAYER:0
G1 Z0.3 F300
G1 X1 Y10
;LAYER:1
G1 Z0.6
G1 X2 Y20
`

func TestLoadApply(t *testing.T) {
	rec, err := Load(strings.NewReader(`
ops:
  - do: shift
    from: 1
    args: {Y: -10}
  - do: multiply
    args: {X: 2}
  - do: preamble
    layer: 0
    text: "M117 start"
`))
	assert.NoError(t, err)
	assert.Len(t, rec.Ops, 3)

	doc := gcode.MustParse(docText)
	assert.NoError(t, rec.Apply(doc))

	_, y := doc.Layers[0].Lines[1].Arg('Y')
	assert.Equal(t, gcode.Int(10), y)
	_, y = doc.Layers[1].Lines[1].Arg('Y')
	assert.Equal(t, gcode.Int(10), y)

	_, x := doc.Layers[0].Lines[1].Arg('X')
	assert.Equal(t, gcode.Int(2), x)
	_, x = doc.Layers[1].Lines[1].Arg('X')
	assert.Equal(t, gcode.Int(4), x)

	assert.Len(t, doc.Layers[0].Preamble, 1)
	assert.Equal(t, "M117 start", doc.Layers[0].Preamble[0].String())
}

func TestApply_MatchesDirectCalls(t *testing.T) {
	rec, err := Load(strings.NewReader(`
ops:
  - do: shift
    from: 0
    args: {X: 5, Y: -3}
`))
	assert.NoError(t, err)

	a := gcode.MustParse(docText)
	assert.NoError(t, rec.Apply(a))

	b := gcode.MustParse(docText)
	b.Shift(0, map[byte]float64{'X': 5, 'Y': -3})

	assert.Equal(t, b.Construct(), a.Construct())
}

func TestApply_Errors(t *testing.T) {
	doc := gcode.MustParse(docText)

	rec := &Recipe{Ops: []Op{{Do: "rotate"}}}
	assert.Error(t, rec.Apply(doc))

	rec = &Recipe{Ops: []Op{{Do: "shift", Args: map[string]float64{"XY": 1}}}}
	assert.Error(t, rec.Apply(doc))

	rec = &Recipe{Ops: []Op{{Do: "shift", Args: map[string]float64{"x": 1}}}}
	assert.Error(t, rec.Apply(doc))

	rec = &Recipe{Ops: []Op{{Do: "postamble", Layer: 9, Text: "G90"}}}
	assert.Error(t, rec.Apply(doc))
}

func TestApply_EmptyRecipe(t *testing.T) {
	rec, err := Load(strings.NewReader("ops: []"))
	assert.NoError(t, err)

	doc := gcode.MustParse(docText)
	before := doc.Construct()
	assert.NoError(t, rec.Apply(doc))
	assert.Equal(t, before, doc.Construct())
}
