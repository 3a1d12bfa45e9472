package gcode

import (
	"fmt"
	"strings"

	"github.com/mriveralee/go-gcode/coord"
)

// EmptyExtentError reports an extents request over a layer with no line
// carrying the required axis argument.
type EmptyExtentError struct {
	Axis byte
}

func (e *EmptyExtentError) Error() string {
	return fmt.Sprintf("gcode: no %c argument in layer", e.Axis)
}

// Layer is an ordered run of lines belonging to one vertical slice. Num is
// 0 for the preamble and 1..N for print layers. Preamble and Postamble hold
// injected lines and are never touched by Shift or Multiply.
type Layer struct {
	Num       int
	Lines     []*Line
	Preamble  []*Line
	Postamble []*Line
}

// NewLayer parses raw source lines, dropping blank lines and full-line
// comments since they carry no structured content.
func NewLayer(raw []string, num int) (*Layer, error) {
	l := &Layer{Num: num, Lines: []*Line{}}
	for _, s := range raw {
		t := strings.TrimSpace(s)
		if t == "" || t[0] == ';' {
			continue
		}
		ln, err := ParseLine(s)
		if err != nil {
			return nil, err
		}
		l.Lines = append(l.Lines, ln)
	}
	return l, nil
}

// Z returns the Z argument of the first line that has one. It should be the
// only Z unless the layer has been edited, so the first is safe.
func (l *Layer) Z() (bool, Number) {
	for _, ln := range l.Lines {
		if ok, n := ln.Arg('Z'); ok {
			return true, n
		}
	}
	return false, Number{}
}

func (l *Layer) axisRange(w byte) (min, max Number, err error) {
	found := false
	for _, ln := range l.Lines {
		ok, n := ln.Arg(w)
		if !ok {
			continue
		}
		if !found || n.Value < min.Value {
			min = n
		}
		if !found || n.Value > max.Value {
			max = n
		}
		found = true
	}
	if !found {
		return Number{}, Number{}, &EmptyExtentError{Axis: w}
	}
	return min, max, nil
}

// Extents returns the XY bounding box over lines carrying each axis. The
// axes are independent: a line with X but no Y counts only toward X. A
// layer with no X (or no Y) at all yields EmptyExtentError.
func (l *Layer) Extents() (coord.Box, error) {
	minX, maxX, err := l.axisRange('X')
	if err != nil {
		return coord.Box{}, err
	}
	minY, maxY, err := l.axisRange('Y')
	if err != nil {
		return coord.Box{}, err
	}
	return coord.Box{
		Min: coord.Point{X: minX.Value, Y: minY.Value},
		Max: coord.Point{X: maxX.Value, Y: maxY.Value},
	}, nil
}

// ExtentLines returns two synthetic G0 lines addressing the bounding-box
// corners, preserving the numeric types of the winning source values.
func (l *Layer) ExtentLines() (*Line, *Line, error) {
	minX, maxX, err := l.axisRange('X')
	if err != nil {
		return nil, nil, err
	}
	minY, maxY, err := l.axisRange('Y')
	if err != nil {
		return nil, nil, err
	}
	lo := &Line{Code: "G0", Args: Block{{W: 'X', Num: minX}, {W: 'Y', Num: minY}}}
	hi := &Line{Code: "G0", Args: Block{{W: 'X', Num: maxX}, {W: 'Y', Num: maxY}}}
	return lo, hi, nil
}

// Shift adds each delta to every line that carries the matching argument
// letter. Lines lacking the letter are left alone; shift never introduces
// a new argument. An empty map is a no-op.
func (l *Layer) Shift(deltas map[byte]float64) {
	for _, ln := range l.Lines {
		for w, d := range deltas {
			if ok, n := ln.Arg(w); ok {
				ln.Args.SetArg(w, n.Add(d))
			}
		}
	}
}

// Multiply scales arguments in place, with the same presence rule as Shift.
func (l *Layer) Multiply(factors map[byte]float64) {
	for _, ln := range l.Lines {
		for w, f := range factors {
			if ok, n := ln.Arg(w); ok {
				ln.Args.SetArg(w, n.Mul(f))
			}
		}
	}
}

// SetPreamble replaces the injected preamble with the parsed lines of text.
func (l *Layer) SetPreamble(text string) error {
	lines, err := parseInjected(text)
	if err != nil {
		return err
	}
	l.Preamble = lines
	return nil
}

// SetPostamble replaces the injected postamble with the parsed lines of text.
func (l *Layer) SetPostamble(text string) error {
	lines, err := parseInjected(text)
	if err != nil {
		return err
	}
	l.Postamble = lines
	return nil
}

func parseInjected(text string) ([]*Line, error) {
	out := []*Line{}
	for _, s := range strings.Split(text, "\n") {
		t := strings.TrimSpace(s)
		if t == "" || t[0] == ';' {
			continue
		}
		ln, err := ParseLine(s)
		if err != nil {
			return nil, err
		}
		out = append(out, ln)
	}
	return out, nil
}

// Find returns all lines in the layer body matching the given code, in
// source order. Injected preamble and postamble lines are not searched.
func (l *Layer) Find(code string) []*Line {
	var out []*Line
	for _, ln := range l.Lines {
		if ln.Code == code {
			out = append(out, ln)
		}
	}
	return out
}

// Construct renders preamble, body, and postamble lines newline-joined.
func (l *Layer) Construct() string {
	parts := make([]string, 0, len(l.Preamble)+len(l.Lines)+len(l.Postamble))
	for _, ln := range l.Preamble {
		parts = append(parts, ln.String())
	}
	for _, ln := range l.Lines {
		parts = append(parts, ln.String())
	}
	for _, ln := range l.Postamble {
		parts = append(parts, ln.String())
	}
	return strings.Join(parts, "\n")
}
