package gcode

import (
	"math"
	"strconv"
	"strings"
)

// Number is a parsed argument value. Int records whether the source token
// carried a decimal point, so formatting reproduces the same numeric type.
type Number struct {
	Value float64
	Int   bool
}

func Int(v int64) Number     { return Number{Value: float64(v), Int: true} }
func Float(v float64) Number { return Number{Value: v} }

func isIntegral(f float64) bool {
	return f == math.Trunc(f) && !math.IsInf(f, 0)
}

// Add returns n shifted by d. The result stays an integer only if n is an
// integer and d is integral.
func (n Number) Add(d float64) Number {
	return Number{Value: n.Value + d, Int: n.Int && isIntegral(d)}
}

// Mul returns n scaled by f, with the same integer rule as Add.
func (n Number) Mul(f float64) Number {
	return Number{Value: n.Value * f, Int: n.Int && isIntegral(f)}
}

func (n Number) String() string {
	if n.Int {
		return strconv.FormatInt(int64(n.Value), 10)
	}
	s := strconv.FormatFloat(n.Value, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		// keep a float marker so a reparse yields a float again
		s += ".0"
	}
	return s
}

// Word is a single argument slot on a line. W is the uppercase argument
// letter, or 0 for the unlabeled slot, whose payload is Text.
type Word struct {
	W    byte
	Num  Number
	Text string
}

func (w Word) IsAxis() bool {
	switch w.W {
	case 'X', 'Y', 'Z': // maybe someday 'A', 'B', 'C', 'U', 'V', 'W':
		return true
	}
	return false
}

func (w Word) IsValid() bool {
	return w.W == 0 || (w.W >= 'A' && w.W <= 'Z')
}

func (w Word) String() string {
	if w.W == 0 {
		return w.Text
	}
	return string(w.W) + w.Num.String()
}
