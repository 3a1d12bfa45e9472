package gcode

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Cura-style explicit layer markers.
	layerMarkerRx      = regexp.MustCompile(`(?m)^;LAYER:\d+\r?$`)
	layerMarkerSplitRx = regexp.MustCompile(`(?m)^;LAYER:\d+\r?\n`)

	// Slic3r-style fallback: a G0/G1 move carrying a Z coordinate opens a
	// new layer.
	layerStartRx = regexp.MustCompile(`^G[01]\s.*Z-?\.?\d+`)
)

// Document is a whole program: an optional preamble layer plus the print
// layers in source order.
type Document struct {
	Preamble *Layer
	Layers   []*Layer
}

// parseMarkers splits the text at every ;LAYER:<n> line. The marker lines
// themselves are discarded; text before the first marker is the preamble.
// Layers are numbered by split position, not by the integer in the marker.
func (d *Document) parseMarkers(text string) error {
	splits := layerMarkerSplitRx.Split(text, -1)

	pre, err := NewLayer(strings.Split(splits[0], "\n"), 0)
	if err != nil {
		return err
	}
	d.Preamble = pre

	for i, chunk := range splits[1:] {
		l, err := NewLayer(strings.Split(chunk, "\n"), i)
		if err != nil {
			return err
		}
		d.Layers = append(d.Layers, l)
	}
	return nil
}

// parseHeuristic scans for layer-start lines. The first one closes the
// preamble and opens layer 1 with itself as first content line; each later
// one closes the current layer. Input with no layer-start lines at all
// becomes a single layer with no preamble.
func (d *Document) parseHeuristic(text string) error {
	var cur []string
	sawStart := false
	next := 1

	for _, s := range strings.Split(text, "\n") {
		if !layerStartRx.MatchString(s) {
			cur = append(cur, s)
			continue
		}
		if !sawStart {
			pre, err := NewLayer(cur, 0)
			if err != nil {
				return err
			}
			d.Preamble = pre
			sawStart = true
		} else {
			l, err := NewLayer(cur, next)
			if err != nil {
				return err
			}
			d.Layers = append(d.Layers, l)
			next++
		}
		cur = []string{s}
	}

	l, err := NewLayer(cur, next)
	if err != nil {
		return err
	}
	d.Layers = append(d.Layers, l)
	return nil
}

// Shift applies Layer.Shift to every layer at position from and later.
// Positions count the stored sequence, 0-based; the preamble is never
// shifted. Out-of-range from values are clamped.
func (d *Document) Shift(from int, deltas map[byte]float64) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(d.Layers); i++ {
		d.Layers[i].Shift(deltas)
	}
}

// Multiply is the multiplicative analogue of Shift.
func (d *Document) Multiply(from int, factors map[byte]float64) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(d.Layers); i++ {
		d.Layers[i].Multiply(factors)
	}
}

// Construct renders the whole program in marker form: the preamble, then
// each layer prefixed by a ;LAYER:<n> line numbered by position. Input
// parsed in heuristic mode round-trips into marker form.
func (d *Document) Construct() string {
	var sb strings.Builder
	if d.Preamble != nil {
		sb.WriteString(d.Preamble.Construct())
		sb.WriteByte('\n')
	}
	for i, l := range d.Layers {
		fmt.Fprintf(&sb, ";LAYER:%d\n", i)
		sb.WriteString(l.Construct())
		sb.WriteByte('\n')
	}
	return sb.String()
}
