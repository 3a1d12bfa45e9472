// Package recipe applies YAML-described batches of edit operations to a
// parsed G-code document, so post-processing can be configured without
// code changes.
package recipe

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mriveralee/go-gcode/gcode"
)

// Op is one edit step. Do selects the operation:
//
//	shift     — add Args to matching arguments from layer From onward
//	multiply  — scale matching arguments from layer From onward
//	preamble  — replace the injected preamble of layer Layer with Text
//	postamble — replace the injected postamble of layer Layer with Text
type Op struct {
	Do    string             `yaml:"do"`
	From  int                `yaml:"from"`
	Layer int                `yaml:"layer"`
	Args  map[string]float64 `yaml:"args"`
	Text  string             `yaml:"text"`
}

type Recipe struct {
	Ops []Op `yaml:"ops"`
}

// Load reads a YAML recipe.
func Load(r io.Reader) (*Recipe, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var rec Recipe
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Apply runs every op against the document, in order.
func (r *Recipe) Apply(doc *gcode.Document) error {
	for i, op := range r.Ops {
		if err := op.apply(doc); err != nil {
			return fmt.Errorf("recipe: op %d (%s): %w", i, op.Do, err)
		}
	}
	return nil
}

func (op Op) apply(doc *gcode.Document) error {
	switch op.Do {
	case "shift":
		args, err := argLetters(op.Args)
		if err != nil {
			return err
		}
		doc.Shift(op.From, args)
	case "multiply":
		args, err := argLetters(op.Args)
		if err != nil {
			return err
		}
		doc.Multiply(op.From, args)
	case "preamble", "postamble":
		if op.Layer < 0 || op.Layer >= len(doc.Layers) {
			return fmt.Errorf("layer %d out of range", op.Layer)
		}
		l := doc.Layers[op.Layer]
		if op.Do == "preamble" {
			return l.SetPreamble(op.Text)
		}
		return l.SetPostamble(op.Text)
	default:
		return fmt.Errorf("unknown operation %q", op.Do)
	}
	return nil
}

func argLetters(m map[string]float64) (map[byte]float64, error) {
	out := make(map[byte]float64, len(m))
	for k, v := range m {
		if len(k) != 1 || k[0] < 'A' || k[0] > 'Z' {
			return nil, fmt.Errorf("argument key %q is not an uppercase letter", k)
		}
		out[k[0]] = v
	}
	return out, nil
}
