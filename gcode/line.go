package gcode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyLine is returned by ParseLine when the text holds no code token
// (blank, or nothing before the first ';').
var ErrEmptyLine = errors.New("gcode: empty line")

// MalformedArgumentError reports a letter-prefixed token whose numeric part
// failed to parse. It aborts the whole parse and carries the raw line for
// diagnostics.
type MalformedArgumentError struct {
	Line  string
	Token string
	Err   error
}

func (e *MalformedArgumentError) Error() string {
	return fmt.Sprintf("gcode: malformed argument %q in line %q: %v", e.Token, e.Line, e.Err)
}

func (e *MalformedArgumentError) Unwrap() error { return e.Err }

// Line is one parsed instruction: a command code, its arguments in source
// order, and any trailing comment. Raw keeps the original source text for
// diagnostics only.
type Line struct {
	Raw     string
	Code    string
	Args    Block
	Comment string
}

// ParseLine splits text at the first ';' into content and comment, takes
// the first whitespace-delimited token as the code and classifies the rest
// as arguments. M117 is special: everything after the code is kept verbatim
// in the unlabeled slot, since its payload is a display message.
func ParseLine(text string) (*Line, error) {
	l := &Line{Raw: text, Args: Block{}}

	content := text
	if i := strings.IndexByte(text, ';'); i >= 0 {
		content = text[:i]
		l.Comment = text[i+1:]
	}

	fields := strings.Fields(content)
	if len(fields) == 0 {
		return nil, ErrEmptyLine
	}
	l.Code = fields[0]

	if l.Code == "M117" {
		rest := strings.TrimLeft(content, " \t")
		rest = strings.TrimLeft(rest[len(l.Code):], " \t")
		if rest != "" {
			l.Args.PutText(rest)
		}
		return l, nil
	}

	for _, tok := range fields[1:] {
		c := tok[0]
		if !isLetter(c) {
			l.Args.PutText(tok)
			continue
		}
		n, err := parseNumber(tok[1:])
		if err != nil {
			return nil, &MalformedArgumentError{Line: text, Token: tok, Err: err}
		}
		l.Args.Put(upper(c), n)
	}

	return l, nil
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// parseNumber follows the slicer dialect's type rule: a token with a '.' is
// a float, anything else must parse as an integer.
func parseNumber(s string) (Number, error) {
	if strings.ContainsRune(s, '.') {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Number{}, err
		}
		return Float(f), nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Number{}, err
	}
	return Int(v), nil
}

// Arg returns the named letter argument, if present.
func (l *Line) Arg(w byte) (bool, Number) { return l.Args.Arg(w) }

// Text returns the unlabeled slot payload (bare token or M117 message).
func (l *Line) Text() (bool, string) { return l.Args.Text() }

// String reconstructs the line: code, arguments in insertion order, then
// the comment. Token spacing is normalized to single spaces; an empty
// comment is dropped.
func (l *Line) String() string {
	var sb strings.Builder
	sb.WriteString(l.Code)
	for _, w := range l.Args {
		sb.WriteByte(' ')
		sb.WriteString(w.String())
	}
	if l.Comment != "" {
		sb.WriteString(" ;")
		sb.WriteString(l.Comment)
	}
	return sb.String()
}
