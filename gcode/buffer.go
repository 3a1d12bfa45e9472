package gcode

import (
	"bytes"
	"fmt"
	"io"
)

// Buffer streams a Document's constructed text as an io.Reader, one layer
// chunk at a time, producing exactly the bytes of Document.Construct.
type Buffer struct {
	doc *Document
	buf bytes.Buffer

	preDone bool
	n       int
	done    bool
}

var _ io.Reader = &Buffer{}

func NewBuffer(d *Document) *Buffer {
	return &Buffer{doc: d}
}

func (b *Buffer) fill() {
	if !b.preDone {
		b.preDone = true
		if b.doc.Preamble != nil {
			b.buf.WriteString(b.doc.Preamble.Construct())
			b.buf.WriteByte('\n')
		}
		return
	}
	if b.n == len(b.doc.Layers) {
		b.done = true
		return
	}
	fmt.Fprintf(&b.buf, ";LAYER:%d\n", b.n)
	b.buf.WriteString(b.doc.Layers[b.n].Construct())
	b.buf.WriteByte('\n')
	b.n++
}

func (b *Buffer) Read(p []byte) (int, error) {
	for b.buf.Len() < len(p) && !b.done {
		b.fill()
	}
	return b.buf.Read(p)
}
