package gcode

// Block is the ordered argument list of a line. Order is source insertion
// order; letter keys are unique within a block.
type Block []Word

func (b Block) Arg(w byte) (bool, Number) {
	for _, g := range b {
		if g.W == w {
			return true, g.Num
		}
	}
	return false, Number{}
}

func (b Block) SetArg(w byte, n Number) {
	for i, g := range b {
		if g.W == w {
			b[i].Num = n
			return
		}
	}
}

// Put inserts a letter argument, or replaces the value of an existing one.
// A duplicated letter keeps its first position and takes the last value.
func (b *Block) Put(w byte, n Number) {
	for i, g := range *b {
		if g.W == w {
			(*b)[i].Num = n
			return
		}
	}
	*b = append(*b, Word{W: w, Num: n})
}

// PutText sets the unlabeled slot. A block holds at most one; a second
// bare token overwrites the first.
func (b *Block) PutText(text string) {
	for i, g := range *b {
		if g.W == 0 {
			(*b)[i].Text = text
			return
		}
	}
	*b = append(*b, Word{Text: text})
}

// Text returns the unlabeled slot payload, if present.
func (b Block) Text() (bool, string) {
	for _, g := range b {
		if g.W == 0 {
			return true, g.Text
		}
	}
	return false, ""
}

func (b Block) Clone() Block {
	c := make(Block, len(b))
	copy(c, b)
	return c
}
