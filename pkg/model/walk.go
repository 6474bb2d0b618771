package model

// WalkFunc is called for every block visited by Walk. Returning false skips
// the block's children.
type WalkFunc func(b Block, depth int) bool

// Walk visits blocks depth-first in document order.
func Walk(blocks []Block, fn WalkFunc) {
	walk(blocks, 0, fn)
}

func walk(blocks []Block, depth int, fn WalkFunc) {
	for _, b := range blocks {
		if b == nil {
			continue
		}
		if !fn(b, depth) {
			continue
		}
		if c, ok := b.(Callout); ok {
			walk(c.Children, depth+1, fn)
		}
	}
}

// CodeBlocks collects code blocks in document order.
func CodeBlocks(blocks []Block) []Code {
	var out []Code
	Walk(blocks, func(b Block, _ int) bool {
		if c, ok := b.(Code); ok {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Count returns the number of blocks of type t in the tree.
func Count(blocks []Block, t BlockType) int {
	n := 0
	Walk(blocks, func(b Block, _ int) bool {
		if b.Type() == t {
			n++
		}
		return true
	})
	return n
}

// MapCode returns a copy of the tree with fn applied to every code block.
// The input is left untouched.
func MapCode(blocks []Block, fn func(Code) Code) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		switch v := b.(type) {
		case Code:
			out[i] = fn(v)
		case Callout:
			out[i] = newCallout(v.Kind, v.Title, MapCode(v.Children, fn))
		default:
			out[i] = b
		}
	}
	return out
}
