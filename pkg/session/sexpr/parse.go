package sexpr

import (
	"fmt"
	"io"
)

// Parse reads every top-level node from r.
func Parse(r io.Reader) ([]Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("sexpr: read failed: %w", err)
	}
	return ParseBytes(src)
}

// ParseString reads every top-level node from s.
func ParseString(s string) ([]Node, error) {
	return ParseBytes([]byte(s))
}

// ParseBytes reads every top-level node from src. Lists are built on an
// explicit stack, so nesting depth is bounded only by memory.
func ParseBytes(src []byte) ([]Node, error) {
	sc := newScanner(src)
	var (
		top   []Node
		stack []*List
	)
	emit := func(n Node) {
		if len(stack) == 0 {
			top = append(top, n)
			return
		}
		parent := stack[len(stack)-1]
		parent.Items = append(parent.Items, n)
	}

	for {
		it, err := sc.next()
		if err != nil {
			return nil, err
		}
		switch it.kind {
		case itemEOF:
			if len(stack) > 0 {
				return nil, &SyntaxError{At: stack[len(stack)-1].At, Msg: "list is never closed"}
			}
			return top, nil
		case itemOpen:
			stack = append(stack, &List{At: it.at})
		case itemClose:
			if len(stack) == 0 {
				return nil, &SyntaxError{At: it.at, Msg: "unexpected ')'"}
			}
			l := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			emit(l)
		case itemAtom:
			emit(it.atom)
		}
	}
}
