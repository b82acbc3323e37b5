// Package sexpr reads the S-expression dialect of view session files.
//
// Atoms are classified while scanning: numbers, the booleans yes/no
// (also true/false), quoted strings and bare words. Every node carries its
// line and column so callers can point at the offending entry.
package sexpr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Pos is a 1-based line and column in the input.
type Pos struct {
	Line, Col int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Kind classifies an atom.
type Kind int

const (
	Word Kind = iota
	Number
	Bool
	String
)

var kindNames = [...]string{"word", "number", "bool", "string"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is an Atom or a *List.
type Node interface {
	Pos() Pos
	String() string
}

// Atom is a leaf value. Num is set for numbers, Bool for booleans; Text is
// the source spelling (unquoted for strings).
type Atom struct {
	Kind Kind
	Text string
	Num  float64
	Bool bool
	At   Pos
}

func (a *Atom) Pos() Pos { return a.At }

func (a *Atom) String() string {
	if a.Kind == String {
		return strconv.Quote(a.Text)
	}
	return a.Text
}

// Float returns the value of a number atom.
func (a *Atom) Float() (float64, error) {
	if a.Kind != Number {
		return 0, &SyntaxError{At: a.At, Msg: fmt.Sprintf("expected number, got %s %q", a.Kind, a.Text)}
	}
	return a.Num, nil
}

// Int returns the value of a number atom that has no fractional part.
func (a *Atom) Int() (int, error) {
	f, err := a.Float()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, &SyntaxError{At: a.At, Msg: fmt.Sprintf("expected integer, got %s", a.Text)}
	}
	return int(f), nil
}

// List is a parenthesised sequence.
type List struct {
	Items []Node
	At    Pos
}

func (l *List) Pos() Pos { return l.At }

func (l *List) String() string {
	parts := make([]string, len(l.Items))
	for i, n := range l.Items {
		parts[i] = n.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Key returns the leading word of the list, or "".
func (l *List) Key() string {
	if len(l.Items) == 0 {
		return ""
	}
	if a, ok := l.Items[0].(*Atom); ok && a.Kind == Word {
		return a.Text
	}
	return ""
}

// Find returns the first child list whose key is key.
func (l *List) Find(key string) (*List, bool) {
	for _, n := range l.Items {
		if sub, ok := n.(*List); ok && sub.Key() == key {
			return sub, true
		}
	}
	return nil, false
}

// Atoms returns the atoms after the key, skipping nested lists.
func (l *List) Atoms() []*Atom {
	var out []*Atom
	for _, n := range l.Items[min(1, len(l.Items)):] {
		if a, ok := n.(*Atom); ok {
			out = append(out, a)
		}
	}
	return out
}

// SyntaxError reports malformed input or a mistyped atom.
type SyntaxError struct {
	At  Pos
	Msg string
}

func (e *SyntaxError) Error() string { return e.At.String() + ": " + e.Msg }
