package sexpr

import (
	"strconv"
	"strings"
)

type itemKind int

const (
	itemEOF itemKind = iota
	itemOpen
	itemClose
	itemAtom
)

type item struct {
	kind itemKind
	atom *Atom
	at   Pos
}

// scanner walks an in-memory source byte by byte. Columns count bytes.
type scanner struct {
	src  []byte
	off  int
	line int
	col  int
}

func newScanner(src []byte) *scanner {
	return &scanner{src: src, line: 1, col: 1}
}

func (s *scanner) pos() Pos { return Pos{Line: s.line, Col: s.col} }

func (s *scanner) advance() byte {
	c := s.src[s.off]
	s.off++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

func isDelim(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '(', ')', '"', ';':
		return true
	}
	return false
}

// skip consumes blanks and ; comments.
func (s *scanner) skip() {
	for s.off < len(s.src) {
		switch c := s.src[s.off]; {
		case c == ';':
			for s.off < len(s.src) && s.src[s.off] != '\n' {
				s.advance()
			}
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.advance()
		default:
			return
		}
	}
}

func (s *scanner) next() (item, error) {
	s.skip()
	at := s.pos()
	if s.off >= len(s.src) {
		return item{kind: itemEOF, at: at}, nil
	}
	switch s.src[s.off] {
	case '(':
		s.advance()
		return item{kind: itemOpen, at: at}, nil
	case ')':
		s.advance()
		return item{kind: itemClose, at: at}, nil
	case '"':
		a, err := s.quoted(at)
		return item{kind: itemAtom, atom: a, at: at}, err
	}
	return item{kind: itemAtom, atom: s.word(at), at: at}, nil
}

// quoted scans a string; only \" and \\ are escapes.
func (s *scanner) quoted(at Pos) (*Atom, error) {
	s.advance()
	var b strings.Builder
	for s.off < len(s.src) {
		c := s.advance()
		switch c {
		case '"':
			return &Atom{Kind: String, Text: b.String(), At: at}, nil
		case '\\':
			if s.off < len(s.src) && (s.src[s.off] == '"' || s.src[s.off] == '\\') {
				c = s.advance()
			}
		}
		b.WriteByte(c)
	}
	return nil, &SyntaxError{At: at, Msg: "unterminated string"}
}

func (s *scanner) word(at Pos) *Atom {
	start := s.off
	for s.off < len(s.src) && !isDelim(s.src[s.off]) {
		s.advance()
	}
	text := string(s.src[start:s.off])
	a := &Atom{Kind: Word, Text: text, At: at}
	switch text {
	case "yes", "true":
		a.Kind, a.Bool = Bool, true
	case "no", "false":
		a.Kind = Bool
	default:
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			a.Kind, a.Num = Number, f
		}
	}
	return a
}
