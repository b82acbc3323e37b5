// Package trackdata reads and writes track files, the plain-text form of the
// curves edited in the curve view.
package trackdata

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/curve"
)

// Parser reads track files.
type Parser struct {
	parser *participle.Parser[fileAST]
}

// NewParser creates a new track file parser.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[fileAST](
		participle.Lexer(TrackLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse reads track data from r. name is used in error positions.
func (p *Parser) Parse(name string, r io.Reader) ([]*curve.Curve, error) {
	ast, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return convert(ast)
}

// ParseString reads track data from a string.
func (p *Parser) ParseString(input string) ([]*curve.Curve, error) {
	ast, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return convert(ast)
}

// ParseFile reads track data from a file.
func (p *Parser) ParseFile(filename string) ([]*curve.Curve, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(filename, file)
}

// ParseFile is a convenience wrapper that builds a Parser and reads filename.
func ParseFile(filename string) ([]*curve.Curve, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	return p.ParseFile(filename)
}

func convert(ast *fileAST) ([]*curve.Curve, error) {
	curves := make([]*curve.Curve, 0, len(ast.Tracks))
	names := make(map[string]bool, len(ast.Tracks))
	for _, tr := range ast.Tracks {
		if names[tr.Name] {
			return nil, fmt.Errorf("%s: duplicate track %q", tr.Pos, tr.Name)
		}
		names[tr.Name] = true

		c := &curve.Curve{Name: tr.Name, Points: make([]curve.Point, 0, len(tr.Points))}
		frames := make(map[int]bool, len(tr.Points))
		for _, pt := range tr.Points {
			if frames[pt.Frame] {
				return nil, fmt.Errorf("%s: track %q: duplicate frame %d", pt.Pos, tr.Name, pt.Frame)
			}
			frames[pt.Frame] = true

			status := curve.StatusNormal
			if pt.Status != "" {
				st, err := curve.ParseStatus(pt.Status)
				if err != nil {
					return nil, fmt.Errorf("%s: track %q: %w", pt.Pos, tr.Name, err)
				}
				status = st
			}
			c.Points = append(c.Points, curve.Point{
				Frame:  pt.Frame,
				Pos:    curve.Vec{X: pt.X, Y: pt.Y},
				Status: status,
			})
		}
		curves = append(curves, c)
	}
	return curves, nil
}
