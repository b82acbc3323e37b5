package trackdata

import "github.com/alecthomas/participle/v2/lexer"

// fileAST is the parse tree of a track file:
//
//	track "07" {
//	    1 682.29 211.33 keyframe
//	    2 683.01 212.40
//	}
type fileAST struct {
	Tracks []*trackAST `parser:"@@*"`
}

type trackAST struct {
	Pos    lexer.Position
	Name   string      `parser:"'track' @String '{'"`
	Points []*pointAST `parser:"@@* '}'"`
}

type pointAST struct {
	Pos    lexer.Position
	Frame  int     `parser:"@Number"`
	X      float64 `parser:"@Number"`
	Y      float64 `parser:"@Number"`
	Status string  `parser:"@Ident?"`
}
