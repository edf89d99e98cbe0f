package format

import (
	"github.com/dhamidi/texls/latex/parser"
)

// Encoder writes a tree in some output format.
type Encoder interface {
	Encode(tree *parser.Tree) error
}
