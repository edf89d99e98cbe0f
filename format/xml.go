package format

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/texls/latex/parser"
)

// XMLEncoder writes the debugging XML form of a tree. Argument elements of
// unlocalized trees carry a closed attribute.
type XMLEncoder struct {
	w io.Writer
}

func NewXMLEncoder(w io.Writer) *XMLEncoder {
	return &XMLEncoder{w: w}
}

func (e *XMLEncoder) Encode(tree *parser.Tree) error {
	_, err := io.WriteString(e.w, MarshalXML(tree))
	return err
}

func MarshalXML(tree *parser.Tree) string {
	var sb strings.Builder
	writeXML(&sb, tree, tree.Root())
	return sb.String()
}

func writeXML(sb *strings.Builder, tree *parser.Tree, id parser.NodeID) {
	n := tree.Node(id)
	switch n.Kind {
	case parser.KindDocument:
		writeElement(sb, tree, id, "document", "")
	case parser.KindCommand:
		attrs := fmt.Sprintf(` name="%s"`, escape(n.Value))
		if len(n.Children) == 0 {
			sb.WriteString("<command" + attrs + " />")
			return
		}
		writeElement(sb, tree, id, "command", attrs)
	case parser.KindMandatoryArgument:
		writeElement(sb, tree, id, "mandatory", closedAttr(tree, n))
	case parser.KindOptionalArgument:
		writeElement(sb, tree, id, "optional", closedAttr(tree, n))
	case parser.KindEmbraced:
		writeElement(sb, tree, id, "embraced", closedAttr(tree, n))
	case parser.KindText:
		sb.WriteString(escape(n.Value))
	}
}

func writeElement(sb *strings.Builder, tree *parser.Tree, id parser.NodeID, name, attrs string) {
	sb.WriteString("<" + name + attrs + ">")
	for _, child := range tree.Children(id) {
		writeXML(sb, tree, child)
	}
	sb.WriteString("</" + name + ">")
}

func closedAttr(tree *parser.Tree, n parser.Node) string {
	if tree.Localized() {
		return ""
	}
	return fmt.Sprintf(` closed="%t"`, n.Closed)
}

func escape(s string) string {
	var sb strings.Builder
	xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
