package format

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/dhamidi/texls/latex/parser"
)

type TreeJSONEncoder struct {
	w io.Writer
}

func NewTreeJSONEncoder(w io.Writer) *TreeJSONEncoder {
	return &TreeJSONEncoder{w: w}
}

func (e *TreeJSONEncoder) Encode(tree *parser.Tree) error {
	text, err := e.MarshalTree(tree)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeJSONEncoder) MarshalTree(tree *parser.Tree) ([]byte, error) {
	return json.MarshalIndent(TreeJSON(tree), "", "  ")
}

// JSONNode is the JSON shape of a tree node.
type JSONNode struct {
	Kind     string      `json:"kind"`
	Value    string      `json:"value,omitempty"`
	Span     *JSONSpan   `json:"span,omitempty"`
	Closed   *bool       `json:"closed,omitempty"`
	Children []*JSONNode `json:"children,omitempty"`
}

type JSONSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type JSONIssue struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
	File     string `json:"file,omitempty"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

func TreeJSON(tree *parser.Tree) *JSONNode {
	return nodeToJSON(tree, tree.Root())
}

func nodeToJSON(tree *parser.Tree, id parser.NodeID) *JSONNode {
	n := tree.Node(id)
	jn := &JSONNode{
		Kind:  n.Kind.String(),
		Value: n.Value,
	}

	if tree.Localized() {
		jn.Span = &JSONSpan{Start: n.Start, End: n.End}
	}

	switch n.Kind {
	case parser.KindMandatoryArgument, parser.KindOptionalArgument, parser.KindEmbraced:
		closed := n.Closed
		jn.Closed = &closed
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*JSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(tree, child)
		}
	}

	return jn
}

func IssuesJSON(issues []parser.Issue) []JSONIssue {
	result := make([]JSONIssue, 0, len(issues))
	for _, i := range issues {
		result = append(result, JSONIssue{
			Message:  i.Message,
			Severity: i.Severity.String(),
			File:     i.File,
			Start:    i.Start,
			End:      i.End,
		})
	}
	return result
}
