package parser

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"
)

type NodeKind int

const (
	KindDocument NodeKind = iota
	KindCommand
	KindMandatoryArgument
	KindOptionalArgument
	KindText
	KindEmbraced
)

var nodeKindNames = map[NodeKind]string{
	KindDocument:          "Document",
	KindCommand:           "Command",
	KindMandatoryArgument: "MandatoryArgument",
	KindOptionalArgument:  "OptionalArgument",
	KindText:              "Text",
	KindEmbraced:          "Embraced",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// AcceptsChildren reports whether arbitrary content may be appended to a
// node of this kind. Commands only take arguments and text takes nothing.
func (k NodeKind) AcceptsChildren() bool {
	switch k {
	case KindDocument, KindMandatoryArgument, KindOptionalArgument, KindEmbraced:
		return true
	}
	return false
}

// NodeID indexes a node in the arena of its Tree.
type NodeID int

const NoNode NodeID = -1

// Node is a single element of the tree. Value holds the command name of a
// command, the literal of a text node and the file of the document root.
// Start and End are only set in trees built by Parse.
type Node struct {
	Kind     NodeKind
	Value    string
	Parent   NodeID
	Children []NodeID
	Start    int
	End      int
	Closed   bool
}

// Tree is an arena of nodes rooted at a document node. A tree is not
// modified after the builder returns it.
type Tree struct {
	nodes     []Node
	localized bool
}

func (t *Tree) Root() NodeID {
	return 0
}

func (t *Tree) Len() int {
	return len(t.nodes)
}

// Localized reports whether nodes carry source offsets.
func (t *Tree) Localized() bool {
	return t.localized
}

func (t *Tree) Node(id NodeID) Node {
	return t.nodes[id]
}

func (t *Tree) Kind(id NodeID) NodeKind {
	return t.nodes[id].Kind
}

func (t *Tree) Value(id NodeID) string {
	return t.nodes[id].Value
}

func (t *Tree) Parent(id NodeID) NodeID {
	return t.nodes[id].Parent
}

func (t *Tree) Children(id NodeID) []NodeID {
	return t.nodes[id].Children
}

func (t *Tree) FirstChildOfKind(id NodeID, kind NodeKind) NodeID {
	for _, child := range t.nodes[id].Children {
		if t.nodes[child].Kind == kind {
			return child
		}
	}
	return NoNode
}

func (t *Tree) ChildrenOfKind(id NodeID, kind NodeKind) []NodeID {
	var result []NodeID
	for _, child := range t.nodes[id].Children {
		if t.nodes[child].Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// LastChild returns the last child of id, or NoNode.
func (t *Tree) LastChild(id NodeID) NodeID {
	children := t.nodes[id].Children
	if len(children) == 0 {
		return NoNode
	}
	return children[len(children)-1]
}

// InnerText concatenates the values of the direct text children of id.
func (t *Tree) InnerText(id NodeID) string {
	var sb strings.Builder
	for _, child := range t.nodes[id].Children {
		if t.nodes[child].Kind == KindText {
			sb.WriteString(t.nodes[child].Value)
		}
	}
	return sb.String()
}

// LastEnd returns the end of the last child of id, or the end of id itself
// when it has no children.
func (t *Tree) LastEnd(id NodeID) int {
	if last := t.LastChild(id); last != NoNode {
		return t.nodes[last].End
	}
	return t.nodes[id].End
}

// Walk visits id and its descendants in source order. Returning false from
// fn skips the children of the visited node.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, depth int) bool) {
	t.walk(id, 0, fn)
}

func (t *Tree) walk(id NodeID, depth int, fn func(NodeID, int) bool) {
	if !fn(id, depth) {
		return
	}
	for _, child := range t.nodes[id].Children {
		t.walk(child, depth+1, fn)
	}
}

// NodeAt returns the innermost node whose span contains offset. It
// requires a localized tree.
func (t *Tree) NodeAt(offset int) NodeID {
	found := t.Root()
	t.Walk(t.Root(), func(id NodeID, depth int) bool {
		n := t.nodes[id]
		if offset < n.Start || offset >= n.End {
			return false
		}
		found = id
		return true
	})
	return found
}

func (t *Tree) newNode(kind NodeKind, value string, start, end int) NodeID {
	t.nodes = append(t.nodes, Node{
		Kind:   kind,
		Value:  value,
		Parent: NoNode,
		Start:  start,
		End:    end,
	})
	return NodeID(len(t.nodes) - 1)
}

func (t *Tree) appendChild(parent, child NodeID) {
	t.nodes[child].Parent = parent
	t.nodes[parent].Children = append(t.nodes[parent].Children, child)
}

func (t *Tree) String() string {
	var sb strings.Builder
	t.writeIndent(&sb, t.Root(), 0, false)
	return sb.String()
}

func (t *Tree) StringWithPositions() string {
	var sb strings.Builder
	t.writeIndent(&sb, t.Root(), 0, true)
	return sb.String()
}

func (t *Tree) writeIndent(sb *strings.Builder, id NodeID, indent int, showPositions bool) {
	n := t.nodes[id]
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Kind.String())
	if showPositions && t.localized {
		fmt.Fprintf(sb, " [%d-%d]", n.Start, n.End)
	}
	switch n.Kind {
	case KindCommand, KindDocument:
		if n.Value != "" {
			sb.WriteString(" " + n.Value)
		}
	case KindText:
		fmt.Fprintf(sb, " %q", n.Value)
	case KindMandatoryArgument, KindOptionalArgument, KindEmbraced:
		if !n.Closed {
			sb.WriteString(" (open)")
		}
	}
	sb.WriteString("\n")

	for _, child := range n.Children {
		t.writeIndent(sb, child, indent+1, showPositions)
	}
}

// Render reproduces the markup the tree was built from. Closing delimiters
// are only written for arguments that were closed in the source. Comments
// and verbatim bodies are not part of the tree and are not reproduced.
func (t *Tree) Render() string {
	var sb strings.Builder
	t.render(&sb, t.Root())
	return sb.String()
}

func (t *Tree) render(sb *strings.Builder, id NodeID) {
	n := t.nodes[id]
	switch n.Kind {
	case KindDocument:
		t.renderChildren(sb, id)
	case KindCommand:
		sb.WriteString(`\` + n.Value)
		t.renderChildren(sb, id)
	case KindMandatoryArgument, KindEmbraced:
		t.renderDelimited(sb, id, "{", "}")
	case KindOptionalArgument:
		t.renderDelimited(sb, id, "[", "]")
	case KindText:
		sb.WriteString(n.Value)
	}
}

func (t *Tree) renderDelimited(sb *strings.Builder, id NodeID, open, close string) {
	sb.WriteString(open)
	t.renderChildren(sb, id)
	if t.nodes[id].Closed {
		sb.WriteString(close)
	}
}

func (t *Tree) renderChildren(sb *strings.Builder, id NodeID) {
	for _, child := range t.nodes[id].Children {
		t.render(sb, child)
	}
}

// Document is the localized tree of one source file.
type Document struct {
	Tree
	File     string
	comments []Comment

	masterOnce sync.Once
	master     bool
}

func newDocument(file, source string) *Document {
	d := &Document{File: file}
	d.localized = true
	d.newNode(KindDocument, file, 0, utf8.RuneCountInString(source))
	return d
}

// Comments returns the comments of the source in order of appearance.
func (d *Document) Comments() []Comment {
	return d.comments
}

// Tasks returns the TODO and FIXME annotations found in the comments.
func (d *Document) Tasks() []Issue {
	tasks := ExtractTasks(d.comments)
	for i := range tasks {
		tasks[i].File = d.File
	}
	return tasks
}

// IsMaster reports whether the document contains \begin{document}. Only
// direct children of the root are inspected, so a \begin{document} nested
// in a group is not detected. The result is computed once.
func (d *Document) IsMaster() bool {
	d.masterOnce.Do(func() {
		d.master = d.detectMaster()
	})
	return d.master
}

func (d *Document) detectMaster() bool {
	for _, id := range d.Children(d.Root()) {
		if d.Kind(id) != KindCommand || d.Value(id) != "begin" {
			continue
		}
		arg := d.FirstChildOfKind(id, KindMandatoryArgument)
		if arg != NoNode && d.InnerText(arg) == "document" {
			return true
		}
	}
	return false
}
