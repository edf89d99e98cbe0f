package completion

import (
	"slices"

	"github.com/dhamidi/texls/latex/parser"
)

// Context holds the names offered by completion in addition to the
// built-in ones. Files are names relative to the edited file's directory.
type Context struct {
	Commands     []string
	Environments []string
	Labels       []string
	Citations    []string
	Files        []string
}

// Harvest collects labels, bibliography items and user definitions from a
// parsed document.
func Harvest(doc *parser.Document) Context {
	var ctx Context
	doc.Walk(doc.Root(), func(id parser.NodeID, depth int) bool {
		if doc.Kind(id) != parser.KindCommand {
			return true
		}
		arg := doc.FirstChildOfKind(id, parser.KindMandatoryArgument)
		if arg == parser.NoNode {
			return true
		}
		switch doc.Value(id) {
		case "label":
			ctx.Labels = appendName(ctx.Labels, doc.InnerText(arg))
		case "bibitem":
			ctx.Citations = appendName(ctx.Citations, doc.InnerText(arg))
		case "begin", "newenvironment", "renewenvironment":
			ctx.Environments = appendName(ctx.Environments, doc.InnerText(arg))
		case "newcommand", "renewcommand", "providecommand", "DeclareMathOperator":
			if cmd := doc.FirstChildOfKind(arg, parser.KindCommand); cmd != parser.NoNode {
				ctx.Commands = appendName(ctx.Commands, doc.Value(cmd))
			}
		}
		return true
	})
	return ctx
}

// Merge adds the names of other that are not yet present.
func (c *Context) Merge(other Context) {
	for _, name := range other.Commands {
		c.Commands = appendName(c.Commands, name)
	}
	for _, name := range other.Environments {
		c.Environments = appendName(c.Environments, name)
	}
	for _, name := range other.Labels {
		c.Labels = appendName(c.Labels, name)
	}
	for _, name := range other.Citations {
		c.Citations = appendName(c.Citations, name)
	}
	for _, name := range other.Files {
		c.Files = appendName(c.Files, name)
	}
}

func appendName(names []string, name string) []string {
	if name == "" || slices.Contains(names, name) {
		return names
	}
	return append(names, name)
}
