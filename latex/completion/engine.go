// Package completion proposes commands and argument values for the text
// left of the cursor, using the prefix parser to find out what is being
// typed.
package completion

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/dhamidi/texls/latex/parser"
)

type Kind int

const (
	KindCommand Kind = iota
	KindEnvironment
	KindLabel
	KindCitation
	KindFile
	KindPackage
)

var kindNames = map[Kind]string{
	KindCommand:     "command",
	KindEnvironment: "environment",
	KindLabel:       "label",
	KindCitation:    "citation",
	KindFile:        "file",
	KindPackage:     "package",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Item is a single proposal. InsertText completes what has been typed so
// far; Typed is the part of the word already present left of the cursor.
type Item struct {
	Label      string
	Kind       Kind
	InsertText string
	Typed      string
}

type Engine struct {
	// Window bounds the number of characters handed to the prefix parser.
	Window int
}

func NewEngine(window int) *Engine {
	return &Engine{Window: window}
}

// Complete returns the proposals for the cursor at the end of prefix. It
// returns nothing when the prefix cannot be parsed.
func (e *Engine) Complete(ctx Context, prefix string) []Item {
	if e.Window > 0 {
		if runes := []rune(prefix); len(runes) > e.Window {
			prefix = string(runes[len(runes)-e.Window:])
		}
	}

	tree, err := parser.ParsePrefix(prefix)
	if err != nil {
		return nil
	}

	deepest := tree.Root()
	for last := tree.LastChild(deepest); last != parser.NoNode; last = tree.LastChild(deepest) {
		deepest = last
	}

	if tree.Kind(deepest) == parser.KindCommand && len(tree.Children(deepest)) == 0 {
		name := tree.Value(deepest)
		if strings.HasSuffix(prefix, `\`+name) {
			return completeCommands(ctx, name)
		}
		return nil
	}

	arg := deepest
	if tree.Kind(arg) == parser.KindText {
		arg = tree.Parent(arg)
	}
	if tree.Kind(arg) != parser.KindMandatoryArgument || tree.Node(arg).Closed {
		return nil
	}
	cmd := tree.Parent(arg)
	if tree.Kind(cmd) != parser.KindCommand {
		return nil
	}
	return completeArgument(ctx, tree.Value(cmd), tree.InnerText(arg))
}

func completeCommands(ctx Context, typed string) []Item {
	names := slices.Concat(builtinCommands, ctx.Commands)
	return proposals(names, typed, KindCommand, func(name string) string { return `\` + name })
}

func completeArgument(ctx Context, command, typed string) []Item {
	switch {
	case slices.Contains(labelCommands, command):
		return proposals(ctx.Labels, typed, KindLabel, nil)
	case slices.Contains(citeCommands, command):
		if i := strings.LastIndex(typed, ","); i >= 0 {
			typed = typed[i+1:]
		}
		return proposals(ctx.Citations, strings.TrimSpace(typed), KindCitation, nil)
	case command == "begin" || command == "end":
		return proposals(slices.Concat(builtinEnvironments, ctx.Environments), typed, KindEnvironment, nil)
	case command == "usepackage":
		return proposals(builtinPackages, typed, KindPackage, nil)
	case slices.Contains(includeCommands, command):
		return proposals(filesWithExtensions(ctx.Files, []string{".tex"}, true), typed, KindFile, nil)
	case slices.Contains(bibCommands, command):
		return proposals(filesWithExtensions(ctx.Files, []string{".bib"}, command == "bibliography"), typed, KindFile, nil)
	case slices.Contains(graphicsCommands, command):
		return proposals(filesWithExtensions(ctx.Files, graphicExtensions, false), typed, KindFile, nil)
	}
	return nil
}

func proposals(names []string, typed string, kind Kind, label func(string) string) []Item {
	var items []Item
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] || !strings.HasPrefix(name, typed) {
			continue
		}
		seen[name] = true
		item := Item{
			Label:      name,
			Kind:       kind,
			InsertText: name[len(typed):],
			Typed:      typed,
		}
		if label != nil {
			item.Label = label(name)
		}
		items = append(items, item)
	}
	slices.SortFunc(items, func(a, b Item) int { return strings.Compare(a.Label, b.Label) })
	return items
}

func filesWithExtensions(files, extensions []string, trimExtension bool) []string {
	var names []string
	for _, f := range files {
		ext := filepath.Ext(f)
		if !slices.Contains(extensions, ext) {
			continue
		}
		if trimExtension {
			f = strings.TrimSuffix(f, ext)
		}
		names = append(names, f)
	}
	return names
}
