package parser

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, input string) (*Document, IssueList) {
	t.Helper()
	var issues IssueList
	doc, err := Parse(input, "test.tex", &issues)
	if err != nil {
		t.Fatalf("Parse(%q): unexpected error: %v", input, err)
	}
	return doc, issues
}

func TestParseCommandWithArgument(t *testing.T) {
	doc, issues := mustParse(t, `\foo{bar}`)
	if len(issues) != 0 {
		t.Fatalf("got issues %v, want none", issues)
	}

	root := doc.Children(doc.Root())
	if len(root) != 1 {
		t.Fatalf("root has %d children, want 1", len(root))
	}
	cmd := doc.Node(root[0])
	if cmd.Kind != KindCommand || cmd.Value != "foo" {
		t.Fatalf("got %v %q, want Command foo", cmd.Kind, cmd.Value)
	}
	if cmd.Start != 0 || cmd.End != 9 {
		t.Errorf("command span = [%d,%d), want [0,9)", cmd.Start, cmd.End)
	}
	if len(cmd.Children) != 1 {
		t.Fatalf("command has %d children, want 1", len(cmd.Children))
	}
	arg := doc.Node(cmd.Children[0])
	if arg.Kind != KindMandatoryArgument || !arg.Closed {
		t.Errorf("got %v closed=%v, want closed MandatoryArgument", arg.Kind, arg.Closed)
	}
	if arg.Start != 4 || arg.End != 9 {
		t.Errorf("argument span = [%d,%d), want [4,9)", arg.Start, arg.End)
	}
	if arg.Parent != root[0] {
		t.Errorf("argument parent = %d, want %d", arg.Parent, root[0])
	}
	if got := doc.InnerText(cmd.Children[0]); got != "bar" {
		t.Errorf("InnerText = %q, want %q", got, "bar")
	}
}

func TestParseOptionalBeforeMandatory(t *testing.T) {
	doc, issues := mustParse(t, `\foo[opt]{bar}`)
	if len(issues) != 0 {
		t.Fatalf("got issues %v, want none", issues)
	}
	cmd := doc.FirstChildOfKind(doc.Root(), KindCommand)
	args := doc.Children(cmd)
	if len(args) != 2 {
		t.Fatalf("got %d arguments, want 2", len(args))
	}
	if doc.Kind(args[0]) != KindOptionalArgument || doc.InnerText(args[0]) != "opt" {
		t.Errorf("first argument = %v %q, want OptionalArgument opt", doc.Kind(args[0]), doc.InnerText(args[0]))
	}
	if doc.Kind(args[1]) != KindMandatoryArgument || doc.InnerText(args[1]) != "bar" {
		t.Errorf("second argument = %v %q, want MandatoryArgument bar", doc.Kind(args[1]), doc.InnerText(args[1]))
	}
}

func TestParseUnclosedArgument(t *testing.T) {
	doc, issues := mustParse(t, `\foo{bar`)
	if len(issues) != 1 {
		t.Fatalf("got %d issues %v, want 1", len(issues), issues)
	}
	issue := issues[0]
	if issue.Severity != SeverityError || issue.Message != "Unclosed {" {
		t.Errorf("issue = %+v, want error Unclosed {", issue)
	}
	if issue.Start != 4 || issue.End != 5 || issue.File != "test.tex" {
		t.Errorf("issue span = %s [%d,%d), want test.tex [4,5)", issue.File, issue.Start, issue.End)
	}

	cmd := doc.FirstChildOfKind(doc.Root(), KindCommand)
	arg := doc.Node(doc.FirstChildOfKind(cmd, KindMandatoryArgument))
	if arg.Closed {
		t.Error("argument is closed, want open")
	}
	if arg.End != 8 {
		t.Errorf("argument end = %d, want 8", arg.End)
	}
}

func TestParseUnclosedOptionalArgument(t *testing.T) {
	_, issues := mustParse(t, `\item[a`)
	if len(issues) != 1 || issues[0].Message != "Unclosed [" || issues[0].Start != 5 {
		t.Errorf("got %v, want one Unclosed [ at 5", issues)
	}
}

func TestParseStrayClosingBraceAborts(t *testing.T) {
	var issues IssueList
	doc, err := Parse("text}}", "test.tex", &issues)
	if doc != nil {
		t.Error("got a document, want nil")
	}
	var abort *AbortError
	if !errors.As(err, &abort) {
		t.Fatalf("err = %v, want *AbortError", err)
	}
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1", len(issues))
	}
	if abort.Issue != issues[0] {
		t.Errorf("abort issue = %+v, want %+v", abort.Issue, issues[0])
	}
	if issues[0].Start != 4 || issues[0].Severity != SeverityError {
		t.Errorf("issue = %+v, want error at 4", issues[0])
	}
}

func TestParseNilSink(t *testing.T) {
	if _, err := Parse(`\foo{`, "x.tex", nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseRecoverableIssues(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"[x]", "Unexpected [ with Document on stack"},
		{"{[}", "Unexpected [ with Embraced on stack"},
		{"{]}", "Unexpected ] with Embraced on stack and no optional argument"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, issues := mustParse(t, tt.input)
			if len(issues) != 1 || issues[0].Message != tt.message {
				t.Errorf("got %v, want one issue %q", issues, tt.message)
			}
		})
	}
}

func TestParseClosingBracketSearchesWholeStack(t *testing.T) {
	doc, issues := mustParse(t, `{\foo[a{b]c}`)
	if len(issues) != 0 {
		t.Fatalf("got issues %v, want none", issues)
	}
	want := `Document test.tex
  Embraced
    Command foo
      OptionalArgument
        Text "a"
        Embraced (open)
          Text "b"
    Text "c"
`
	if got := doc.String(); got != want {
		t.Errorf("tree:\n%s\nwant:\n%s", got, want)
	}
}

func TestParseLiteralBrackets(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a]", "Document test.tex\n  Text \"a]\"\n"},
		{`\foo]`, "Document test.tex\n  Command foo\n  Text \"]\"\n"},
		{"see [1]", "Document test.tex\n  Text \"see [\"\n  Text \"1]\"\n"},
		{`\foo{[x]}`, "Document test.tex\n  Command foo\n    MandatoryArgument\n      Text \"[\"\n      Text \"x]\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc, issues := mustParse(t, tt.input)
			if len(issues) != 0 {
				t.Fatalf("got issues %v, want none", issues)
			}
			if got := doc.String(); got != tt.want {
				t.Errorf("tree:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestParseImplicitClose(t *testing.T) {
	doc, _ := mustParse(t, `\a\b{c} d`)
	want := "Document test.tex\n  Command a\n  Command b\n    MandatoryArgument\n      Text \"c\"\n  Text \" d\"\n"
	if got := doc.String(); got != want {
		t.Errorf("tree:\n%s\nwant:\n%s", got, want)
	}
}

func TestParseComments(t *testing.T) {
	doc, issues := mustParse(t, "a%TODO: x }\nb")
	if len(issues) != 0 {
		t.Fatalf("got issues %v, want none", issues)
	}
	comments := doc.Comments()
	if len(comments) != 1 || comments[0].Text != "TODO: x }" || comments[0].Offset != 1 {
		t.Fatalf("comments = %+v", comments)
	}
	texts := doc.ChildrenOfKind(doc.Root(), KindText)
	if len(texts) != 2 {
		t.Errorf("got %d text nodes, want 2", len(texts))
	}

	tasks := doc.Tasks()
	if len(tasks) != 1 || tasks[0].Message != "x }" || tasks[0].File != "test.tex" {
		t.Errorf("tasks = %+v", tasks)
	}
}

func TestParseVerbatimIsSkipped(t *testing.T) {
	doc, issues := mustParse(t, `\begin{verbatim}}{\end{verbatim}`)
	if len(issues) != 0 {
		t.Fatalf("got issues %v, want none", issues)
	}
	if got := doc.Render(); got != `\begin{verbatim}\end{verbatim}` {
		t.Errorf("Render = %q", got)
	}
}

func TestIsMaster(t *testing.T) {
	tests := []struct {
		input  string
		master bool
	}{
		{"\\documentclass{article}\n\\begin{document}\nHi\n\\end{document}\n", true},
		{`\begin{ document}`, false},
		{`\begin{figure}x\end{figure}`, false},
		{`\begin`, false},
		{`{\begin{document}}`, false},
		{`\section{Intro}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc, _ := mustParse(t, tt.input)
			if got := doc.IsMaster(); got != tt.master {
				t.Errorf("IsMaster() = %v, want %v", got, tt.master)
			}
			if got := doc.IsMaster(); got != tt.master {
				t.Errorf("second IsMaster() = %v, want %v", got, tt.master)
			}
		})
	}
}

var wellFormed = []string{
	"",
	"plain text",
	`\foo{bar}`,
	`\foo[opt]{bar}`,
	`\section*{Intro} text \emph{x}\\`,
	"\\documentclass[a4paper]{article}\n\\begin{document}\n\\title{T}\n\\end{document}\n",
	`{\bf bold} and {{nested}}`,
	`\frac{a}{b}[c]`,
	`\foo[a{b}c]{d}`,
	`see [1] and \cite[p.~3]{key}`,
	`\ä und ü`,
	`\`,
}

func TestRenderRoundTrip(t *testing.T) {
	inputs := append([]string{`\foo{bar`, `\a[b`, `{{x}`}, wellFormed...)
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			doc, _ := mustParse(t, input)
			if got := doc.Render(); got != input {
				t.Errorf("Render = %q, want %q", got, input)
			}
		})
	}
}

func TestWellFormedHasNoIssues(t *testing.T) {
	for _, input := range wellFormed {
		t.Run(input, func(t *testing.T) {
			_, issues := mustParse(t, input)
			if len(issues) != 0 {
				t.Errorf("got issues %v, want none", issues)
			}
		})
	}
}

func TestReparseIsIsomorphic(t *testing.T) {
	for _, input := range wellFormed {
		t.Run(input, func(t *testing.T) {
			first, _ := mustParse(t, input)
			second, _ := mustParse(t, first.Render())
			if first.StringWithPositions() != second.StringWithPositions() {
				t.Errorf("trees differ:\n%s\n%s", first.StringWithPositions(), second.StringWithPositions())
			}
		})
	}
}

func TestSpansAreNested(t *testing.T) {
	inputs := append([]string{
		`\foo{bar`,
		`{\foo[a{b]c}`,
		`[x] {]} \a[b{c`,
		"\\x{%}\n}",
		`\foo{[x]}]`,
	}, wellFormed...)

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			doc, _ := mustParse(t, input)
			doc.Walk(doc.Root(), func(id NodeID, depth int) bool {
				n := doc.Node(id)
				if n.Start > n.End {
					t.Errorf("%v %q: start %d > end %d", n.Kind, n.Value, n.Start, n.End)
				}
				if n.Parent == NoNode {
					return true
				}
				p := doc.Node(n.Parent)
				if n.Start < p.Start || n.End > p.End {
					t.Errorf("%v [%d,%d) outside parent %v [%d,%d)", n.Kind, n.Start, n.End, p.Kind, p.Start, p.End)
				}
				return true
			})
		})
	}
}

func TestNodeAt(t *testing.T) {
	doc, _ := mustParse(t, `\foo{bar} baz`)
	tests := []struct {
		offset int
		kind   NodeKind
	}{
		{0, KindCommand},
		{4, KindMandatoryArgument},
		{6, KindText},
		{11, KindText},
		{13, KindDocument},
	}
	for _, tt := range tests {
		if got := doc.Kind(doc.NodeAt(tt.offset)); got != tt.kind {
			t.Errorf("NodeAt(%d) = %v, want %v", tt.offset, got, tt.kind)
		}
	}
}

func TestStringWithPositions(t *testing.T) {
	doc, _ := mustParse(t, `\a{b}`)
	got := doc.StringWithPositions()
	if !strings.Contains(got, "Command [0-5] a") || !strings.Contains(got, `Text [3-4] "b"`) {
		t.Errorf("StringWithPositions:\n%s", got)
	}
}
