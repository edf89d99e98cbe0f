package completion

import (
	"slices"
	"testing"

	"github.com/dhamidi/texls/latex/parser"
)

func labels(items []Item) []string {
	var result []string
	for _, item := range items {
		result = append(result, item.Label)
	}
	return result
}

func TestCompleteCommands(t *testing.T) {
	ctx := Context{Commands: []string{"sectionmark", "section"}}
	items := NewEngine(0).Complete(ctx, `Hello \sec`)

	want := []string{`\section`, `\sectionmark`}
	if got := labels(items); !slices.Equal(got, want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
	if items[0].InsertText != "tion" || items[0].Typed != "sec" || items[0].Kind != KindCommand {
		t.Errorf("item = %+v", items[0])
	}
}

func TestCompleteArguments(t *testing.T) {
	ctx := Context{
		Labels:       []string{"sec:intro", "fig:a", "sec:end"},
		Citations:    []string{"knuth84", "lamport94"},
		Environments: []string{"theorem"},
		Files:        []string{"intro.tex", "refs.bib", "plot.png", "notes.txt"},
	}

	tests := []struct {
		prefix string
		want   []string
	}{
		{`see \ref{sec:`, []string{"sec:end", "sec:intro"}},
		{`\eqref{`, []string{"fig:a", "sec:end", "sec:intro"}},
		{`\cite{knuth84, la`, []string{"lamport94"}},
		{`\begin{th`, []string{"thebibliography", "theorem"}},
		{`\end{ite`, []string{"itemize"}},
		{`\usepackage{amss`, []string{"amssymb"}},
		{`\input{`, []string{"intro"}},
		{`\includegraphics[width=3cm]{`, []string{"plot.png"}},
		{`\bibliography{`, []string{"refs"}},
		{`\addbibresource{`, []string{"refs.bib"}},
	}
	engine := NewEngine(100)
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			if got := labels(engine.Complete(ctx, tt.prefix)); !slices.Equal(got, tt.want) {
				t.Errorf("labels = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompleteNothing(t *testing.T) {
	ctx := Context{Labels: []string{"a"}}
	prefixes := []string{
		"",
		"plain text",
		`\ref{a}`,
		`\section `,
		`\emph{`,
		`}`,
		`\ref{a}}`,
	}
	engine := NewEngine(0)
	for _, prefix := range prefixes {
		t.Run(prefix, func(t *testing.T) {
			if items := engine.Complete(ctx, prefix); len(items) != 0 {
				t.Errorf("got %v, want nothing", labels(items))
			}
		})
	}
}

func TestCompleteWindow(t *testing.T) {
	ctx := Context{Labels: []string{"x"}}
	// The unmatched brace lies outside the window and is not seen.
	prefix := "}" + `\ref{`
	if items := NewEngine(5).Complete(ctx, prefix); len(items) != 1 {
		t.Errorf("got %v, want one label", labels(items))
	}
	if items := NewEngine(0).Complete(ctx, prefix); len(items) != 0 {
		t.Errorf("got %v without window, want nothing", labels(items))
	}
}

func TestHarvest(t *testing.T) {
	src := `\newcommand{\R}{\mathbb{R}}
\newenvironment{proofsketch}{}{}
\section{A}\label{sec:a}
\begin{figure}\label{fig:b}\end{figure}
\begin{thebibliography}{9}\bibitem{knuth84} K.\end{thebibliography}
\label{sec:a}`
	doc, err := parser.Parse(src, "main.tex", nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := Harvest(doc)

	if !slices.Equal(ctx.Labels, []string{"sec:a", "fig:b"}) {
		t.Errorf("Labels = %v", ctx.Labels)
	}
	if !slices.Equal(ctx.Commands, []string{"R"}) {
		t.Errorf("Commands = %v", ctx.Commands)
	}
	if !slices.Equal(ctx.Citations, []string{"knuth84"}) {
		t.Errorf("Citations = %v", ctx.Citations)
	}
	if !slices.Equal(ctx.Environments, []string{"proofsketch", "figure", "thebibliography"}) {
		t.Errorf("Environments = %v", ctx.Environments)
	}

	var merged Context
	merged.Merge(ctx)
	merged.Merge(Context{Labels: []string{"sec:a", "new"}, Files: []string{"a.tex"}})
	if !slices.Equal(merged.Labels, []string{"sec:a", "fig:b", "new"}) || len(merged.Files) != 1 {
		t.Errorf("Merge = %+v", merged)
	}
}
