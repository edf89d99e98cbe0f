package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/dhamidi/texls/latex/parser"
)

var (
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
	colorTask    = lipgloss.Color("#06B6D4")
	colorMuted   = lipgloss.Color("#6B7280")

	locationStyle = lipgloss.NewStyle().Foreground(colorMuted)
	severityStyle = map[parser.Severity]lipgloss.Style{
		parser.SeverityError:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		parser.SeverityWarning: lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
		parser.SeverityTask:    lipgloss.NewStyle().Foreground(colorTask),
	}
)

// formatIssue renders an issue as file:line:column with one-based line and
// column numbers.
func formatIssue(issue parser.Issue, lines *parser.LineIndex) string {
	pos := lines.Position(issue.Start)
	location := fmt.Sprintf("%s:%d:%d:", issue.File, pos.Line+1, pos.Column+1)
	return fmt.Sprintf("%s %s %s",
		locationStyle.Render(location),
		severityStyle[issue.Severity].Render(issue.Severity.String()+":"),
		issue.Message,
	)
}

// parseFile reads and parses filename, collecting its issues. doc is nil
// when the parse aborted.
func parseFile(filename string) (doc *parser.Document, issues parser.IssueList, lines *parser.LineIndex, err error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read %s: %w", filename, err)
	}
	source := string(data)
	lines = parser.NewLineIndex(source)
	// An aborted parse returns a nil document; its issue is already in issues.
	doc, _ = parser.Parse(source, filename, &issues)
	return doc, issues, lines, nil
}
