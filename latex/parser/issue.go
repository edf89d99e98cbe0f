package parser

import (
	"errors"
	"fmt"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityTask
)

var severityNames = map[Severity]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityTask:    "task",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

// Issue describes a structural defect of the source or an annotation found
// in a comment. Start and End are character offsets into the source of File.
type Issue struct {
	Message  string
	Severity Severity
	Start    int
	End      int
	File     string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s:%d-%d: %s: %s", i.File, i.Start, i.End, i.Severity, i.Message)
}

// IssueSink receives the issues found while parsing. A sink is written by
// one parse at a time.
type IssueSink interface {
	Issue(Issue)
}

type IssueSinkFunc func(Issue)

func (f IssueSinkFunc) Issue(i Issue) {
	f(i)
}

// IssueList is an IssueSink that collects issues in order.
type IssueList []Issue

func (l *IssueList) Issue(i Issue) {
	*l = append(*l, i)
}

// Count returns the number of collected issues with the given severity.
func (l IssueList) Count(severity Severity) int {
	n := 0
	for _, i := range l {
		if i.Severity == severity {
			n++
		}
	}
	return n
}

type discardSink struct{}

func (discardSink) Issue(Issue) {}

// AbortError is returned by Parse when a closing brace has no open brace
// group to close. The issue has also been delivered to the sink.
type AbortError struct {
	Issue Issue
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("parse aborted: %s", e.Issue)
}

// ErrPrefixAborted is returned by ParsePrefix for any malformed input.
var ErrPrefixAborted = errors.New("prefix parse aborted")
