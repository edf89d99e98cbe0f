package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var taskPattern = regexp.MustCompile(`(TODO|FIXME)\w?:?(?P<text>.*)`)

// Comment is the text of a comment without its leading percent sign.
// Offset is the position of the percent sign.
type Comment struct {
	Text   string
	Offset int
}

// ExtractTasks turns comments containing a TODO or FIXME marker into task
// issues. The issue spans the marker and the text following it.
func ExtractTasks(comments []Comment) []Issue {
	textGroup := taskPattern.SubexpIndex("text")

	var issues []Issue
	for _, c := range comments {
		m := taskPattern.FindStringSubmatchIndex(c.Text)
		if m == nil {
			continue
		}
		base := c.Offset + 1
		issues = append(issues, Issue{
			Message:  strings.TrimSpace(c.Text[m[2*textGroup]:m[2*textGroup+1]]),
			Severity: SeverityTask,
			Start:    base + utf8.RuneCountInString(c.Text[:m[0]]),
			End:      base + utf8.RuneCountInString(c.Text[:m[1]]),
		})
	}
	return issues
}
