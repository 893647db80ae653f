package news

import (
	"fmt"
	"regexp"
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Problem is a single finding about an index entry.
type Problem struct {
	Position int
	ID       string
	Message  string
}

func (p Problem) String() string {
	return fmt.Sprintf("#%d %s: %s", p.Position, p.ID, p.Message)
}

// Validate reports structural problems in the index: duplicate ids,
// malformed or out-of-order dates and empty required fields.
func (idx Index) Validate() []Problem {
	var problems []Problem
	firstSeen := make(map[string]int, len(idx))

	for i, item := range idx {
		report := func(format string, args ...any) {
			problems = append(problems, Problem{Position: i, ID: item.ID, Message: fmt.Sprintf(format, args...)})
		}

		if item.ID == "" {
			report("id is empty")
		} else if j, dup := firstSeen[item.ID]; dup {
			report("duplicate id, first seen at #%d", j)
		} else {
			firstSeen[item.ID] = i
		}

		if !isoDate.MatchString(item.Date) {
			report("date %q is not YYYY-MM-DD", item.Date)
		} else if i > 0 && isoDate.MatchString(idx[i-1].Date) && item.Date > idx[i-1].Date {
			report("dated %s, newer than #%d; the index must be newest-first", item.Date, i-1)
		}
		if item.Title == "" {
			report("title is empty")
		}
		if item.Link == "" {
			report("link is empty")
		}
		if item.MarkdownPath == "" {
			report("markdownPath is empty")
		}
	}
	return problems
}
