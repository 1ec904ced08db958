// Package parser extracts expenses from Spanish free-text chat messages.
package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Result is an amount and description pulled out of a chat message.
type Result struct {
	Amount      float64
	Description string
}

// ws also matches Unicode spaces such as the no-break space some mobile
// keyboards insert.
const ws = `[\s\p{Zs}]`

// expensePatterns are tried in order and the first match wins. Group 1 is the
// amount, group 2 the description.
var expensePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)gast[eéoó]` + ws + `+(\d+(?:\.\d+)?)` + ws + `+sol(?:es)?` + ws + `+en` + ws + `+(.+)`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)` + ws + `+sol(?:es)?` + ws + `+en` + ws + `+(.+)`),
	regexp.MustCompile(`(?i)gast[eéoó]` + ws + `+s/?` + ws + `*(\d+(?:\.\d+)?)` + ws + `+en` + ws + `+(.+)`),
	regexp.MustCompile(`(?i)s/?` + ws + `*(\d+(?:\.\d+)?)` + ws + `+en` + ws + `+(.+)`),
}

// Parse returns the expense described by text. ok is false when no pattern
// matches, which means the message is general conversation.
func Parse(text string) (Result, bool) {
	for _, pattern := range expensePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		amount, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}

		description := strings.TrimSpace(match[2])
		if description == "" {
			continue
		}

		return Result{Amount: amount, Description: description}, true
	}

	return Result{}, false
}
