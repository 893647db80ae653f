package news

import (
	"regexp"
	"strings"
)

var slashDate = regexp.MustCompile(`^(\d{4})/(\d{2})/(\d{2})$`)

// FormatDate renders 2024-03-05 as 2024年03月05日. Dates that do not have
// that exact shape come back with dashes turned into slashes.
func FormatDate(date string) string {
	s := strings.ReplaceAll(date, "-", "/")
	return slashDate.ReplaceAllString(s, "${1}年${2}月${3}日")
}

// CategoryLabel renders a category for the article header, e.g. "SJCAA関連".
func CategoryLabel(category string) string {
	return strings.ToUpper(category) + "関連"
}
