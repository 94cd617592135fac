package validation

import "regexp"

var whitespace = regexp.MustCompile(`\s`)

// EscapeTag puts a backslash in front of every whitespace character so that
// dayone2 keeps a multi-word tag as a single token: "New York" -> `New\ York`.
func EscapeTag(tag string) string {
	return whitespace.ReplaceAllString(tag, `\$0`)
}

// EscapeTags escapes every tag, preserving order.
func EscapeTags(tags []string) []string {
	escaped := make([]string, 0, len(tags))
	for _, tag := range tags {
		escaped = append(escaped, EscapeTag(tag))
	}
	return escaped
}
