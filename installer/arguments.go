package installer

import "strings"

// SplitArguments tokenizes an argument string on whitespace, honoring single
// and double quotes. A backslash escapes the next character outside single
// quotes.
func SplitArguments(s string) []string {
	var (
		args    []string
		current strings.Builder
		inToken bool
		quote   rune
		escaped bool
	)

	for _, ch := range s {
		switch {
		case escaped:
			current.WriteRune(ch)
			escaped = false
		case ch == '\\' && quote != '\'':
			escaped = true
			inToken = true
		case quote != 0:
			if ch == quote {
				quote = 0
			} else {
				current.WriteRune(ch)
			}
		case ch == '"' || ch == '\'':
			quote = ch
			inToken = true
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			if inToken {
				args = append(args, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(ch)
			inToken = true
		}
	}
	if escaped {
		current.WriteRune('\\')
	}
	if inToken {
		args = append(args, current.String())
	}
	return args
}
