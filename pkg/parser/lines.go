package parser

import "strings"

// splitLines splits input on "\r\n", "\n" or "\r". A line ending at the very
// end of input does not start another line. NUL bytes become U+FFFD.
func splitLines(input string) []string {
	if strings.IndexByte(input, 0) >= 0 {
		input = strings.ReplaceAll(input, "\x00", "�")
	}

	lines := make([]string, 0, strings.Count(input, "\n")+1)
	lineStart := 0
	for i := 0; i < len(input); i++ {
		switch input[i] {
		case '\n':
			lines = append(lines, input[lineStart:i])
			lineStart = i + 1
		case '\r':
			lines = append(lines, input[lineStart:i])
			if i+1 < len(input) && input[i+1] == '\n' {
				i++
			}
			lineStart = i + 1
		}
	}

	if lineStart < len(input) || len(input) == 0 {
		lines = append(lines, input[lineStart:])
	}
	return lines
}
