package analyzer

import (
	"fmt"
	"strings"
)

// snippetRadius is the fixed number of context lines shown above and
// below the handler line.
const snippetRadius = 2

// extractSnippet renders the source around the given 1-based line,
// marking the handler line itself.
func extractSnippet(sourceLines []string, lineNum int) string {
	start := lineNum - snippetRadius - 1
	if start < 0 {
		start = 0
	}
	end := lineNum + snippetRadius
	if end > len(sourceLines) {
		end = len(sourceLines)
	}

	var lines []string
	for i := start; i < end; i++ {
		marker := "    "
		if i == lineNum-1 {
			marker = ">>> "
		}
		lines = append(lines, fmt.Sprintf("%s%3d: %s", marker, i+1, strings.TrimRight(sourceLines[i], " \t\r")))
	}

	return strings.Join(lines, "\n")
}
