package loader

import (
	"regexp"
	"strings"
)

var (
	// collapse runs of spaces and tabs left behind by PDF text extraction
	spaceRunRegex = regexp.MustCompile(`[ \t]+`)
	// collapse three or more newlines into a paragraph break
	newlineRunRegex = regexp.MustCompile(`\n{3,}`)
)

// normalizes whitespace in extracted PDF text
// preserves paragraph breaks so the splitter can prefer them
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = spaceRunRegex.ReplaceAllString(text, " ")
	text = newlineRunRegex.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
