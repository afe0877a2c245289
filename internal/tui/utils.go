package tui

import (
	"fmt"
	"strings"
)

// formats citations as an indented block under the answer
func formatSources(sources []sourcePayload) string {
	if len(sources) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("sources:\n")

	for _, src := range sources {
		b.WriteString(fmt.Sprintf("  %s, page %d\n", src.Document, src.Page))
	}

	return b.String()
}

// formats the retrieval summary line shown below each answer
func formatMetadata(result askResponse) string {
	return fmt.Sprintf("retrieved: %d chunks | model: %s",
		result.ChunksRetrieved,
		result.Model)
}
