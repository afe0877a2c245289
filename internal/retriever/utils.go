package retriever

const defaultTopK = 4

// rune-safe truncation used for source snippets
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	return string(runes[:maxLen]) + "..."
}
