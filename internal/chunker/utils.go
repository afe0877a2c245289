package chunker

import "strings"

// recursively splits text, preferring the coarsest separator that appears
// pieces longer than ChunkSize are re-split with the next finer separator,
// then merged back together up to ChunkSize with ChunkOverlap carried over
func splitText(text string, separators []string, opts SplitOptions) []string {
	if text == "" {
		return nil
	}

	// pick the first separator present in the text; "" always matches
	separator := separators[len(separators)-1]
	var remaining []string

	for i, sep := range separators {
		if sep == "" || strings.Contains(text, sep) {
			separator = sep
			remaining = separators[i+1:]
			break
		}
	}

	splits := splitOnSeparator(text, separator)

	var final []string
	var pending []string

	for _, s := range splits {
		if len(s) <= opts.ChunkSize {
			pending = append(pending, s)
			continue
		}

		// flush what fits before handling the oversized piece
		final = append(final, mergeSplits(pending, separator, opts)...)
		pending = nil

		if len(remaining) == 0 {
			// no finer separator left, emit as-is
			final = append(final, s)
			continue
		}

		final = append(final, splitText(s, remaining, opts)...)
	}

	final = append(final, mergeSplits(pending, separator, opts)...)

	return final
}

// splits on separator, keeping empty pieces out
func splitOnSeparator(text, separator string) []string {
	var parts []string

	if separator == "" {
		// character-level fallback: cut into runes
		for _, r := range text {
			parts = append(parts, string(r))
		}

		return parts
	}

	for _, p := range strings.Split(text, separator) {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return parts
}

// greedily joins splits into chunks of at most ChunkSize characters,
// carrying ChunkOverlap characters of trailing splits into the next chunk
func mergeSplits(splits []string, separator string, opts SplitOptions) []string {
	if len(splits) == 0 {
		return nil
	}

	sepLen := len(separator)

	var chunks []string
	var window []string
	total := 0

	flush := func() {
		if len(window) == 0 {
			return
		}

		chunk := strings.TrimSpace(strings.Join(window, separator))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	for _, s := range splits {
		addition := len(s)
		if len(window) > 0 {
			addition += sepLen
		}

		if total+addition > opts.ChunkSize && len(window) > 0 {
			flush()

			// drop leading splits until the retained tail fits the overlap
			// budget and leaves room for the incoming split
			for len(window) > 0 && (total > opts.ChunkOverlap || total+addition > opts.ChunkSize) {
				total -= len(window[0])
				if len(window) > 1 {
					total -= sepLen
				}
				window = window[1:]
			}
		}

		if len(window) > 0 {
			total += sepLen
		}

		window = append(window, s)
		total += len(s)
	}

	flush()

	return chunks
}
