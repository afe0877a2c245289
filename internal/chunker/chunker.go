package chunker

import (
	"codeberg.org/policydesk/server/internal/loader"
	"codeberg.org/policydesk/server/internal/logger"
)

func DefaultOptions() SplitOptions {
	return SplitOptions{
		ChunkSize:    800,
		ChunkOverlap: 200,
		Separators:   []string{"\n\n", "\n", " ", ""},
	}
}

// splits a single extracted page into chunks
// every chunk keeps the page's source and page number for citations
func SplitPage(page loader.Page, opts SplitOptions) []Chunk {
	pieces := splitText(page.Text, opts.Separators, opts)

	chunks := make([]Chunk, 0, len(pieces))

	for _, piece := range pieces {
		if piece == "" {
			continue
		}

		chunks = append(chunks, Chunk{
			Source:  page.Source,
			Page:    page.PageNumber,
			Content: piece,
		})
	}

	return chunks
}

// splits all pages of a document set into chunks
func SplitPages(pages []loader.Page, opts SplitOptions) []Chunk {
	var allChunks []Chunk

	for _, page := range pages {
		allChunks = append(allChunks, SplitPage(page, opts)...)
	}

	logger.Info("split pages into chunks",
		"page_count", len(pages),
		"chunk_count", len(allChunks),
	)

	return allChunks
}
