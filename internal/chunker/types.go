package chunker

// a chunk of policy text ready for embedding
// carries the citation metadata of the page it came from
type Chunk struct {
	Source  string // document file name
	Page    int    // 1-based page number
	Content string
}

// controls how pages are split into chunks
type SplitOptions struct {
	ChunkSize    int      // maximum chunk length in characters
	ChunkOverlap int      // characters carried over between adjacent chunks
	Separators   []string // tried in order, coarsest first
}
