package admin

// response payload for a reindex run
type ReindexResponse struct {
	Status         string `json:"status"`
	DocumentsFound int    `json:"documents_found"`
	PagesLoaded    int    `json:"pages_loaded"`
	ChunksIndexed  int    `json:"chunks_indexed"`
	TotalChunks    int    `json:"total_chunks"`
}
