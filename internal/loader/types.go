package loader

// a single page of extracted PDF text
// pages are the citation unit: answers reference document name + page number
type Page struct {
	Source     string // file name relative to the data directory
	PageNumber int    // 1-based, as reported by the PDF reader
	Text       string
}
