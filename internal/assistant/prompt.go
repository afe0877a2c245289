package assistant

import (
	"fmt"
	"strings"

	"codeberg.org/policydesk/server/internal/retriever"
)

// the exact sentence the model must use when the context cannot answer
const RefusalSentence = "I don't have enough information in the company policies to answer that question."

// assembles the complete system prompt from retrieved passages
func buildSystemPrompt(passages []retriever.SearchResult) string {
	var builder strings.Builder

	builder.WriteString("You are a helpful assistant for company policies.\n\n")

	builder.WriteString("═══════════════════════════════════════════════════════════\n")
	builder.WriteString("CONTEXT FROM POLICY DOCUMENTS\n")
	builder.WriteString("═══════════════════════════════════════════════════════════\n\n")

	if len(passages) == 0 {
		builder.WriteString("(no relevant passages found)\n\n")
	}

	// group passages by document so citations read naturally
	docMap := make(map[string][]retriever.SearchResult)
	docOrder := []string{}

	for _, p := range passages {
		if _, exists := docMap[p.Source]; !exists {
			docOrder = append(docOrder, p.Source)
		}
		docMap[p.Source] = append(docMap[p.Source], p)
	}

	for _, doc := range docOrder {
		builder.WriteString("─────────────────────────────────────────\n")
		builder.WriteString(fmt.Sprintf("Document: %s\n", doc))
		builder.WriteString("─────────────────────────────────────────\n")

		for _, p := range docMap[doc] {
			builder.WriteString(fmt.Sprintf("\n[Page %d]\n", p.Page))
			builder.WriteString(p.Content)
			builder.WriteString("\n")
		}

		builder.WriteString("\n")
	}

	builder.WriteString("═══════════════════════════════════════════════════════════\n")
	builder.WriteString("INSTRUCTIONS\n")
	builder.WriteString("═══════════════════════════════════════════════════════════\n\n")
	builder.WriteString(getInstructions())

	return builder.String()
}

// returns the core instructions
func getInstructions() string {
	return `Answer the user's question as clearly as possible, using ONLY the context above.

Guidelines:
- Base every statement on the CONTEXT FROM POLICY DOCUMENTS section
- Always cite the document and page when answering, e.g. (leave_policy.pdf, page 3)
- If the context does not contain the answer, reply exactly:
  "` + RefusalSentence + `"
- Do not speculate or draw on outside knowledge about policies
- Keep answers concise and direct; use the user's wording where possible
`
}
