package llm

import (
	"fmt"
	"strings"
)

const promptVersion = "v2"

// maxInputChars bounds the document text sent to the model. Longer
// documents are truncated, not chunked.
const maxInputChars = 20000

var topics = []string{
	"housing", "zoning", "taxes", "budget", "transportation",
	"parks", "environment", "public_safety", "infrastructure",
	"development", "permits", "other",
}

func buildPrompt(text, docType string) string {
	if len(text) > maxInputChars {
		text = text[:maxInputChars]
	}

	return fmt.Sprintf(`You are analyzing a Spokane City Council %s for citizens who want to stay informed.

Extract DETAILED, SPECIFIC information for each significant agenda item.

For EACH item, provide:
1. title: Clear name
2. topic: One of [%s]
3. relevance: 1-5 (5 = highest public interest)
4. summary: 2-3 sentences
5. key_details: Bullet points of specific facts (dollar amounts, locations, timelines)
6. why_it_matters: One sentence on citizen impact
7. status: first_reading, final_reading, hearing, consent, action, or informational
8. decision: approved/denied/deferred/pending (if applicable)
9. economic_axis: -5 (left) to +5 (right), 0 = neutral
10. social_axis: -5 (libertarian) to +5 (authoritarian), 0 = neutral

Return JSON only, no other text:
{
  "summary": "overview",
  "items": [{ ... }],
  "notable_items": ["..."]
}

Document text:
%s`, docType, strings.Join(topics, ", "), text)
}
