package llm

import (
	"encoding/json"
	"strings"
)

const maxRawLen = 500

// parseAnalysis turns a model response into an AnalysisResult. It tries
// the full text as JSON first, then the first-{ to last-} substring
// (models often wrap JSON in prose or markdown fences). If neither
// parses, it returns a sentinel result instead of an error.
func parseAnalysis(content string) *AnalysisResult {
	var result AnalysisResult
	if err := json.Unmarshal([]byte(content), &result); err == nil {
		return &result
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		result = AnalysisResult{}
		if err := json.Unmarshal([]byte(content[start:end+1]), &result); err == nil {
			return &result
		}
	}

	raw := content
	if len(raw) > maxRawLen {
		raw = raw[:maxRawLen]
	}
	return &AnalysisResult{
		Err: "failed to parse analysis response",
		Raw: raw,
	}
}
