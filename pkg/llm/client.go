package llm

import "fmt"

// ItemAnalysis is one analyzed agenda item as the model returns it.
type ItemAnalysis struct {
	Title        string   `json:"title"`
	Topic        string   `json:"topic"`
	Relevance    int      `json:"relevance"`
	Summary      string   `json:"summary"`
	KeyDetails   []string `json:"key_details"`
	WhyItMatters string   `json:"why_it_matters"`
	Status       string   `json:"status"`
	Decision     string   `json:"decision"`
	EconomicAxis int      `json:"economic_axis"`
	SocialAxis   int      `json:"social_axis"`
}

// AnalysisResult is the parsed model response. When the response could
// not be parsed as JSON, Err is set and Raw holds a truncated copy of
// the response text; callers must check Err before trusting Items.
type AnalysisResult struct {
	Summary      string         `json:"summary"`
	Items        []ItemAnalysis `json:"items"`
	NotableItems []string       `json:"notable_items"`

	Err string `json:"-"`
	Raw string `json:"-"`
}

// AnalysisError means the model invocation itself failed (network, auth,
// throttling). It is distinct from a parse failure, which is reported
// through AnalysisResult.Err. Not retried here; the caller decides.
type AnalysisError struct {
	Detail string
	Cause  error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed: %s", e.Detail)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

type Analyzer interface {
	Analyze(text string, docType string) (*AnalysisResult, error)
}
