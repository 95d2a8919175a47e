package llm

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicAnalyzer struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicAnalyzer(apiKey string) *AnthropicAnalyzer {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicAnalyzer{
		client:    &client,
		model:     anthropic.ModelClaude3_5SonnetLatest,
		modelName: "claude-3-5-sonnet",
	}
}

func (a *AnthropicAnalyzer) Analyze(text string, docType string) (*AnalysisResult, error) {
	prompt := buildPrompt(text, docType)

	resp, err := a.client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: 4000,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})

	if err != nil {
		return nil, &AnalysisError{Detail: "anthropic API error", Cause: err}
	}

	if len(resp.Content) == 0 {
		return nil, &AnalysisError{Detail: "no response from anthropic"}
	}

	return parseAnalysis(resp.Content[0].Text), nil
}
