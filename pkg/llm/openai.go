package llm

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIAnalyzer struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewOpenAIAnalyzer(apiKey string) *OpenAIAnalyzer {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIAnalyzer{
		client:    &client,
		model:     openai.ChatModelGPT4oMini,
		modelName: "gpt-4o-mini",
	}
}

func (a *OpenAIAnalyzer) Analyze(text string, docType string) (*AnalysisResult, error) {
	prompt := buildPrompt(text, docType)

	resp, err := a.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: a.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})

	if err != nil {
		return nil, &AnalysisError{Detail: "openai API error", Cause: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &AnalysisError{Detail: "no response from openai"}
	}

	return parseAnalysis(resp.Choices[0].Message.Content), nil
}
