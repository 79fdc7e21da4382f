package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Content-policy configuration applied to every Gemini call. Fixed, never
// caller-controlled.
var geminiSafetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockMediumAndAbove},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockMediumAndAbove},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockMediumAndAbove},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockMediumAndAbove},
}

// GeminiClient implements Provider and Summarizer using Google's Gemini API.
type GeminiClient struct {
	client  *genai.Client
	modelID string
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, apiKey, modelID string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("assistant: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("assistant: failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		modelID: modelID,
	}, nil
}

// ID returns the stable source tag for this provider.
func (c *GeminiClient) ID() string {
	return SourceGemini
}

// ModelID returns the configured Gemini model identifier.
func (c *GeminiClient) ModelID() string {
	return c.modelID
}

// Complete sends a generation request to Gemini and returns the response.
func (c *GeminiClient) Complete(ctx context.Context, req PromptRequest) (PromptResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return PromptResponse{}, errors.New("assistant: gemini requires a prompt")
	}

	model := c.client.GenerativeModel(c.modelID)

	if req.Temperature > 0 {
		model.SetTemperature(req.Temperature)
	}
	if req.TopP > 0 {
		model.SetTopP(req.TopP)
	}
	if req.TopK > 0 {
		model.SetTopK(req.TopK)
	}
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(req.MaxTokens)
	}
	model.SafetySettings = geminiSafetySettings

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return PromptResponse{}, fmt.Errorf("assistant: gemini completion failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return PromptResponse{}, errors.New("assistant: gemini returned no candidates")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return PromptResponse{}, errors.New("assistant: gemini returned empty content")
	}

	var responseText strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	text := strings.TrimSpace(responseText.String())
	if text == "" {
		return PromptResponse{}, errors.New("assistant: gemini returned no text parts")
	}

	result := PromptResponse{
		Text:       text,
		StopReason: fmt.Sprint(candidate.FinishReason),
	}

	if resp.UsageMetadata != nil {
		result.Usage = TokenUsage{
			InputTokens:  resp.UsageMetadata.PromptTokenCount,
			OutputTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:  resp.UsageMetadata.TotalTokenCount,
		}
	}

	return result, nil
}

// Summarize re-invokes the model with a summarize instruction.
func (c *GeminiClient) Summarize(ctx context.Context, req SummaryRequest) (string, error) {
	if strings.TrimSpace(req.Response) == "" {
		return "", errors.New("assistant: nothing to summarize")
	}
	maxChars := req.MaxChars
	if maxChars <= 0 {
		maxChars = 200
	}

	prompt := fmt.Sprintf(
		"Summarize the following answer in %d characters or less. Respond in %s.\n\n%s",
		maxChars, req.Language, req.Response,
	)

	resp, err := c.Complete(ctx, PromptRequest{
		Prompt:      prompt,
		MaxTokens:   256,
		Temperature: 0.3,
		TopP:        0.95,
		TopK:        40,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Close releases resources held by the Gemini client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
