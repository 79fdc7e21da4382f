package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AgentConfig describes how to reach the aiXplain model-execution API.
type AgentConfig struct {
	BaseURL           string
	APIKey            string
	AgentModelID      string
	SummarizerModelID string
	Timeout           time.Duration
}

// AgentClient executes prompts against an aiXplain-hosted agent. It
// implements Provider and, when a summarizer model id is configured,
// Summarizer.
type AgentClient struct {
	baseURL         string
	apiKey          string
	agentModel      string
	summarizerModel string
	http            *http.Client
}

// NewAgentClient validates the configuration and returns a ready-to-use client.
func NewAgentClient(cfg AgentConfig) (*AgentClient, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("assistant: agent base URL required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("assistant: agent api key required")
	}
	if strings.TrimSpace(cfg.AgentModelID) == "" {
		return nil, errors.New("assistant: agent model id required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AgentClient{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:          cfg.APIKey,
		agentModel:      cfg.AgentModelID,
		summarizerModel: strings.TrimSpace(cfg.SummarizerModelID),
		http: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// ID returns the stable source tag for this provider.
func (c *AgentClient) ID() string {
	return SourceAgent
}

// HasSummarizer reports whether a dedicated summarization model is configured.
func (c *AgentClient) HasSummarizer() bool {
	return c.summarizerModel != ""
}

// Complete runs the prompt through the hosted agent. Generation parameters
// are ignored: the agent has no tunable surface, it always executes the same
// general-purpose pipeline.
func (c *AgentClient) Complete(ctx context.Context, req PromptRequest) (PromptResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return PromptResponse{}, errors.New("assistant: agent requires a prompt")
	}

	payload := map[string]any{
		"data": req.Prompt,
	}
	data, err := c.doRequest(ctx, "/execute/"+c.agentModel, payload)
	if err != nil {
		return PromptResponse{}, err
	}

	var out struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return PromptResponse{}, fmt.Errorf("assistant: decode agent response failed: %w", err)
	}
	if strings.TrimSpace(out.Data) == "" {
		return PromptResponse{}, errors.New("assistant: agent returned empty response")
	}

	return PromptResponse{Text: out.Data}, nil
}

// Summarize calls the dedicated summarization model with the question, the
// generated response, and the output language.
func (c *AgentClient) Summarize(ctx context.Context, req SummaryRequest) (string, error) {
	if c.summarizerModel == "" {
		return "", ErrSummarizerUnavailable
	}
	if strings.TrimSpace(req.Response) == "" {
		return "", errors.New("assistant: nothing to summarize")
	}

	payload := map[string]any{
		"data": map[string]string{
			"question": req.Question,
			"response": req.Response,
			"language": req.Language,
		},
	}
	data, err := c.doRequest(ctx, "/execute/"+c.summarizerModel, payload)
	if err != nil {
		return "", err
	}

	var out struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("assistant: decode summarizer response failed: %w", err)
	}
	if strings.TrimSpace(out.Data) == "" {
		return "", errors.New("assistant: summarizer returned empty response")
	}
	return out.Data, nil
}

func (c *AgentClient) doRequest(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("assistant: failed to encode agent payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("assistant: agent request build failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assistant: agent request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("assistant: read agent response failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("assistant: agent returned %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}
	return data, nil
}
