package assistant

import "context"

// Source tags identify which provider produced an envelope. They are stable
// public identifiers, decoupled from model version strings.
const (
	SourceGemini        = "gemini"
	SourceAgent         = "aixplain"
	SourceAgentFallback = "aixplain-fallback"
)

type TokenUsage struct {
	InputTokens  int32
	OutputTokens int32
	TotalTokens  int32
}

// PromptRequest is a provider-neutral generation request. Generation
// parameters are fixed by the orchestrator, never caller-controlled.
type PromptRequest struct {
	Prompt      string
	MaxTokens   int32
	Temperature float32
	TopP        float32
	TopK        int32
}

type PromptResponse struct {
	Text       string
	Usage      TokenUsage
	StopReason string
}

// Provider is a text-generation backend.
type Provider interface {
	ID() string
	Complete(ctx context.Context, req PromptRequest) (PromptResponse, error)
}

// SummaryRequest asks a provider to shorten an already-generated response.
type SummaryRequest struct {
	Question string
	Response string
	Language string
	MaxChars int
}

// Summarizer produces a shortened version of a response. Summarization
// failures are always recoverable; callers substitute a degraded summary
// rather than failing the request.
type Summarizer interface {
	Summarize(ctx context.Context, req SummaryRequest) (string, error)
}
