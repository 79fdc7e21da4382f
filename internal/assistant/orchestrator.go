package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/healthpilot/healthpilot-api/internal/compliance"
	"github.com/healthpilot/healthpilot-api/internal/observability/metrics"
	"github.com/healthpilot/healthpilot-api/internal/textutil"
	"github.com/healthpilot/healthpilot-api/pkg/logging"
)

// Generation parameters and pipeline bounds. Fixed constants, never exposed
// to callers.
const (
	defaultMaxTokens   = 1024
	defaultTemperature = 0.7
	defaultTopP        = 0.95
	defaultTopK        = 40

	summaryThreshold = 300
	truncateLength   = 200

	generateTimeout  = 30 * time.Second
	summarizeTimeout = 15 * time.Second
)

// Query is a single assistant request. All fields are consumed at request
// start; nothing is retained afterwards.
type Query struct {
	Question string
	Mode     Mode
	Context  string
	// Profile is a rendered user-profile description; required for
	// health-tips, ignored otherwise.
	Profile string
	// UseAgent skips the primary provider and goes straight to the agent.
	UseAgent bool
}

// Validate checks the per-mode required inputs.
func (q Query) Validate() error {
	if q.Mode == ModeHealthTips {
		if strings.TrimSpace(q.Profile) == "" {
			return fmt.Errorf("%w: user profile is required for health tips", ErrInvalidRequest)
		}
		return nil
	}
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: question is required", ErrInvalidRequest)
	}
	return nil
}

// Envelope is the uniform result returned to callers regardless of which
// provider answered.
type Envelope struct {
	Response  string    `json:"response"`
	Summary   string    `json:"summary"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// Options configures an Orchestrator. Primary and Secondary may each be nil
// when the corresponding provider is unconfigured.
type Options struct {
	Primary             Provider
	PrimarySummarizer   Summarizer
	Secondary           Provider
	SecondarySummarizer Summarizer
	Language            string
	Disclaimer          *compliance.Disclaimer
	Logger              *logging.Logger
	Metrics             *metrics.AssistantMetrics
	Now                 func() time.Time
}

// Orchestrator runs the two-tier provider pipeline: attempt the primary,
// fall back to the secondary, post-process, summarize, envelope.
type Orchestrator struct {
	primary      Provider
	primarySum   Summarizer
	secondary    Provider
	secondarySum Summarizer
	language     string
	disclaimer   *compliance.Disclaimer
	logger       *logging.Logger
	metrics      *metrics.AssistantMetrics
	now          func() time.Time
}

// NewOrchestrator creates an orchestrator. Provider clients are injected so
// tests can substitute fakes; the orchestrator itself holds no mutable state.
func NewOrchestrator(opts Options) *Orchestrator {
	language := strings.TrimSpace(opts.Language)
	if language == "" {
		language = "English"
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		primary:      opts.Primary,
		primarySum:   opts.PrimarySummarizer,
		secondary:    opts.Secondary,
		secondarySum: opts.SecondarySummarizer,
		language:     language,
		disclaimer:   opts.Disclaimer,
		logger:       logger,
		metrics:      opts.Metrics,
		now:          now,
	}
}

// PrimaryConfigured reports whether the primary provider is available.
func (o *Orchestrator) PrimaryConfigured() bool {
	return o.primary != nil
}

// Answer runs the full fallback pipeline. The primary provider is preferred
// whenever configured and not disabled by the caller; the secondary runs
// either directly or as fallback. Each provider is attempted at most once.
func (o *Orchestrator) Answer(ctx context.Context, q Query) (Envelope, error) {
	if err := q.Validate(); err != nil {
		return Envelope{}, err
	}

	var primaryErr error
	if o.primary != nil && !q.UseAgent {
		env, err := o.attemptPrimary(ctx, q)
		if err == nil {
			return o.finish(env), nil
		}
		primaryErr = err
		o.logger.Warn("primary provider failed, attempting fallback",
			"error", err.Error(),
			"fallback_available", o.secondary != nil,
		)
		if o.secondary != nil {
			o.metrics.ObserveFallback()
		}
	}

	if o.secondary == nil {
		if primaryErr != nil {
			return Envelope{}, fmt.Errorf("%w: %v", ErrAllProvidersFailed, primaryErr)
		}
		return Envelope{}, ErrUnconfigured
	}

	env, err := o.attemptSecondary(ctx, q, primaryErr != nil)
	if err != nil {
		if primaryErr != nil {
			o.logger.Error("fallback provider also failed",
				"primary_error", primaryErr.Error(),
				"fallback_error", err.Error(),
			)
			return Envelope{}, fmt.Errorf("%w: primary: %v; fallback: %v", ErrAllProvidersFailed, primaryErr, err)
		}
		return Envelope{}, fmt.Errorf("%w: %v", ErrAllProvidersFailed, err)
	}
	return o.finish(env), nil
}

// AnswerPrimary runs the primary provider only, with no fallback. Used by
// the /generate endpoint.
func (o *Orchestrator) AnswerPrimary(ctx context.Context, q Query) (Envelope, error) {
	if err := q.Validate(); err != nil {
		return Envelope{}, err
	}
	if o.primary == nil {
		return Envelope{}, ErrUnconfigured
	}
	env, err := o.attemptPrimary(ctx, q)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrAllProvidersFailed, err)
	}
	return o.finish(env), nil
}

func (o *Orchestrator) attemptPrimary(ctx context.Context, q Query) (Envelope, error) {
	prompt, err := BuildPrompt(q.Mode, q.Question, q.Context, q.Profile)
	if err != nil {
		return Envelope{}, err
	}

	resp, err := o.complete(ctx, o.primary, PromptRequest{
		Prompt:      prompt,
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
		TopP:        defaultTopP,
		TopK:        defaultTopK,
	})
	if err != nil {
		return Envelope{}, err
	}

	summary := resp.Text
	if utf8.RuneCountInString(resp.Text) > summaryThreshold {
		summary = o.summarizePrimary(ctx, q, resp.Text)
	}

	return Envelope{
		Response: resp.Text,
		Summary:  summary,
		Source:   o.primary.ID(),
	}, nil
}

// summarizePrimary shortens a long response. Summarization failures degrade
// to naive truncation; they never fail the request.
func (o *Orchestrator) summarizePrimary(ctx context.Context, q Query, text string) string {
	if o.primarySum != nil {
		sctx, cancel := context.WithTimeout(ctx, summarizeTimeout)
		defer cancel()
		summary, err := o.primarySum.Summarize(sctx, SummaryRequest{
			Question: q.Question,
			Response: text,
			Language: o.language,
			MaxChars: truncateLength,
		})
		if err == nil && strings.TrimSpace(summary) != "" {
			return strings.TrimSpace(summary)
		}
		if err != nil {
			o.logger.Warn("summary generation failed, truncating", "error", err.Error())
		}
	}
	return truncate(text, truncateLength)
}

func (o *Orchestrator) attemptSecondary(ctx context.Context, q Query, isFallback bool) (Envelope, error) {
	// The agent has no structured mode concept; it always receives the raw
	// question plus the configured language directive.
	instruction := strings.TrimSpace(q.Question)
	if instruction == "" {
		instruction = strings.TrimSpace(q.Profile)
	}
	instruction = instruction + "\n\nRespond in " + o.language + "."

	resp, err := o.complete(ctx, o.secondary, PromptRequest{Prompt: instruction})
	if err != nil {
		return Envelope{}, err
	}

	cleaned := textutil.Clean(resp.Text)
	if cleaned == "" {
		cleaned = strings.TrimSpace(resp.Text)
	}

	// Summary defaults to the full cleaned response at this tier; there is
	// no truncation fallback, unlike the primary path.
	summary := cleaned
	if o.secondarySum != nil {
		sctx, cancel := context.WithTimeout(ctx, summarizeTimeout)
		defer cancel()
		s, err := o.secondarySum.Summarize(sctx, SummaryRequest{
			Question: q.Question,
			Response: cleaned,
			Language: o.language,
		})
		if err == nil && strings.TrimSpace(s) != "" {
			summary = textutil.Clean(s)
		} else if err != nil {
			o.logger.Warn("agent summarizer failed, using full response", "error", err.Error())
		}
	}

	source := o.secondary.ID()
	if isFallback {
		source = source + "-fallback"
	}

	return Envelope{
		Response: cleaned,
		Summary:  summary,
		Source:   source,
	}, nil
}

// complete wraps a provider call with a timeout and metrics.
func (o *Orchestrator) complete(ctx context.Context, p Provider, req PromptRequest) (PromptResponse, error) {
	cctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	start := o.now()
	resp, err := p.Complete(cctx, req)
	o.metrics.ObserveLatency(p.ID(), time.Since(start).Seconds())
	if err != nil {
		o.metrics.ObserveAttempt(p.ID(), "error")
		return PromptResponse{}, err
	}
	o.metrics.ObserveAttempt(p.ID(), "success")
	return resp, nil
}

func (o *Orchestrator) finish(env Envelope) Envelope {
	env.Response = o.disclaimer.Append(env.Response)
	env.Timestamp = o.now().UTC()
	return env
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}
