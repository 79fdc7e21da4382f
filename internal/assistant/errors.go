package assistant

import "errors"

var (
	// ErrInvalidRequest indicates a missing or empty required input field.
	// No provider is contacted when this is returned.
	ErrInvalidRequest = errors.New("assistant: invalid request")

	// ErrUnconfigured indicates the required provider credentials or model
	// id are absent.
	ErrUnconfigured = errors.New("assistant: provider not configured")

	// ErrAllProvidersFailed indicates no configured provider could produce
	// a response.
	ErrAllProvidersFailed = errors.New("assistant: all providers failed")

	// ErrSummarizerUnavailable indicates no dedicated summarization model
	// is configured for the provider.
	ErrSummarizerUnavailable = errors.New("assistant: summarizer not configured")
)
