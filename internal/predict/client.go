package predict

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

	"github.com/healthpilot/healthpilot-api/pkg/logging"
)

// ModelType names a risk-prediction model hosted by the backend.
type ModelType string

const (
	ModelDiabetes   ModelType = "diabetes"
	ModelHeart      ModelType = "heart"
	ModelParkinsons ModelType = "parkinsons"
)

// ErrUnknownModel is returned for model types outside the known set.
var ErrUnknownModel = errors.New("predict: unknown model type")

// ParseModelType validates the wire value.
func ParseModelType(s string) (ModelType, error) {
	switch ModelType(strings.TrimSpace(s)) {
	case ModelDiabetes:
		return ModelDiabetes, nil
	case ModelHeart:
		return ModelHeart, nil
	case ModelParkinsons:
		return ModelParkinsons, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, s)
	}
}

// Result carries whatever the backend returned: its HTTP status and a JSON
// body. Non-JSON bodies are wrapped as {"raw": <text>}.
type Result struct {
	StatusCode int
	Body       json.RawMessage
}

// ClientConfig describes how to reach the prediction backend.
type ClientConfig struct {
	BaseURL         string
	FallbackBaseURL string
	Timeout         time.Duration
}

// Client forwards feature payloads verbatim to the prediction backend. The
// backend is an opaque oracle: no feature-level validation, no retries
// beyond trying the candidate base URLs in sequence.
type Client struct {
	baseURLs []string
	http     *http.Client
	logger   *logging.Logger
}

// NewClient validates the configuration and returns a ready-to-use client.
func NewClient(cfg ClientConfig, logger *logging.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("predict: base URL required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURLs := []string{strings.TrimRight(cfg.BaseURL, "/")}
	if fallback := strings.TrimSpace(cfg.FallbackBaseURL); fallback != "" {
		baseURLs = append(baseURLs, strings.TrimRight(fallback, "/"))
	}

	return &Client{
		baseURLs: baseURLs,
		http: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// Predict posts the payload to <base>/predict/<model>. Transport errors move
// on to the next candidate base URL; any HTTP response, success or not, is
// passed through to the caller as-is.
func (c *Client) Predict(ctx context.Context, model ModelType, payload json.RawMessage) (*Result, error) {
	if len(payload) == 0 {
		return nil, errors.New("predict: payload required")
	}

	var lastErr error
	for _, base := range c.baseURLs {
		result, err := c.post(ctx, base+"/predict/"+string(model), payload)
		if err != nil {
			lastErr = err
			c.logger.Warn("prediction backend unreachable", "base_url", base, "error", err.Error())
			continue
		}
		return result, nil
	}
	return nil, fmt.Errorf("predict: all backends unreachable: %w", lastErr)
}

func (c *Client) post(ctx context.Context, url string, payload json.RawMessage) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("predict: request build failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predict: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("predict: read response failed: %w", err)
	}

	if !json.Valid(data) {
		wrapped, err := json.Marshal(map[string]string{"raw": string(data)})
		if err != nil {
			return nil, fmt.Errorf("predict: wrap response failed: %w", err)
		}
		data = wrapped
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Body:       data,
	}, nil
}
