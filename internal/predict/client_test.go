package predict

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthpilot/healthpilot-api/pkg/logging"
)

func TestParseModelType(t *testing.T) {
	for _, valid := range []string{"diabetes", "heart", "parkinsons"} {
		got, err := ParseModelType(valid)
		require.NoError(t, err)
		assert.Equal(t, ModelType(valid), got)
	}

	_, err := ParseModelType("liver")
	assert.ErrorIs(t, err, ErrUnknownModel)

	_, err = ParseModelType("")
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestPredict_ForwardsPayloadVerbatim(t *testing.T) {
	var gotPath string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"prediction": 1, "probability": 0.82}`))
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{BaseURL: srv.URL}, logging.New("error"))
	require.NoError(t, err)

	payload := json.RawMessage(`{"glucose": 148, "bmi": 33.6}`)
	result, err := client.Predict(context.Background(), ModelDiabetes, payload)
	require.NoError(t, err)

	assert.Equal(t, "/predict/diabetes", gotPath)
	assert.JSONEq(t, string(payload), string(gotBody))
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.JSONEq(t, `{"prediction": 1, "probability": 0.82}`, string(result.Body))
}

func TestPredict_BackendErrorPassedThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error": "missing feature: glucose"}`))
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{BaseURL: srv.URL}, logging.New("error"))
	require.NoError(t, err)

	result, err := client.Predict(context.Background(), ModelHeart, json.RawMessage(`{}`))
	require.NoError(t, err, "HTTP error statuses are not transport errors")
	assert.Equal(t, http.StatusUnprocessableEntity, result.StatusCode)
	assert.JSONEq(t, `{"error": "missing feature: glucose"}`, string(result.Body))
}

func TestPredict_NonJSONWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Internal Server Error"))
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{BaseURL: srv.URL}, logging.New("error"))
	require.NoError(t, err)

	result, err := client.Predict(context.Background(), ModelParkinsons, json.RawMessage(`{"mdvp_fo": 119.99}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"raw": "Internal Server Error"}`, string(result.Body))
}

func TestPredict_FallbackBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"prediction": 0}`))
	}))
	defer srv.Close()

	// Primary points at a closed port; the fallback serves the request.
	client, err := NewClient(ClientConfig{
		BaseURL:         "http://127.0.0.1:1",
		FallbackBaseURL: srv.URL,
	}, logging.New("error"))
	require.NoError(t, err)

	result, err := client.Predict(context.Background(), ModelDiabetes, json.RawMessage(`{"glucose": 99}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"prediction": 0}`, string(result.Body))
}

func TestPredict_AllBackendsUnreachable(t *testing.T) {
	client, err := NewClient(ClientConfig{
		BaseURL:         "http://127.0.0.1:1",
		FallbackBaseURL: "http://127.0.0.1:2",
	}, logging.New("error"))
	require.NoError(t, err)

	_, err = client.Predict(context.Background(), ModelHeart, json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all backends unreachable")
}

func TestPredict_EmptyPayload(t *testing.T) {
	client, err := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1"}, logging.New("error"))
	require.NoError(t, err)

	_, err = client.Predict(context.Background(), ModelDiabetes, nil)
	assert.Error(t, err)
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(ClientConfig{}, logging.New("error"))
	assert.Error(t, err)
}
