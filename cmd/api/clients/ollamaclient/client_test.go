package ollamaclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gemma-chat/cmd/api/clients/ollamaclient"
)

func newClient(url string) *ollamaclient.Client {
	return ollamaclient.New(ollamaclient.Config{URL: url, Model: "gemma", Temperature: 0.7})
}

func TestGenerateSendsExpectedBody(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"model":"gemma","response":"  こんにちは！\n","done":true}`))
	}))
	defer srv.Close()

	out, err := newClient(srv.URL+"/api/generate").Generate(context.Background(), "prompt text")
	require.NoError(t, err)
	assert.Equal(t, "こんにちは！", out)

	assert.Equal(t, "gemma", got["model"])
	assert.Equal(t, "prompt text", got["prompt"])
	assert.Equal(t, false, got["stream"])
	assert.Equal(t, 0.7, got["temperature"])
}

func TestGenerateClassifiesFailures(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		body     string
		wantKind ollamaclient.Kind
	}{
		{name: "model not pulled", status: http.StatusNotFound, body: `{"error":"model 'gemma' not found"}`, wantKind: ollamaclient.KindModelNotFound},
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantKind: ollamaclient.KindFailed},
		{name: "bad gateway", status: http.StatusBadGateway, body: ``, wantKind: ollamaclient.KindFailed},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantKind: ollamaclient.KindFailed},
		{name: "missing response field", status: http.StatusOK, body: `{"done":true}`, wantKind: ollamaclient.KindFailed},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(testCase.status)
				_, _ = w.Write([]byte(testCase.body))
			}))
			defer srv.Close()

			out, err := newClient(srv.URL).Generate(context.Background(), "p")
			require.Error(t, err)
			assert.Empty(t, out)

			var genErr *ollamaclient.GenerateError
			require.ErrorAs(t, err, &genErr)
			assert.Equal(t, testCase.wantKind, genErr.Kind)
			assert.Equal(t, testCase.wantKind, ollamaclient.KindOf(err))
		})
	}
}

func TestGenerateConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newClient(url + "/api/generate").Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Equal(t, ollamaclient.KindUnavailable, ollamaclient.KindOf(err))
}

func TestGenerateCanceledContextIsNotUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"late"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(srv.URL).Generate(ctx, "p")
	require.Error(t, err)
	assert.Equal(t, ollamaclient.KindFailed, ollamaclient.KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, ollamaclient.KindFailed, ollamaclient.KindOf(assert.AnError))
	assert.Equal(t, "unavailable", ollamaclient.KindUnavailable.String())
	assert.Equal(t, "model_not_found", ollamaclient.KindModelNotFound.String())
}
