package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendRequest_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ping", body["msg"])

		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	var resp struct {
		OK bool `json:"ok"`
	}
	err := SendRequest(context.Background(), srv.Client(), "POST", srv.URL,
		map[string]string{"Authorization": "Bearer token"},
		map[string]string{"msg": "ping"},
		&resp,
	)
	assert.NoError(t, err)
	assert.True(t, resp.OK)
}

func TestSendRequest_NoBodyNoResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := SendRequest(context.Background(), srv.Client(), "GET", srv.URL, nil, nil, nil)
	assert.NoError(t, err)
}

func TestSendRequest_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := SendRequest(context.Background(), srv.Client(), "POST", srv.URL, nil, map[string]string{}, nil)

	var upstream *UpstreamError
	assert.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	assert.Contains(t, string(upstream.Body), "rate limited")
	assert.Equal(t, srv.URL, upstream.URL)
}

func TestSendRequest_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := SendRequest(ctx, srv.Client(), "GET", srv.URL, nil, nil, nil)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
