package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestWithHeadersMergesOverDefaults(t *testing.T) {
	var gotTrace, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTrace = r.Header.Get("X-Trace-Id")
		gotKey = r.Header.Get("X-API-KEY")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"organic":[]}`))
	}))
	defer server.Close()

	client, err := NewSerperClient(SerperConfig{APIKey: "k", BaseURL: server.URL},
		WithHeaders(map[string]string{"X-Trace-Id": "trace-1"}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.WebSearch(context.Background(), "q", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotTrace != "trace-1" {
		t.Fatalf("trace header = %q", gotTrace)
	}
	if gotKey != "k" {
		t.Fatalf("default headers must survive the merge, got %q", gotKey)
	}
}

func TestWithLoggerRedactsNothingSensitive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"organic":[{"title":"t","link":"https://x.test","snippet":"s"}]}`))
	}))
	defer server.Close()

	var buf strings.Builder
	logger := zerolog.New(&buf)
	client, err := NewSerperClient(SerperConfig{APIKey: "top-secret-key", BaseURL: server.URL},
		WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.WebSearch(context.Background(), "q", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logged := buf.String()
	if logged == "" {
		t.Fatal("expected debug output with an injected logger")
	}
	if strings.Contains(logged, "top-secret-key") {
		t.Fatalf("log output leaked credential: %s", logged)
	}
	if !strings.Contains(logged, `"provider":"serper"`) {
		t.Fatalf("log output missing provider field: %s", logged)
	}
}
