package httputil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestPostJSONSendsHeadersAndBody(t *testing.T) {
	var gotContentType, gotCustom string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotCustom = r.Header.Get("X-Custom")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	data, status, err := PostJSON(context.Background(), nil, server.URL,
		map[string]string{"X-Custom": "value"},
		map[string]any{"query": "golang"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if gotContentType != "application/json" {
		t.Fatalf("content type = %q", gotContentType)
	}
	if gotCustom != "value" {
		t.Fatalf("custom header = %q", gotCustom)
	}
	if gotBody["query"] != "golang" {
		t.Fatalf("body = %v", gotBody)
	}
	if string(data) != `{"ok":true}` {
		t.Fatalf("data = %s", data)
	}
}

func TestPostJSONNonOKIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"detail":{"error":"slow down"}}`))
	}))
	defer server.Close()

	data, status, err := PostJSON(context.Background(), nil, server.URL, nil, map[string]any{})
	if err != nil {
		t.Fatalf("non-2xx must not be a transport error, got %v", err)
	}
	if status != http.StatusTooManyRequests {
		t.Fatalf("status = %d", status)
	}
	if len(data) == 0 {
		t.Fatal("error body must be returned for classification")
	}
}

func TestGetJSONMergesQuery(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	query := url.Values{}
	query.Set("q", "golang")
	_, status, err := GetJSON(context.Background(), nil, server.URL+"/search?fixed=1", nil, query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if gotQuery.Get("q") != "golang" || gotQuery.Get("fixed") != "1" {
		t.Fatalf("query = %v", gotQuery)
	}
}

func TestGetJSONContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := GetJSON(ctx, nil, server.URL, nil, nil)
	if err == nil {
		t.Fatal("canceled context must error")
	}
}

func TestDefaultClientTimeout(t *testing.T) {
	if got := DefaultClient(0).Timeout; got != DefaultTimeout {
		t.Fatalf("zero timeout = %v", got)
	}
	if got := DefaultClient(DefaultTimeout * 2).Timeout; got != DefaultTimeout*2 {
		t.Fatalf("explicit timeout = %v", got)
	}
}
