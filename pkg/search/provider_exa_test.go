package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mau.fi/util/ptr"
)

func TestExaSearchContentsMaxCharacters(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"title":"t","url":"https://x.test","text":"body"}],"resolvedSearchType":"neural","costDollars":{"total":0.005}}`))
	}))
	defer server.Close()

	client, err := NewExaClient(ExaConfig{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := client.Search(context.Background(), "golang", &ExaSearchOptions{
		NumResults:    3,
		MaxCharacters: ptr.Ptr(777),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	contents, ok := gotBody["contents"].(map[string]any)
	if !ok {
		t.Fatalf("expected contents object in payload")
	}
	text, ok := contents["text"].(map[string]any)
	if !ok {
		t.Fatalf("expected structured text object, got %#v", contents["text"])
	}
	if int(text["maxCharacters"].(float64)) != 777 {
		t.Fatalf("maxCharacters = %#v", text["maxCharacters"])
	}
	if gotBody["type"] != "auto" {
		t.Fatalf("type = %v", gotBody["type"])
	}
	if resp.ResolvedSearchType != "neural" {
		t.Fatalf("resolved type = %q", resp.ResolvedSearchType)
	}
	if resp.CostDollars != 0.005 {
		t.Fatalf("cost = %v", resp.CostDollars)
	}
}

func TestExaSearchFullTextWhenUnbounded(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	client, err := NewExaClient(ExaConfig{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Search(context.Background(), "golang", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	contents := gotBody["contents"].(map[string]any)
	if contents["text"] != true {
		t.Fatalf("text = %#v, want true", contents["text"])
	}
}

func TestExaWebSearchPrefersSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"title":"a","url":"https://a.test","text":"long text","summary":"short summary"},
			{"title":"b","url":"https://b.test","text":"only text"}
		]}`))
	}))
	defer server.Close()

	client, err := NewExaClient(ExaConfig{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := client.WebSearch(context.Background(), "q", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Results[0].Snippet != "short summary" {
		t.Fatalf("snippet = %q", resp.Results[0].Snippet)
	}
	if resp.Results[1].Snippet != "only text" {
		t.Fatalf("snippet = %q", resp.Results[1].Snippet)
	}
}
