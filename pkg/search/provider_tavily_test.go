package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestTavilySearchPayload(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"query":"golang","results":[{"title":"Go","url":"https://go.dev","content":"c","score":0.9}]}`))
	}))
	defer server.Close()

	client, err := NewTavilyClient(TavilyConfig{APIKey: "tvly-key", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := client.Search(context.Background(), "golang", &TavilySearchOptions{
		SearchDepth:    TavilyDepthAdvanced,
		MaxResults:     7,
		IncludeDomains: []string{"go.dev"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer tvly-key" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotBody["query"] != "golang" || gotBody["search_depth"] != "advanced" {
		t.Fatalf("body = %v", gotBody)
	}
	if gotBody["topic"] != "general" {
		t.Fatalf("topic = %v", gotBody["topic"])
	}
	if int(gotBody["max_results"].(float64)) != 7 {
		t.Fatalf("max_results = %v", gotBody["max_results"])
	}
	if len(resp.Results) != 1 || resp.Results[0].Score != 0.9 {
		t.Fatalf("results: %+v", resp.Results)
	}
}

func TestTavilyStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		body   string
		target error
	}{
		{429, `{"detail":{"error":"plan limit"}}`, ErrUsageLimitExceeded},
		{401, ``, ErrInvalidCredentials},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprint(tc.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client, err := NewTavilyClient(TavilyConfig{APIKey: "k", BaseURL: server.URL})
			if err != nil {
				t.Fatal(err)
			}
			_, err = client.Search(context.Background(), "q", nil)
			if !errors.Is(err, tc.target) {
				t.Fatalf("status %d: got %v", tc.status, err)
			}
		})
	}
}

func TestTavilyUsageLimitDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"detail":{"error":"monthly plan limit reached"}}`))
	}))
	defer server.Close()

	client, err := NewTavilyClient(TavilyConfig{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	_, err = client.Search(context.Background(), "q", nil)
	var usage *UsageLimitError
	if !errors.As(err, &usage) {
		t.Fatalf("got %T", err)
	}
	if usage.Detail != "monthly plan limit reached" {
		t.Fatalf("detail = %q", usage.Detail)
	}
}

func TestTavilyExtract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/extract" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"url":"https://a.test","raw_content":"body text"}],"failed_results":[{"url":"https://b.test","error":"timeout"}]}`))
	}))
	defer server.Close()

	client, err := NewTavilyClient(TavilyConfig{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := client.Extract(context.Background(), []string{"https://a.test", "https://b.test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].RawContent != "body text" {
		t.Fatalf("results: %+v", resp.Results)
	}
	if len(resp.FailedResults) != 1 || resp.FailedResults[0].Error != "timeout" {
		t.Fatalf("failed: %+v", resp.FailedResults)
	}
}

func TestTavilyExtractBadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":{"error":"no valid urls"}}`))
	}))
	defer server.Close()

	client, err := NewTavilyClient(TavilyConfig{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	_, err = client.Extract(context.Background(), []string{"not-a-url"})
	var bad *BadRequestError
	if !errors.As(err, &bad) {
		t.Fatalf("got %T: %v", err, err)
	}
	if bad.Detail != "no valid urls" {
		t.Fatalf("detail = %q", bad.Detail)
	}
}

func TestTavilyGetSearchContextBudget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"title":"a","url":"https://a.test","content":"first","score":0.9},
			{"title":"b","url":"https://b.test","content":"second","score":0.8},
			{"title":"c","url":"https://c.test","content":"third","score":0.7}
		]}`))
	}))
	defer server.Close()

	// Ten tokens per source item regardless of content.
	client, err := NewTavilyClient(TavilyConfig{APIKey: "k", BaseURL: server.URL},
		WithTokenCounter(func(string) int { return 10 }))
	if err != nil {
		t.Fatal(err)
	}

	out, err := client.GetSearchContext(context.Background(), "q", nil, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var items []map[string]string
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("output not JSON: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("budget of 25 with 10-token items must keep 2, got %d", len(items))
	}
	if items[0]["url"] != "https://a.test" || items[1]["url"] != "https://b.test" {
		t.Fatalf("greedy prefix broken: %v", items)
	}
	if strings.Contains(out, `"title"`) {
		t.Fatalf("context items must only carry url and content: %s", out)
	}
}

func TestTavilyGetSearchContextEmptyBudget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"title":"a","url":"https://a.test","content":"c","score":0.9}]}`))
	}))
	defer server.Close()

	client, err := NewTavilyClient(TavilyConfig{APIKey: "k", BaseURL: server.URL},
		WithTokenCounter(func(string) int { return 100 }))
	if err != nil {
		t.Fatal(err)
	}
	out, err := client.GetSearchContext(context.Background(), "q", nil, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "[]" {
		t.Fatalf("nothing fits, got %q", out)
	}
}

func TestTavilyQNASearch(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer":"forty-two","results":[]}`))
	}))
	defer server.Close()

	client, err := NewTavilyClient(TavilyConfig{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	answer, err := client.QNASearch(context.Background(), "meaning of life", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "forty-two" {
		t.Fatalf("answer = %q", answer)
	}
	if gotBody["search_depth"] != "advanced" {
		t.Fatalf("search_depth = %v", gotBody["search_depth"])
	}
	if gotBody["include_answer"] != true {
		t.Fatalf("include_answer = %v", gotBody["include_answer"])
	}
}

func TestTavilyGetCompanyInfo(t *testing.T) {
	var mu sync.Mutex
	gotTopics := map[string]bool{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
			return
		}
		topic, _ := body["topic"].(string)
		mu.Lock()
		gotTopics[topic] = true
		mu.Unlock()

		var score float64
		switch topic {
		case "news":
			score = 0.5
		case "general":
			score = 0.9
		case "finance":
			score = 0.7
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"results":[{"title":%q,"url":"https://%s.test","content":"c","score":%g}]}`, topic, topic, score)
	}))
	defer server.Close()

	client, err := NewTavilyClient(TavilyConfig{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}

	results, err := client.GetCompanyInfo(context.Background(), "Acme Corp", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, topic := range []string{"news", "general", "finance"} {
		if !gotTopics[topic] {
			t.Errorf("topic %q not queried", topic)
		}
	}
	if len(results) != 2 {
		t.Fatalf("len = %d, want truncation to 2", len(results))
	}
	if results[0].Score < results[1].Score {
		t.Fatalf("not sorted by descending score: %+v", results)
	}
	if results[0].Title != "general" {
		t.Fatalf("top result = %q", results[0].Title)
	}
}

func TestTavilyGetCompanyInfoFailsWhole(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
			return
		}
		if body["topic"] == "finance" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"title":"t","url":"https://x.test","content":"c","score":0.5}]}`))
	}))
	defer server.Close()

	client, err := NewTavilyClient(TavilyConfig{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	_, err = client.GetCompanyInfo(context.Background(), "Acme Corp", 5)
	if !errors.Is(err, ErrUsageLimitExceeded) {
		t.Fatalf("got %v, want usage limit from failed topic", err)
	}
}

func TestTavilyNewsSearchTopic(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"title":"t","url":"https://n.test","content":"c","score":0.5,"published_date":"Fri, 29 Aug 2026"}]}`))
	}))
	defer server.Close()

	client, err := NewTavilyClient(TavilyConfig{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := client.NewsSearch(context.Background(), "golang", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody["topic"] != "news" {
		t.Fatalf("topic = %v", gotBody["topic"])
	}
	if resp.Results[0].Published != "Fri, 29 Aug 2026" {
		t.Fatalf("published = %q", resp.Results[0].Published)
	}
}
