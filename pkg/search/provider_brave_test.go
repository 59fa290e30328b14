package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBraveWebSearchParams(t *testing.T) {
	var gotPath, gotToken string
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Subscription-Token")
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"web":{"results":[
			{"title":"Go","url":"https://go.dev","description":"The Go programming language"},
			{"title":"no url","url":"","description":"dropped"}
		]}}`))
	}))
	defer server.Close()

	client, err := NewBraveClient(BraveConfig{APIKey: "brave-key", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := client.WebSearch(context.Background(), "golang", &Options{
		MaxResults: 5,
		Country:    CountryDE,
		Language:   LanguageCode("EN"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/web/search" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotToken != "brave-key" {
		t.Fatalf("token = %q", gotToken)
	}
	if gotQuery["q"] != "golang" || gotQuery["count"] != "5" {
		t.Fatalf("query = %v", gotQuery)
	}
	if gotQuery["country"] != "DE" {
		t.Fatalf("country = %q", gotQuery["country"])
	}
	if gotQuery["search_lang"] != "en" {
		t.Fatalf("search_lang = %q", gotQuery["search_lang"])
	}

	if len(resp.Results) != 1 {
		t.Fatalf("results: %+v", resp.Results)
	}
	if resp.Dropped != 1 {
		t.Fatalf("dropped = %d", resp.Dropped)
	}
}

func TestBraveNewsSearchPublished(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/news/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"title":"a","url":"https://a.test","description":"d","page_age":"2026-08-30T10:00:00","age":"1 day ago"},
			{"title":"b","url":"https://b.test","description":"d","age":"3 days ago"}
		]}`))
	}))
	defer server.Close()

	client, err := NewBraveClient(BraveConfig{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := client.NewsSearch(context.Background(), "golang", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Results[0].Published != "2026-08-30T10:00:00" {
		t.Fatalf("page_age not preferred: %q", resp.Results[0].Published)
	}
	if resp.Results[1].Published != "3 days ago" {
		t.Fatalf("age fallback: %q", resp.Results[1].Published)
	}
}

func TestBraveRetriesRateLimit(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"web":{"results":[{"title":"t","url":"https://x.test","description":"d"}]}}`))
	}))
	defer server.Close()

	client, err := NewBraveClient(BraveConfig{APIKey: "k", BaseURL: server.URL, Retries: 3})
	if err != nil {
		t.Fatal(err)
	}
	client.wait = 0

	resp, err := client.WebSearch(context.Background(), "golang", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d", attempts)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results: %+v", resp.Results)
	}
}

func TestBraveRetryBudgetExhausted(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewBraveClient(BraveConfig{APIKey: "k", BaseURL: server.URL, Retries: 2})
	if err != nil {
		t.Fatal(err)
	}
	client.wait = 0

	_, err = client.WebSearch(context.Background(), "golang", nil)
	if err == nil {
		t.Fatal("expected rate limit error")
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want initial try plus two retries", attempts)
	}
}

func TestBraveMissingCredentials(t *testing.T) {
	clearProviderEnv(t)
	_, err := NewBraveClient(BraveConfig{})
	var missing *MissingCredentialsError
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.As(err, &missing) {
		t.Fatalf("got %T", err)
	}
	if missing.EnvVar != EnvBraveAPIKey {
		t.Fatalf("env var = %q", missing.EnvVar)
	}
}
