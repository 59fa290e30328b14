package search

import "testing"

func TestOptionsWithDefaults(t *testing.T) {
	var nilOpts *Options
	if got := nilOpts.withDefaults().MaxResults; got != DefaultMaxResults {
		t.Fatalf("nil options MaxResults = %d", got)
	}
	if got := (&Options{MaxResults: -2}).withDefaults().MaxResults; got != DefaultMaxResults {
		t.Fatalf("negative MaxResults = %d", got)
	}
	if got := (&Options{MaxResults: 3}).withDefaults().MaxResults; got != 3 {
		t.Fatalf("explicit MaxResults = %d", got)
	}
}

func TestTruncateWeb(t *testing.T) {
	results := []WebResult{
		{URL: "https://a.test"},
		{URL: "https://b.test"},
		{URL: "https://c.test"},
	}
	if got := truncateWeb(results, 2); len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got := truncateWeb(results, 5); len(got) != 3 {
		t.Fatalf("limit above length: len = %d", len(got))
	}
	if got := truncateWeb(nil, 2); got != nil {
		t.Fatalf("nil input: %v", got)
	}
}

func TestCodeCasing(t *testing.T) {
	if got := CountryUS.Lower(); got != "us" {
		t.Fatalf("Lower() = %q", got)
	}
	if got := CountryCode("de").Upper(); got != "DE" {
		t.Fatalf("Upper() = %q", got)
	}
	if got := LanguageCode("EN").Lower(); got != "en" {
		t.Fatalf("language Lower() = %q", got)
	}
}
