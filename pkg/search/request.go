package search

import (
	"fmt"
	"net/url"
	"strings"
)

// mergeExtra copies provider-specific passthrough parameters into a JSON
// request body. Extra values win over the unified mapping.
func mergeExtra(body map[string]any, extra map[string]any) map[string]any {
	for key, value := range extra {
		body[key] = value
	}
	return body
}

// extraToQuery stringifies passthrough parameters into query values.
func extraToQuery(values url.Values, extra map[string]any) url.Values {
	for key, value := range extra {
		values.Set(key, fmt.Sprint(value))
	}
	return values
}

// joinURL appends a path to a base URL without doubling slashes.
func joinURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + path
}
