package search

import "context"

// WebSearcher performs web searches against one backend.
type WebSearcher interface {
	Name() string
	WebSearch(ctx context.Context, query string, opts *Options) (*WebResponse, error)
}

// NewsSearcher performs news searches against one backend. Only a subset of
// providers have a news endpoint.
type NewsSearcher interface {
	Name() string
	NewsSearch(ctx context.Context, query string, opts *Options) (*NewsResponse, error)
}

// Registry stores named providers.
type Registry struct {
	providers map[string]WebSearcher
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]WebSearcher)}
}

// Register adds or replaces a provider by name.
func (r *Registry) Register(provider WebSearcher) {
	if r == nil || provider == nil {
		return
	}
	if r.providers == nil {
		r.providers = make(map[string]WebSearcher)
	}
	r.providers[provider.Name()] = provider
}

// Get returns a provider by name.
func (r *Registry) Get(name string) WebSearcher {
	if r == nil {
		return nil
	}
	return r.providers[name]
}

// GetNews returns a provider by name if it supports news search.
func (r *Registry) GetNews(name string) NewsSearcher {
	if r == nil {
		return nil
	}
	if news, ok := r.providers[name].(NewsSearcher); ok {
		return news
	}
	return nil
}

// Names returns registered provider names.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.providers))
	for name := range r.providers {
		out = append(out, name)
	}
	return out
}
