package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// WikiClient defines the interface for the encyclopedia search/parse API
type WikiClient interface {
	Search(ctx context.Context, query string) ([]Candidate, error)
	FetchArticleHTML(ctx context.Context, title string) (string, error)
}

// Summarizer defines the interface for the optional external summarization call
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}
