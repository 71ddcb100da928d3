package summarizer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Cache stores finished summaries by key.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// CachedSummarizer answers repeated requests for identical text from Cache.
// Cache failures fall through to the wrapped Summarizer.
type CachedSummarizer struct {
	inner     Summarizer
	cache     Cache
	namespace string
	onError   func(op string, err error)
}

type CacheOption func(*CachedSummarizer)

// WithCacheErrorHandler receives cache read/write failures.
func WithCacheErrorHandler(fn func(op string, err error)) CacheOption {
	return func(c *CachedSummarizer) {
		c.onError = fn
	}
}

// NewCachedSummarizer wraps inner. namespace should change whenever the model or
// its length bounds change so stale summaries are not served.
func NewCachedSummarizer(inner Summarizer, cache Cache, namespace string, opts ...CacheOption) *CachedSummarizer {
	c := &CachedSummarizer{
		inner:     inner,
		cache:     cache,
		namespace: namespace,
		onError:   func(string, error) {},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *CachedSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	key := c.Key(text)

	if cached, ok, err := c.cache.Get(ctx, key); err != nil {
		c.onError("get", err)
	} else if ok {
		return cached, nil
	}

	summary, err := c.inner.Summarize(ctx, text)
	if err != nil {
		return "", err
	}

	if err := c.cache.Set(ctx, key, summary); err != nil {
		c.onError("set", err)
	}
	return summary, nil
}

func (c *CachedSummarizer) Key(text string) string {
	h := sha256.New()
	h.Write([]byte(c.namespace))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return "summary:" + hex.EncodeToString(h.Sum(nil))
}
