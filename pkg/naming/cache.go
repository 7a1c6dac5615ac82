package naming

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/specvital/testdoc/pkg/domain"
)

// DefaultCacheSize is the number of identifiers kept by NewCache when size is not positive.
const DefaultCacheSize = 4096

// Cache memoizes Decompose results. Safe for concurrent use.
type Cache struct {
	entries *lru.Cache[string, domain.NameTokens]
}

// NewCache creates a cache holding up to size decomposed identifiers.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, domain.NameTokens](size)
	if err != nil {
		return nil, fmt.Errorf("naming: create cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Decompose returns the cached tokens for name, computing them on a miss.
func (c *Cache) Decompose(name string) domain.NameTokens {
	if tokens, ok := c.entries.Get(name); ok {
		return tokens
	}
	tokens := Decompose(name)
	c.entries.Add(name, tokens)
	return tokens
}

// Len returns the number of cached identifiers.
func (c *Cache) Len() int {
	return c.entries.Len()
}
