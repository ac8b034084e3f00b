package countries

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/profile-registry/internal/config"
)

const cacheKey = "countries:names"

// Client reads the public country directory and caches the sorted name list
// in Redis so the form does not re-fetch the directory on every render.
type Client struct {
	endpoint string
	http     *http.Client
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// directoryEntry is the subset of the upstream payload we consume.
type directoryEntry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
}

// NewClient constructs the directory client. The cache client may be nil, in
// which case every call hits the upstream endpoint.
func NewClient(cfg config.CountriesConfig, cache *redis.Client, logger *zap.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		http:     &http.Client{Timeout: cfg.Timeout()},
		cache:    cache,
		cacheTTL: cfg.CacheTTL(),
		logger:   logger,
	}
}

// ListNames returns all country display names sorted alphabetically.
func (c *Client) ListNames(ctx context.Context) ([]string, error) {
	if names, ok := c.fromCache(ctx); ok {
		return names, nil
	}

	names, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	c.toCache(ctx, names)
	return names, nil
}

func (c *Client) fetch(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch country directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("country directory returned status %d", resp.StatusCode)
	}

	var entries []directoryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode country directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Name.Common != "" {
			names = append(names, entry.Name.Common)
		}
	}
	return names, nil
}

func (c *Client) fromCache(ctx context.Context) ([]string, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, err := c.cache.Get(ctx, cacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("country cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		c.logger.Warn("country cache corrupt", zap.Error(err))
		return nil, false
	}
	return names, true
}

func (c *Client) toCache(ctx context.Context, names []string) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, cacheKey, raw, c.cacheTTL).Err(); err != nil {
		c.logger.Warn("country cache write failed", zap.Error(err))
	}
}
