package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/pkg/core/allocator/generative"
)

const keyPrefix = "shift-scheduler:generation:"

// CachedGenerator memoises accepted generator replies by model and prompt. Generate only reads
// the cache: a reply is stored when the strategy records it after validation, so malformed or
// rejected replies are never served again. Cache failures are logged and never fail generation.
type CachedGenerator struct {
	next      generative.Generator
	kv        KVStore
	namespace string
	ttl       time.Duration
	logger    *zap.Logger
}

var _ generative.ReplyRecorder = (*CachedGenerator)(nil)

// NewCachedGenerator wraps next with a cache stored in kv. namespace identifies the provider
// and model so that replies are never shared between models.
func NewCachedGenerator(next generative.Generator, kv KVStore, namespace string, ttl time.Duration, logger *zap.Logger) *CachedGenerator {
	return &CachedGenerator{
		next:      next,
		kv:        kv,
		namespace: namespace,
		ttl:       ttl,
		logger:    logger,
	}
}

func (g *CachedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	key := Key(g.namespace, prompt)

	cached, err := g.kv.Get(ctx, key)
	switch {
	case err == nil:
		g.logger.Debug("Generator cache hit", zap.String("key", key))
		return cached, nil
	case errors.Is(err, ErrCacheMiss):
		g.logger.Debug("Generator cache miss", zap.String("key", key))
	default:
		g.logger.Warn("Generator cache lookup failed", zap.String("key", key), zap.Error(err))
	}

	return g.next.Generate(ctx, prompt)
}

// Record stores an accepted reply for prompt
func (g *CachedGenerator) Record(ctx context.Context, prompt, reply string) {
	key := Key(g.namespace, prompt)
	if err := g.kv.Set(ctx, key, reply, g.ttl); err != nil {
		g.logger.Warn("Failed to store generator reply", zap.String("key", key), zap.Error(err))
		return
	}
	g.logger.Debug("Stored generator reply", zap.String("key", key))
}

// Forget removes any reply stored for prompt
func (g *CachedGenerator) Forget(ctx context.Context, prompt string) {
	key := Key(g.namespace, prompt)
	if err := g.kv.Delete(ctx, key); err != nil {
		g.logger.Warn("Failed to evict generator reply", zap.String("key", key), zap.Error(err))
	}
}

// Key derives the cache key for a prompt sent to the model identified by namespace
func Key(namespace, prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return keyPrefix + namespace + ":" + hex.EncodeToString(sum[:])
}
