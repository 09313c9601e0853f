// Package scanner assembles the normalized model definition for one content
// model: class-level options, SEO settings, analyzed fields and relationships.
// Definitions are cached per model type with a TTL; invalidation is selective
// through an internal key registry, never a store-wide flush.
package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/kokiddp/elkcms/internal/analyzer"
	"github.com/kokiddp/elkcms/internal/cache"
	"github.com/kokiddp/elkcms/internal/meta"
	"go.uber.org/zap"
)

const (
	keyPrefix  = "model-def:"
	defaultTTL = time.Hour
)

// Options configure a Scanner.
type Options struct {
	// Enabled is the global cache switch; both it and the per-call flag
	// must be true for a scan to touch the store.
	Enabled bool
	// TTL for cached definitions; defaults to one hour.
	TTL    time.Duration
	Logger *zap.Logger
}

// Scanner produces and caches model definitions.
type Scanner struct {
	store   cache.Store
	enabled bool
	ttl     time.Duration
	log     *zap.Logger

	mu   sync.Mutex
	keys map[string]struct{} // every cache key this scanner ever populated
}

// New returns a Scanner backed by the given store.
func New(store cache.Store, opts Options) *Scanner {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Scanner{
		store:   store,
		enabled: opts.Enabled,
		ttl:     opts.TTL,
		log:     opts.Logger,
		keys:    make(map[string]struct{}),
	}
}

// CacheKey returns the deterministic cache key for a model type.
func CacheKey(model any) string {
	return keyPrefix + meta.TypePath(model)
}

// Scan returns the definition for one content model, from cache when
// possible. The returned definition must be treated as read-only.
func (s *Scanner) Scan(ctx context.Context, model any, useCache bool) (*Definition, error) {
	key := CacheKey(model)

	if s.useCache(useCache) {
		if def, ok := s.fromCache(ctx, key); ok {
			return def, nil
		}
	}

	def, err := Build(model)
	if err != nil {
		return nil, err
	}

	if s.useCache(useCache) {
		s.toCache(ctx, key, def)
	}
	return def, nil
}

// Warm seeds the key registry with the cache keys of the given models,
// typically meta.All() at startup. Without it, ClearAll against a persistent
// store could not forget definitions written by a previous process.
func (s *Scanner) Warm(models ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, model := range models {
		s.keys[CacheKey(model)] = struct{}{}
	}
}

// ClearCache invalidates the cached definition of one model.
func (s *Scanner) ClearCache(ctx context.Context, model any) error {
	key := CacheKey(model)
	s.mu.Lock()
	delete(s.keys, key)
	s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	return s.store.Forget(ctx, key)
}

// ClearAll invalidates every definition this scanner ever cached. Only keys
// from the internal registry are touched; the rest of the store is left alone.
func (s *Scanner) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	keys := make([]string, 0, len(s.keys))
	for key := range s.keys {
		keys = append(keys, key)
	}
	s.keys = make(map[string]struct{})
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	for _, key := range keys {
		if err := s.store.Forget(ctx, key); err != nil {
			return fmt.Errorf("forget %s: %w", key, err)
		}
	}
	return nil
}

func (s *Scanner) useCache(perCall bool) bool {
	return s.enabled && perCall && s.store != nil
}

func (s *Scanner) fromCache(ctx context.Context, key string) (*Definition, bool) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.log.Warn("definition cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var def Definition
	if err := json.Unmarshal([]byte(raw), &def); err != nil {
		s.log.Warn("definition cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &def, true
}

func (s *Scanner) toCache(ctx context.Context, key string, def *Definition) {
	raw, err := json.Marshal(def)
	if err != nil {
		s.log.Warn("definition marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.store.Put(ctx, key, string(raw), s.ttl); err != nil {
		s.log.Warn("definition cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.mu.Lock()
	s.keys[key] = struct{}{}
	s.mu.Unlock()
}

// Build assembles a definition directly from the model's declarations,
// bypassing the cache entirely.
func Build(model any) (*Definition, error) {
	shortName := meta.ShortName(model)
	if shortName == "" {
		return nil, fmt.Errorf("%w: %T", meta.ErrNotStruct, model)
	}

	def := &Definition{
		Model:     meta.TypePath(model),
		ShortName: shortName,
		Package:   meta.PackagePath(model),
	}

	if cm, ok := meta.ModelOptions(model); ok {
		def.ContentModel = &cm
	}
	if seo, ok := meta.SEOOptions(model); ok {
		def.SEO = &SEOInfo{SEO: seo, SchemaURL: seo.SchemaURL(), Priority: seo.PriorityValue()}
	}

	for _, decl := range meta.FieldDeclarations(model) {
		def.Fields = append(def.Fields, FieldDefinition{
			Name:        decl.Name,
			Property:    decl.Property,
			Declaration: decl.Field,
			Info:        analyzer.Analyze(decl.Name, decl.Field),
		})
	}

	for _, decl := range meta.RelationDeclarations(model) {
		def.Relationships = append(def.Relationships, RelationDefinition{
			Name:          decl.Name,
			Property:      decl.Property,
			Declaration:   decl.Relation,
			ToMany:        decl.Relation.Type.IsToMany(),
			ToOne:         decl.Relation.Type.IsToOne(),
			RequiresPivot: decl.Relation.Type.RequiresPivot(),
		})
	}

	return def, nil
}
