// Package content persists entries for declared content models. Save composes
// the cross-cutting steps explicitly, in order: validation, slug assignment,
// persistence, slug-history tracking, cache invalidation.
package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/kokiddp/elkcms/internal/cache"
	"github.com/kokiddp/elkcms/internal/models"
	"github.com/kokiddp/elkcms/internal/scanner"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrEntryNotFound reports a lookup miss.
var ErrEntryNotFound = errors.New("content: entry not found")

// Repository stores and retrieves content entries.
type Repository struct {
	db    *gorm.DB
	sc    *scanner.Scanner
	store cache.Store
	log   *zap.Logger
}

// NewRepository returns an entry repository.
func NewRepository(db *gorm.DB, sc *scanner.Scanner, store cache.Store, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{db: db, sc: sc, store: store, log: logger}
}

// Save validates and persists one entry. Non-fillable payload keys are
// dropped, the slug is assigned and kept unique for SEO-enabled models, and
// the old slug keeps redirecting through the history table.
func (r *Repository) Save(ctx context.Context, model any, entry *models.EntryModel) error {
	def, err := r.sc.Scan(ctx, model, true)
	if err != nil {
		return err
	}
	entry.ModelType = def.ShortName

	if err := Validate(def, entry.Data); err != nil {
		return err
	}
	entry.Data = r.stripGuarded(def, entry.Data)

	var previousSlug string
	if entry.ID != "" {
		var current models.EntryModel
		err := r.db.WithContext(ctx).Select("slug").First(&current, "id = ?", entry.ID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		previousSlug = current.Slug
	}

	if def.Supports("seo") {
		if err := r.assignSlug(ctx, def, entry); err != nil {
			return err
		}
	}
	if def.IsPublic() && entry.Status == "" {
		entry.Status = "draft"
	}

	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return err
	}

	if previousSlug != "" && previousSlug != entry.Slug {
		if err := r.trackSlug(ctx, def.ShortName, previousSlug, entry.ID); err != nil {
			r.log.Warn("slug history write failed",
				zap.String("slug", previousSlug), zap.Error(err))
		}
	}

	r.invalidate(ctx, def.ShortName, entry.ID)
	return nil
}

// Get returns one entry by ID.
func (r *Repository) Get(ctx context.Context, id string) (*models.EntryModel, error) {
	var entry models.EntryModel
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
		}
		return nil, err
	}
	return &entry, nil
}

// Query returns the base query for one model type, for the caller to page.
func (r *Repository) Query(ctx context.Context, modelType string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.EntryModel{}).
		Where("model_type = ?", modelType).
		Order("created_at DESC")
}

// Delete removes an entry and its slug history.
func (r *Repository) Delete(ctx context.Context, id string) error {
	entry, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.EntryModel{}, "id = ?", id).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Where("entry_id = ?", id).
		Delete(&models.SlugHistoryModel{}).Error; err != nil {
		return err
	}
	r.invalidate(ctx, entry.ModelType, id)
	return nil
}

// ResolveSlug finds an entry by current slug, falling back to the slug
// history for renamed content. A miss returns (nil, nil).
func (r *Repository) ResolveSlug(ctx context.Context, modelType, slug string) (*models.EntryModel, error) {
	var entry models.EntryModel
	err := r.db.WithContext(ctx).
		Where("model_type = ? AND slug = ?", modelType, slug).
		First(&entry).Error
	if err == nil {
		return &entry, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var hist models.SlugHistoryModel
	err = r.db.WithContext(ctx).
		Where("model_type = ? AND slug = ?", modelType, slug).
		First(&hist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, hist.EntryID)
}

func (r *Repository) stripGuarded(def *scanner.Definition, data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(data))
	for _, fd := range def.Fields {
		if !fd.Fillable {
			continue
		}
		if v, ok := data[fd.Name]; ok {
			out[fd.Name] = v
		}
	}
	return out
}

// assignSlug derives the slug from the explicit value, the title field, or
// the first string field, then suffixes it until unique within the model type.
func (r *Repository) assignSlug(ctx context.Context, def *scanner.Definition, entry *models.EntryModel) error {
	base := entry.Slug
	if base == "" {
		base = Slugify(toString(entry.Data["title"]))
	}
	if base == "" {
		for _, fd := range def.Fields {
			if s := toString(entry.Data[fd.Name]); s != "" {
				base = Slugify(s)
				break
			}
		}
	}
	if base == "" {
		base = "entry"
	}

	slug := Slugify(base)
	for i := 2; ; i++ {
		var count int64
		q := r.db.WithContext(ctx).Model(&models.EntryModel{}).
			Where("model_type = ? AND slug = ?", def.ShortName, slug)
		if entry.ID != "" {
			q = q.Where("id <> ?", entry.ID)
		}
		if err := q.Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			break
		}
		slug = fmt.Sprintf("%s-%d", Slugify(base), i)
	}
	entry.Slug = slug
	return nil
}

func (r *Repository) trackSlug(ctx context.Context, modelType, oldSlug, entryID string) error {
	hist := models.SlugHistoryModel{Slug: oldSlug, ModelType: modelType, EntryID: entryID}
	return r.db.WithContext(ctx).
		Where(models.SlugHistoryModel{Slug: oldSlug, ModelType: modelType}).
		Assign(models.SlugHistoryModel{EntryID: entryID}).
		FirstOrCreate(&hist).Error
}

// invalidate forgets the cached render/sitemap entries touched by a write.
func (r *Repository) invalidate(ctx context.Context, modelType, entryID string) {
	if r.store == nil {
		return
	}
	for _, key := range []string{
		"entry:" + entryID,
		"sitemap:" + modelType,
	} {
		if err := r.store.Forget(ctx, key); err != nil {
			r.log.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
		}
	}
}
