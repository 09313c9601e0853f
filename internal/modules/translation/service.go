// Package translation stores per-locale field values for content entries.
package translation

import (
	"context"
	"errors"
	"fmt"

	"github.com/kokiddp/elkcms/internal/models"
	"github.com/kokiddp/elkcms/internal/scanner"
	"gorm.io/gorm"
)

var (
	// ErrNotTranslatable reports a write to a field not marked translatable.
	ErrNotTranslatable = errors.New("translation: field is not translatable")
	// ErrUnknownField reports a write to a field the model does not declare.
	ErrUnknownField = errors.New("translation: unknown field")
	// ErrUnknownLocale reports a locale outside the configured set.
	ErrUnknownLocale = errors.New("translation: unsupported locale")
)

// Service provides per-locale value storage keyed by model, entry and field.
type Service struct {
	db      *gorm.DB
	sc      *scanner.Scanner
	locales []string
}

// NewService returns a translation service restricted to the configured
// supported locales.
func NewService(db *gorm.DB, sc *scanner.Scanner, locales []string) *Service {
	return &Service{db: db, sc: sc, locales: locales}
}

// Set stores the translated value of one field for one entry and locale.
// Writing to a non-translatable or undeclared field fails.
func (s *Service) Set(ctx context.Context, model any, entryID, field, locale, value string) error {
	if err := s.checkLocale(locale); err != nil {
		return err
	}

	def, err := s.sc.Scan(ctx, model, true)
	if err != nil {
		return err
	}
	fd := def.Field(field)
	if fd == nil {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, def.ShortName, field)
	}
	if !fd.Translatable {
		return fmt.Errorf("%w: %s.%s", ErrNotTranslatable, def.ShortName, field)
	}

	row := models.TranslationModel{
		ModelType: def.ShortName,
		EntryID:   entryID,
		Field:     field,
		Locale:    locale,
	}
	return s.db.WithContext(ctx).
		Where(models.TranslationModel{ModelType: def.ShortName, EntryID: entryID, Field: field, Locale: locale}).
		Assign(map[string]any{"value": value}).
		FirstOrCreate(&row).Error
}

// Get returns the translated value, or ("", nil) when none is stored.
func (s *Service) Get(ctx context.Context, model any, entryID, field, locale string) (string, error) {
	def, err := s.sc.Scan(ctx, model, true)
	if err != nil {
		return "", err
	}
	var row models.TranslationModel
	err = s.db.WithContext(ctx).
		Where("model_type = ? AND entry_id = ? AND field = ? AND locale = ?", def.ShortName, entryID, field, locale).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return row.Value, nil
}

// ForEntry returns every stored translation of one entry, keyed by locale
// then field.
func (s *Service) ForEntry(ctx context.Context, model any, entryID string) (map[string]map[string]any, error) {
	def, err := s.sc.Scan(ctx, model, true)
	if err != nil {
		return nil, err
	}
	var rows []models.TranslationModel
	if err := s.db.WithContext(ctx).
		Where("model_type = ? AND entry_id = ?", def.ShortName, entryID).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]map[string]any)
	for _, row := range rows {
		if out[row.Locale] == nil {
			out[row.Locale] = make(map[string]any)
		}
		out[row.Locale][row.Field] = row.Value
	}
	return out, nil
}

// DeleteForEntry removes every translation of one entry.
func (s *Service) DeleteForEntry(ctx context.Context, model any, entryID string) error {
	def, err := s.sc.Scan(ctx, model, true)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("model_type = ? AND entry_id = ?", def.ShortName, entryID).
		Delete(&models.TranslationModel{}).Error
}

// Locales returns the configured supported locales.
func (s *Service) Locales() []string { return s.locales }

func (s *Service) checkLocale(locale string) error {
	for _, l := range s.locales {
		if l == locale {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
}
