package meta

import (
	"fmt"
	"strconv"
)

// FieldType is the closed vocabulary of declarable field types.
type FieldType string

const (
	FieldString      FieldType = "string"
	FieldText        FieldType = "text"
	FieldPageBuilder FieldType = "pagebuilder"
	FieldInteger     FieldType = "integer"
	FieldNumber      FieldType = "number"
	FieldBoolean     FieldType = "boolean"
	FieldDate        FieldType = "date"
	FieldDateTime    FieldType = "datetime"
	FieldTimestamp   FieldType = "timestamp"
	FieldDecimal     FieldType = "decimal"
	FieldFloat       FieldType = "float"
	FieldEmail       FieldType = "email"
	FieldURL         FieldType = "url"
	FieldImage       FieldType = "image"
	FieldFile        FieldType = "file"
	FieldJSON        FieldType = "json"
	FieldSelect      FieldType = "select"
	FieldRadio       FieldType = "radio"
	FieldWYSIWYG     FieldType = "wysiwyg"
)

// FieldTypes lists every declarable field type.
var FieldTypes = []FieldType{
	FieldString, FieldText, FieldPageBuilder, FieldInteger, FieldNumber,
	FieldBoolean, FieldDate, FieldDateTime, FieldTimestamp, FieldDecimal,
	FieldFloat, FieldEmail, FieldURL, FieldImage, FieldFile, FieldJSON,
	FieldSelect, FieldRadio, FieldWYSIWYG,
}

// Valid reports whether t is part of the declarable vocabulary.
func (t FieldType) Valid() bool {
	for _, known := range FieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ContentModel is the class-level declaration for one content type.
// A model exposes it through the ContentModelProvider interface.
type ContentModel struct {
	Label       string   `json:"label"`
	Icon        string   `json:"icon"`
	Supports    []string `json:"supports"`
	Description string   `json:"description"`
	// Hidden excludes the model from public routes. Models are public by default.
	Hidden      bool   `json:"hidden"`
	RoutePrefix string `json:"route_prefix"`
}

// IsPublic reports whether the model is exposed on public routes.
func (m ContentModel) IsPublic() bool { return !m.Hidden }

// Supports reports whether the model declares the given feature tag.
func (m ContentModel) HasSupport(feature string) bool {
	for _, s := range m.Supports {
		if s == feature {
			return true
		}
	}
	return false
}

// Field is the per-property declaration carried in a `cms` struct tag.
type Field struct {
	Type         FieldType `json:"type"`
	Label        string    `json:"label"`
	Required     bool      `json:"required"`
	Translatable bool      `json:"translatable"`
	MaxLength    int       `json:"max_length"`
	MinLength    int       `json:"min_length"`
	// Default is the declared default value, rendered as declared.
	// HasDefault distinguishes "no default" from an empty-string default.
	Default    string   `json:"default"`
	HasDefault bool     `json:"has_default"`
	Validation []string `json:"validation"`
	HelpText   string   `json:"help_text"`
	Placeholder string  `json:"placeholder"`
	Options    []string `json:"options"`
	Unique     bool     `json:"unique"`
	Indexed    bool     `json:"indexed"`
	// NotNull and Guarded invert the declaration defaults: fields are
	// nullable and fillable unless declared otherwise.
	NotNull bool `json:"not_null"`
	Guarded bool `json:"guarded"`
}

// IsNullable reports whether the column may hold NULL. Defaults to true.
func (f Field) IsNullable() bool { return !f.NotNull }

// IsFillable reports whether the field accepts mass assignment. Defaults to true.
func (f Field) IsFillable() bool { return !f.Guarded }

// RelationType is the closed vocabulary of declarable relationship kinds.
type RelationType string

const (
	HasOne         RelationType = "hasOne"
	HasMany        RelationType = "hasMany"
	BelongsTo      RelationType = "belongsTo"
	BelongsToMany  RelationType = "belongsToMany"
	MorphOne       RelationType = "morphOne"
	MorphMany      RelationType = "morphMany"
	HasManyThrough RelationType = "hasManyThrough"
)

// IsToMany reports whether the relation resolves to a collection.
func (t RelationType) IsToMany() bool {
	switch t {
	case HasMany, BelongsToMany, MorphMany, HasManyThrough:
		return true
	}
	return false
}

// IsToOne reports whether the relation resolves to a single record.
func (t RelationType) IsToOne() bool {
	switch t {
	case HasOne, BelongsTo, MorphOne:
		return true
	}
	return false
}

// RequiresPivot reports whether the relation is stored through a pivot table.
func (t RelationType) RequiresPivot() bool { return t == BelongsToMany }

// PivotField describes one extra column on a pivot table.
type PivotField struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Nullable bool      `json:"nullable"`
}

// Relationship is the per-property declaration carried in a `cmsrel` struct tag.
type Relationship struct {
	Type        RelationType `json:"type"`
	Model       string       `json:"model"`
	ForeignKey  string       `json:"foreign_key"`
	LocalKey    string       `json:"local_key"`
	PivotTable  string       `json:"pivot_table"`
	Label       string       `json:"label"`
	Eager       bool         `json:"eager"`
	PivotFields []PivotField `json:"pivot_fields"`
}

// ChangeFrequencies are the values accepted for SEO.SitemapChangeFreq.
var ChangeFrequencies = []string{
	"always", "hourly", "daily", "weekly", "monthly", "yearly", "never",
}

// SEO is the class-level search-engine declaration for one content type.
// Use NewSEO or MustSEO so out-of-range values fail when the model loads.
type SEO struct {
	SchemaType        string   `json:"schema_type"`
	SchemaProperties  []string `json:"schema_properties"`
	SitemapPriority   string   `json:"sitemap_priority"`
	SitemapChangeFreq string   `json:"sitemap_change_freq"`
	// ExcludeFromSitemap inverts the default: models are listed unless excluded.
	ExcludeFromSitemap bool     `json:"exclude_from_sitemap"`
	MetaFields         []string `json:"meta_fields"`
	EnableBreadcrumbs  bool     `json:"enable_breadcrumbs"`
}

// NewSEO validates and normalizes an SEO declaration.
func NewSEO(s SEO) (SEO, error) {
	if s.SchemaType == "" {
		s.SchemaType = "Thing"
	}
	if s.SitemapPriority == "" {
		s.SitemapPriority = "0.5"
	}
	if s.SitemapChangeFreq == "" {
		s.SitemapChangeFreq = "weekly"
	}

	p, err := strconv.ParseFloat(s.SitemapPriority, 64)
	if err != nil {
		return SEO{}, fmt.Errorf("%w: %q is not a number", ErrInvalidPriority, s.SitemapPriority)
	}
	if p < 0.0 || p > 1.0 {
		return SEO{}, fmt.Errorf("%w: %q out of [0.0, 1.0]", ErrInvalidPriority, s.SitemapPriority)
	}

	valid := false
	for _, f := range ChangeFrequencies {
		if s.SitemapChangeFreq == f {
			valid = true
			break
		}
	}
	if !valid {
		return SEO{}, fmt.Errorf("%w: %q", ErrInvalidChangeFreq, s.SitemapChangeFreq)
	}
	return s, nil
}

// MustSEO is NewSEO that panics; intended for model declarations so that a
// malformed declaration fails as soon as the model package loads.
func MustSEO(s SEO) SEO {
	out, err := NewSEO(s)
	if err != nil {
		panic(err)
	}
	return out
}

// SchemaURL returns the schema.org URL for the declared schema type.
func (s SEO) SchemaURL() string { return "https://schema.org/" + s.SchemaType }

// PriorityValue returns the sitemap priority as a float. The value is
// guaranteed parseable for declarations built through NewSEO.
func (s SEO) PriorityValue() float64 {
	p, _ := strconv.ParseFloat(s.SitemapPriority, 64)
	return p
}

// IncludedInSitemap reports whether the model should appear in the sitemap.
func (s SEO) IncludedInSitemap() bool { return !s.ExcludeFromSitemap }

// ContentModelProvider is implemented by declared content-model structs.
type ContentModelProvider interface {
	ContentModelOptions() ContentModel
}

// SEOProvider is optionally implemented by content models that declare SEO
// settings.
type SEOProvider interface {
	SEOOptions() SEO
}
