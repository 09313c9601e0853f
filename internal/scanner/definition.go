package scanner

import (
	"github.com/jinzhu/inflection"
	"github.com/kokiddp/elkcms/internal/analyzer"
	"github.com/kokiddp/elkcms/internal/meta"
)

// FieldDefinition is one scanned field: the raw declaration plus every fact
// the analyzer derives from it.
type FieldDefinition struct {
	Name        string     `json:"name"`
	Property    string     `json:"property"`
	Declaration meta.Field `json:"declaration"`
	analyzer.Info
}

// RelationDefinition is one scanned relationship with its precomputed
// cardinality facts.
type RelationDefinition struct {
	Name          string            `json:"name"`
	Property      string            `json:"property"`
	Declaration   meta.Relationship `json:"declaration"`
	ToMany        bool              `json:"to_many"`
	ToOne         bool              `json:"to_one"`
	RequiresPivot bool              `json:"requires_pivot"`
}

// SEOInfo is the scanned SEO declaration with its precomputed values.
type SEOInfo struct {
	meta.SEO
	SchemaURL string  `json:"schema_url"`
	Priority  float64 `json:"priority"`
}

// Definition is the normalized output of scanning one content model.
// It is immutable once produced; consumers must treat it as read-only.
type Definition struct {
	Model         string               `json:"model"`
	ShortName     string               `json:"short_name"`
	Package       string               `json:"package"`
	ContentModel  *meta.ContentModel   `json:"content_model"`
	SEO           *SEOInfo             `json:"seo"`
	Fields        []FieldDefinition    `json:"fields"`
	Relationships []RelationDefinition `json:"relationships"`
}

// Field returns the named field definition, or nil.
func (d *Definition) Field(name string) *FieldDefinition {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}
	return nil
}

// Relationship returns the named relationship definition, or nil.
func (d *Definition) Relationship(name string) *RelationDefinition {
	for i := range d.Relationships {
		if d.Relationships[i].Name == name {
			return &d.Relationships[i]
		}
	}
	return nil
}

// TranslatableFields returns the field definitions marked translatable,
// keeping declaration order.
func (d *Definition) TranslatableFields() []FieldDefinition {
	var out []FieldDefinition
	for _, f := range d.Fields {
		if f.Translatable {
			out = append(out, f)
		}
	}
	return out
}

// ValidationRules returns the per-field rule lists keyed by field name.
func (d *Definition) ValidationRules() map[string][]string {
	rules := make(map[string][]string, len(d.Fields))
	for _, f := range d.Fields {
		rules[f.Name] = f.Rules
	}
	return rules
}

// Fillable returns the names of the mass-assignable fields in order.
func (d *Definition) Fillable() []string {
	var out []string
	for _, f := range d.Fields {
		if f.Fillable {
			out = append(out, f.Name)
		}
	}
	return out
}

// Casts returns the non-empty cast types keyed by field name.
func (d *Definition) Casts() map[string]analyzer.CastType {
	casts := make(map[string]analyzer.CastType)
	for _, f := range d.Fields {
		if f.Cast != analyzer.CastNone {
			casts[f.Name] = f.Cast
		}
	}
	return casts
}

// TableName derives the storage table: the declared route prefix when set,
// otherwise the pluralized snake-cased short name.
func (d *Definition) TableName() string {
	if d.ContentModel != nil && d.ContentModel.RoutePrefix != "" {
		return meta.SnakeCase(d.ContentModel.RoutePrefix)
	}
	return inflection.Plural(meta.SnakeCase(d.ShortName))
}

// Supports reports whether the scanned content model declares a feature tag.
func (d *Definition) Supports(feature string) bool {
	return d.ContentModel != nil && d.ContentModel.HasSupport(feature)
}

// IsPublic reports whether the scanned content model is publicly routed.
func (d *Definition) IsPublic() bool {
	return d.ContentModel != nil && d.ContentModel.IsPublic()
}
