package meta

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// Struct tag keys read by this package.
const (
	FieldTagKey    = "cms"
	RelationTagKey = "cmsrel"
)

// FieldDecl pairs a parsed field declaration with the property it came from.
type FieldDecl struct {
	Name     string // snake_case column/form name derived from the Go field
	Property string // Go struct field name
	Field    Field
}

// RelationDecl pairs a parsed relationship declaration with its property.
type RelationDecl struct {
	Name     string
	Property string
	Relation Relationship
}

// ParseFieldTag parses one `cms` struct tag value into a Field declaration.
func ParseFieldTag(tag string) (Field, error) {
	f := Field{}
	for _, token := range splitTokens(tag) {
		key, value, hasValue := cutToken(token)
		switch key {
		case "type":
			t := FieldType(value)
			if !t.Valid() {
				return Field{}, fmt.Errorf("meta: unknown field type %q", value)
			}
			f.Type = t
		case "label":
			f.Label = value
		case "help":
			f.HelpText = value
		case "placeholder":
			f.Placeholder = value
		case "default":
			f.Default = value
			f.HasDefault = true
		case "maxlen":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Field{}, fmt.Errorf("meta: bad maxlen %q: %w", value, err)
			}
			f.MaxLength = n
		case "minlen":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Field{}, fmt.Errorf("meta: bad minlen %q: %w", value, err)
			}
			f.MinLength = n
		case "options":
			f.Options = splitList(value)
		case "validate":
			f.Validation = splitList(value)
		case "required":
			f.Required = true
		case "translatable":
			f.Translatable = true
		case "unique":
			f.Unique = true
		case "index":
			f.Indexed = true
		case "notnull":
			f.NotNull = true
		case "guarded":
			f.Guarded = true
		default:
			if hasValue {
				return Field{}, fmt.Errorf("meta: unknown field tag key %q", key)
			}
			return Field{}, fmt.Errorf("meta: unknown field tag flag %q", key)
		}
	}
	if f.Type == "" {
		return Field{}, fmt.Errorf("meta: field tag is missing type")
	}
	return f, nil
}

// ParseRelationTag parses one `cmsrel` struct tag value into a Relationship.
func ParseRelationTag(tag string) (Relationship, error) {
	r := Relationship{}
	for _, token := range splitTokens(tag) {
		key, value, _ := cutToken(token)
		switch key {
		case "type":
			switch t := RelationType(value); t {
			case HasOne, HasMany, BelongsTo, BelongsToMany, MorphOne, MorphMany, HasManyThrough:
				r.Type = t
			default:
				return Relationship{}, fmt.Errorf("meta: unknown relation type %q", value)
			}
		case "model":
			r.Model = value
		case "fk":
			r.ForeignKey = value
		case "local":
			r.LocalKey = value
		case "pivot":
			r.PivotTable = value
		case "label":
			r.Label = value
		case "eager":
			r.Eager = true
		case "fields":
			fields, err := parsePivotFields(value)
			if err != nil {
				return Relationship{}, err
			}
			r.PivotFields = fields
		default:
			return Relationship{}, fmt.Errorf("meta: unknown relation tag key %q", key)
		}
	}
	if r.Type == "" {
		return Relationship{}, fmt.Errorf("meta: relation tag is missing type")
	}
	if r.Model == "" {
		return Relationship{}, fmt.Errorf("meta: relation tag is missing model")
	}
	return r, nil
}

// pivot fields are declared as name:type or name:type:nullable, separated by ;
func parsePivotFields(value string) ([]PivotField, error) {
	var fields []PivotField
	for _, spec := range strings.Split(value, ";") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		parts := strings.Split(spec, ":")
		if len(parts) < 2 {
			return nil, fmt.Errorf("meta: bad pivot field spec %q", spec)
		}
		pf := PivotField{Name: parts[0], Type: FieldType(parts[1])}
		if !pf.Type.Valid() {
			return nil, fmt.Errorf("meta: bad pivot field type %q", parts[1])
		}
		if len(parts) > 2 && parts[2] == "nullable" {
			pf.Nullable = true
		}
		fields = append(fields, pf)
	}
	return fields, nil
}

// FieldDeclarations returns the field declarations of a model in struct
// declaration order. Properties without a cms tag are ignored; properties
// whose tag fails to parse are skipped rather than aborting the scan.
func FieldDeclarations(model any) []FieldDecl {
	t := structType(model)
	if t == nil {
		return nil
	}
	var decls []FieldDecl
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, ok := sf.Tag.Lookup(FieldTagKey)
		if !ok || !sf.IsExported() {
			continue
		}
		f, err := ParseFieldTag(tag)
		if err != nil {
			continue
		}
		decls = append(decls, FieldDecl{Name: SnakeCase(sf.Name), Property: sf.Name, Field: f})
	}
	return decls
}

// RelationDeclarations returns the relationship declarations of a model in
// struct declaration order, with the same skip-on-parse-failure policy as
// FieldDeclarations.
func RelationDeclarations(model any) []RelationDecl {
	t := structType(model)
	if t == nil {
		return nil
	}
	var decls []RelationDecl
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, ok := sf.Tag.Lookup(RelationTagKey)
		if !ok || !sf.IsExported() {
			continue
		}
		r, err := ParseRelationTag(tag)
		if err != nil {
			continue
		}
		decls = append(decls, RelationDecl{Name: SnakeCase(sf.Name), Property: sf.Name, Relation: r})
	}
	return decls
}

// HasFieldTag reports whether the named Go property carries a cms tag.
func HasFieldTag(model any, property string) bool {
	t := structType(model)
	if t == nil {
		return false
	}
	sf, ok := t.FieldByName(property)
	if !ok {
		return false
	}
	_, tagged := sf.Tag.Lookup(FieldTagKey)
	return tagged
}

// HasRelationTag reports whether the named Go property carries a cmsrel tag.
func HasRelationTag(model any, property string) bool {
	t := structType(model)
	if t == nil {
		return false
	}
	sf, ok := t.FieldByName(property)
	if !ok {
		return false
	}
	_, tagged := sf.Tag.Lookup(RelationTagKey)
	return tagged
}

// ModelOptions returns the class-level content-model declaration, if any.
func ModelOptions(model any) (ContentModel, bool) {
	if p, ok := model.(ContentModelProvider); ok {
		return p.ContentModelOptions(), true
	}
	return ContentModel{}, false
}

// SEOOptions returns the class-level SEO declaration, if any.
func SEOOptions(model any) (SEO, bool) {
	if p, ok := model.(SEOProvider); ok {
		return p.SEOOptions(), true
	}
	return SEO{}, false
}

// ToMap flattens the exported fields of a declaration value into a map,
// keyed by snake_case field name. Unexported fields are ignored.
func ToMap(decl any) map[string]any {
	v := reflect.ValueOf(decl)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	out := make(map[string]any, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		sf := v.Type().Field(i)
		if !sf.IsExported() {
			continue
		}
		out[SnakeCase(sf.Name)] = v.Field(i).Interface()
	}
	return out
}

// SnakeCase converts a Go identifier to snake_case, keeping initialisms
// together (SEOTitle -> seo_title, ImageURL -> image_url).
func SnakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func structType(model any) reflect.Type {
	t := reflect.TypeOf(model)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	return t
}
