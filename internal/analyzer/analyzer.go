// Package analyzer derives the secondary facts of one field declaration:
// validation rules, storage column, cast type and form widget. Everything in
// here is a pure function of its input; the scanner precomputes these facts
// once per model and callers read them from the cached definition.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/kokiddp/elkcms/internal/meta"
)

// CastType is the in-memory representation a stored value converts to.
type CastType string

const (
	CastNone     CastType = ""
	CastInteger  CastType = "integer"
	CastFloat    CastType = "float"
	CastDecimal  CastType = "decimal"
	CastBoolean  CastType = "boolean"
	CastDate     CastType = "date"
	CastDateTime CastType = "datetime"
	CastJSON     CastType = "json"
)

// Form widget kinds emitted for each field type.
const (
	WidgetText        = "text"
	WidgetTextarea    = "textarea"
	WidgetNumber      = "number"
	WidgetCheckbox    = "checkbox"
	WidgetDate        = "date"
	WidgetDateTime    = "datetime-local"
	WidgetEmail       = "email"
	WidgetURL         = "url"
	WidgetFileImage   = "file-image"
	WidgetFile        = "file"
	WidgetJSONEditor  = "json-editor"
	WidgetSelect      = "select"
	WidgetRadio       = "radio"
	WidgetWYSIWYG     = "wysiwyg"
	WidgetPageBuilder = "pagebuilder"
)

// Upload ceilings, in kilobytes, applied to synthesized image/file rules.
const (
	maxImageKB = 2048
	maxFileKB  = 10240
)

// reservedTimestamps are column names managed by the persistence layer;
// they are never fillable regardless of their declaration.
var reservedTimestamps = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"deleted_at": true,
}

// Info carries every derived fact for one declared field.
type Info struct {
	FormType     string     `json:"form_type"`
	Rules        []string   `json:"rules"`
	Column       ColumnSpec `json:"column"`
	Cast         CastType   `json:"cast"`
	Translatable bool       `json:"translatable"`
	Required     bool       `json:"required"`
	Unique       bool       `json:"unique"`
	Indexed      bool       `json:"indexed"`
	Nullable     bool       `json:"nullable"`
	Fillable     bool       `json:"fillable"`
}

// Analyze derives every secondary fact for one named field declaration.
func Analyze(name string, f meta.Field) Info {
	return Info{
		FormType:     FormType(f.Type),
		Rules:        Rules(f),
		Column:       Column(name, f),
		Cast:         Cast(f.Type),
		Translatable: f.Translatable,
		Required:     f.Required,
		Unique:       f.Unique,
		Indexed:      f.Indexed,
		Nullable:     f.IsNullable(),
		Fillable:     ShouldBeFillable(name, f),
	}
}

// FormType maps a field type to its form widget kind. Unrecognized types
// degrade to a plain text input.
func FormType(t meta.FieldType) string {
	switch t {
	case meta.FieldString:
		return WidgetText
	case meta.FieldText:
		return WidgetTextarea
	case meta.FieldInteger, meta.FieldNumber, meta.FieldFloat, meta.FieldDecimal:
		return WidgetNumber
	case meta.FieldBoolean:
		return WidgetCheckbox
	case meta.FieldDate:
		return WidgetDate
	case meta.FieldDateTime, meta.FieldTimestamp:
		return WidgetDateTime
	case meta.FieldEmail:
		return WidgetEmail
	case meta.FieldURL:
		return WidgetURL
	case meta.FieldImage:
		return WidgetFileImage
	case meta.FieldFile:
		return WidgetFile
	case meta.FieldJSON:
		return WidgetJSONEditor
	case meta.FieldSelect:
		return WidgetSelect
	case meta.FieldRadio:
		return WidgetRadio
	case meta.FieldWYSIWYG:
		return WidgetWYSIWYG
	case meta.FieldPageBuilder:
		return WidgetPageBuilder
	default:
		return WidgetText
	}
}

// Rules returns the validation-rule list for a field. Explicitly declared
// rules win verbatim; otherwise the list is synthesized from the declaration.
func Rules(f meta.Field) []string {
	if len(f.Validation) > 0 {
		return append([]string(nil), f.Validation...)
	}

	var rules []string
	if f.Required {
		rules = append(rules, "required")
	} else {
		rules = append(rules, "nullable")
	}

	switch f.Type {
	case meta.FieldString, meta.FieldText, meta.FieldWYSIWYG, meta.FieldPageBuilder:
		rules = append(rules, "string")
		if f.MinLength > 0 {
			rules = append(rules, fmt.Sprintf("min:%d", f.MinLength))
		}
		if f.MaxLength > 0 {
			rules = append(rules, fmt.Sprintf("max:%d", f.MaxLength))
		}
	case meta.FieldEmail:
		rules = append(rules, "email")
	case meta.FieldURL:
		rules = append(rules, "url")
	case meta.FieldInteger:
		rules = append(rules, "integer")
	case meta.FieldNumber, meta.FieldFloat, meta.FieldDecimal:
		rules = append(rules, "numeric")
	case meta.FieldBoolean:
		rules = append(rules, "boolean")
	case meta.FieldDate, meta.FieldDateTime, meta.FieldTimestamp:
		rules = append(rules, "date")
	case meta.FieldImage:
		rules = append(rules, "image", fmt.Sprintf("max:%d", maxImageKB))
	case meta.FieldFile:
		rules = append(rules, "file", fmt.Sprintf("max:%d", maxFileKB))
	case meta.FieldJSON:
		rules = append(rules, "json")
	case meta.FieldSelect, meta.FieldRadio:
		rules = append(rules, "string")
		if len(f.Options) > 0 {
			rules = append(rules, "in:"+strings.Join(f.Options, ","))
		}
	default:
		rules = append(rules, "string")
	}
	return rules
}

// ValidationString serializes a rule list to the pipe-delimited form.
func ValidationString(rules []string) string {
	return strings.Join(rules, "|")
}

// Cast maps a field type to its cast type; CastNone means the stored string
// is used as-is.
func Cast(t meta.FieldType) CastType {
	switch t {
	case meta.FieldInteger:
		return CastInteger
	case meta.FieldNumber, meta.FieldFloat:
		return CastFloat
	case meta.FieldDecimal:
		return CastDecimal
	case meta.FieldBoolean:
		return CastBoolean
	case meta.FieldDate:
		return CastDate
	case meta.FieldDateTime, meta.FieldTimestamp:
		return CastDateTime
	case meta.FieldJSON:
		return CastJSON
	default:
		return CastNone
	}
}

// ShouldBeCast reports whether the field's values need conversion on read.
func ShouldBeCast(t meta.FieldType) bool { return Cast(t) != CastNone }

// ShouldBeFillable reports whether the field accepts mass assignment.
// Reserved timestamp columns are never fillable.
func ShouldBeFillable(name string, f meta.Field) bool {
	if reservedTimestamps[name] {
		return false
	}
	return f.IsFillable()
}
