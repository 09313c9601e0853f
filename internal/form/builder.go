// Package form renders the admin input markup for scanned content models:
// per-field widgets, assembled forms, validation-rule maps and translation
// tabs. The builder is stateless; request state (old input, error bag,
// per-locale values) comes in read-only through Options.
package form

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/kokiddp/elkcms/internal/analyzer"
	"github.com/kokiddp/elkcms/internal/meta"
	"github.com/kokiddp/elkcms/internal/scanner"
)

// Options carries the ambient request state a render may need.
type Options struct {
	// OldInput holds the most recent re-submitted values after a failed
	// validation, keyed by input name. It wins over the existing value.
	OldInput map[string]any
	// Errors is the active validation-error bag, keyed by field name.
	Errors map[string][]string
	// Locales overrides the builder's configured locale list for
	// translation tabs.
	Locales []string
	// Translations holds existing per-locale values: locale -> field -> value.
	Translations map[string]map[string]any
}

// Builder renders form markup from scanned definitions.
type Builder struct {
	sc      *scanner.Scanner
	locales []string
}

// NewBuilder returns a Builder; locales is the configured supported-locale
// list used when a render does not specify its own.
func NewBuilder(sc *scanner.Scanner, locales []string) *Builder {
	return &Builder{sc: sc, locales: locales}
}

// BuildForm renders every declared field of a model, populated from old
// input when present, else from the existing record's values.
func (b *Builder) BuildForm(ctx context.Context, model any, existing map[string]any, opts Options) (template.HTML, error) {
	def, err := b.sc.Scan(ctx, model, true)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, fd := range def.Fields {
		value := resolveValue(fd.Name, existing, opts)
		rendered, err := b.buildWrapped(fd.Name, value, fd, opts.Errors[fd.Name])
		if err != nil {
			return "", err
		}
		out.WriteString(string(rendered))
	}
	return template.HTML(out.String()), nil
}

// BuildField renders the bare input widget for one field definition.
func (b *Builder) BuildField(name string, value any, fd scanner.FieldDefinition) (template.HTML, error) {
	data := b.fieldData(name, value, fd)
	return execute(data.Widget, data)
}

// BuildValidationRules returns the per-field rule lists for a model.
func (b *Builder) BuildValidationRules(ctx context.Context, model any) (map[string][]string, error) {
	def, err := b.sc.Scan(ctx, model, true)
	if err != nil {
		return nil, err
	}
	return def.ValidationRules(), nil
}

// BuildTranslationTabs renders one tab per locale holding the model's
// translatable fields. Models without translatable fields render nothing.
func (b *Builder) BuildTranslationTabs(ctx context.Context, model any, opts Options) (template.HTML, error) {
	def, err := b.sc.Scan(ctx, model, true)
	if err != nil {
		return "", err
	}

	translatable := def.TranslatableFields()
	if len(translatable) == 0 {
		return "", nil
	}

	locales := opts.Locales
	if len(locales) == 0 {
		locales = b.locales
	}

	type tab struct {
		Locale string
		Active bool
		Fields []template.HTML
	}
	var tabs []tab
	for i, locale := range locales {
		t := tab{Locale: locale, Active: i == 0}
		for _, fd := range translatable {
			name := fmt.Sprintf("translations[%s][%s]", locale, fd.Name)
			value := opts.OldInput[name]
			if value == nil {
				if perLocale, ok := opts.Translations[locale]; ok {
					value = perLocale[fd.Name]
				}
			}
			rendered, err := b.buildWrapped(name, value, fd, opts.Errors[name])
			if err != nil {
				return "", err
			}
			t.Fields = append(t.Fields, rendered)
		}
		tabs = append(tabs, t)
	}

	return execute("tabs", map[string]any{"Tabs": tabs})
}

// wrapperData feeds the field wrapper template.
type wrapperData struct {
	ID        string
	Widget    string
	Label     string
	Required  bool
	HelpText  string
	Errors    []string
	HasErrors bool
	Control   template.HTML
}

func (b *Builder) buildWrapped(name string, value any, fd scanner.FieldDefinition, errs []string) (template.HTML, error) {
	control, err := b.BuildField(name, value, fd)
	if err != nil {
		return "", err
	}
	data := wrapperData{
		ID:        fieldID(name),
		Widget:    fd.FormType,
		Label:     labelFor(name, fd),
		Required:  fd.Required,
		HelpText:  fd.Declaration.HelpText,
		Errors:    errs,
		HasErrors: len(errs) > 0,
		Control:   control,
	}
	return execute("wrapper", data)
}

type optionData struct {
	Value    string
	Selected bool
}

// fieldData feeds the widget templates.
type fieldData struct {
	ID          string
	Name        string
	Widget      string
	InputType   string
	Value       string
	Placeholder string
	MaxLength   int
	Required    bool
	Checked     bool
	Step        string
	Accept      string
	IsImage     bool
	HasValue    bool
	Options     []optionData
}

func (b *Builder) fieldData(name string, value any, fd scanner.FieldDefinition) fieldData {
	data := fieldData{
		ID:          fieldID(name),
		Name:        name,
		Widget:      fd.FormType,
		Placeholder: fd.Declaration.Placeholder,
		MaxLength:   fd.Declaration.MaxLength,
		Required:    fd.Required,
		HasValue:    hasValue(value),
	}
	if data.Widget == "" {
		data.Widget = analyzer.WidgetText
	}

	switch data.Widget {
	case analyzer.WidgetText, analyzer.WidgetEmail, analyzer.WidgetURL:
		data.Widget = "input"
		data.InputType = inputTypeFor(fd.FormType)
		data.Value = stringValue(value)
	case analyzer.WidgetTextarea:
		data.Widget = "textarea"
		data.Value = stringValue(value)
	case analyzer.WidgetWYSIWYG:
		data.Value = stringValue(value)
	case analyzer.WidgetNumber:
		data.Step = "0.01"
		if fd.Declaration.Type == meta.FieldInteger {
			data.Step = "1"
		}
		data.Value = stringValue(value)
	case analyzer.WidgetCheckbox:
		data.Checked = truthy(value)
	case analyzer.WidgetSelect, analyzer.WidgetRadio:
		if data.Widget == analyzer.WidgetRadio {
			data.Widget = "radio"
		} else {
			data.Widget = "select"
		}
		current := stringValue(value)
		for _, opt := range fd.Declaration.Options {
			data.Options = append(data.Options, optionData{Value: opt, Selected: opt == current})
		}
	case analyzer.WidgetFileImage, analyzer.WidgetFile:
		isImage := data.Widget == analyzer.WidgetFileImage
		data.Widget = "file"
		data.IsImage = isImage
		if isImage {
			data.Accept = "image/*"
		}
		data.Value = stringValue(value)
		// re-upload is never forced when a file is already stored
		if data.HasValue {
			data.Required = false
		}
	case analyzer.WidgetDate:
		data.Value = formatDate(value, "2006-01-02")
	case analyzer.WidgetDateTime:
		data.Widget = "datetime-local"
		data.Value = formatDate(value, "2006-01-02T15:04")
	case analyzer.WidgetJSONEditor:
		data.Widget = "json-editor"
		data.Value = jsonValue(value)
	case analyzer.WidgetPageBuilder:
		data.Value = stringValue(value)
	default:
		data.Widget = "input"
		data.InputType = "text"
		data.Value = stringValue(value)
	}
	return data
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := widgetTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("form: render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

func inputTypeFor(widget string) string {
	switch widget {
	case analyzer.WidgetEmail:
		return "email"
	case analyzer.WidgetURL:
		return "url"
	default:
		return "text"
	}
}

func resolveValue(name string, existing map[string]any, opts Options) any {
	if v, ok := opts.OldInput[name]; ok {
		return v
	}
	if v, ok := existing[name]; ok {
		return v
	}
	return nil
}

func labelFor(name string, fd scanner.FieldDefinition) string {
	if fd.Declaration.Label != "" {
		return fd.Declaration.Label
	}
	base := fd.Name
	words := strings.Split(strings.ReplaceAll(base, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func fieldID(name string) string {
	r := strings.NewReplacer("[", "-", "]", "", " ", "-")
	return r.Replace(name)
}

func hasValue(value any) bool {
	if value == nil {
		return false
	}
	if s, ok := value.(string); ok {
		return s != ""
	}
	return true
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "1" || v == "true" || v == "on"
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

// formatDate renders a structured or parseable date value with the given
// layout; anything unparseable passes through as typed.
func formatDate(value any, layout string) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(layout)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format(layout)
	case string:
		for _, parse := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04", "2006-01-02"} {
			if t, err := time.Parse(parse, v); err == nil {
				return t.Format(layout)
			}
		}
		return v
	default:
		return stringValue(value)
	}
}

// jsonValue pretty-prints structured values; raw strings pass through.
func jsonValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		pretty, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return stringValue(value)
		}
		return string(pretty)
	}
}
