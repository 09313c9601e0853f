package analyzer

import (
	"testing"

	"github.com/kokiddp/elkcms/internal/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormTypeMapping(t *testing.T) {
	cases := map[meta.FieldType]string{
		meta.FieldString:      WidgetText,
		meta.FieldText:        WidgetTextarea,
		meta.FieldInteger:     WidgetNumber,
		meta.FieldNumber:      WidgetNumber,
		meta.FieldFloat:       WidgetNumber,
		meta.FieldDecimal:     WidgetNumber,
		meta.FieldBoolean:     WidgetCheckbox,
		meta.FieldDate:        WidgetDate,
		meta.FieldDateTime:    WidgetDateTime,
		meta.FieldTimestamp:   WidgetDateTime,
		meta.FieldEmail:       WidgetEmail,
		meta.FieldURL:         WidgetURL,
		meta.FieldImage:       WidgetFileImage,
		meta.FieldFile:        WidgetFile,
		meta.FieldJSON:        WidgetJSONEditor,
		meta.FieldSelect:      WidgetSelect,
		meta.FieldRadio:       WidgetRadio,
		meta.FieldWYSIWYG:     WidgetWYSIWYG,
		meta.FieldPageBuilder: WidgetPageBuilder,
	}
	for ft, widget := range cases {
		assert.Equal(t, widget, FormType(ft), "widget for %s", ft)
	}
	assert.Equal(t, WidgetText, FormType("unknown"))
}

func TestRulesSynthesized(t *testing.T) {
	cases := []struct {
		name  string
		field meta.Field
		want  []string
	}{
		{
			"required string with bounds",
			meta.Field{Type: meta.FieldString, Required: true, MinLength: 3, MaxLength: 200},
			[]string{"required", "string", "min:3", "max:200"},
		},
		{
			"optional email",
			meta.Field{Type: meta.FieldEmail},
			[]string{"nullable", "email"},
		},
		{
			"integer",
			meta.Field{Type: meta.FieldInteger, Required: true},
			[]string{"required", "integer"},
		},
		{
			"decimal",
			meta.Field{Type: meta.FieldDecimal},
			[]string{"nullable", "numeric"},
		},
		{
			"boolean",
			meta.Field{Type: meta.FieldBoolean},
			[]string{"nullable", "boolean"},
		},
		{
			"datetime",
			meta.Field{Type: meta.FieldDateTime},
			[]string{"nullable", "date"},
		},
		{
			"image ceiling",
			meta.Field{Type: meta.FieldImage},
			[]string{"nullable", "image", "max:2048"},
		},
		{
			"file ceiling",
			meta.Field{Type: meta.FieldFile, Required: true},
			[]string{"required", "file", "max:10240"},
		},
		{
			"json",
			meta.Field{Type: meta.FieldJSON},
			[]string{"nullable", "json"},
		},
		{
			"select membership",
			meta.Field{Type: meta.FieldSelect, Required: true, Options: []string{"a", "b"}},
			[]string{"required", "string", "in:a,b"},
		},
		{
			"url",
			meta.Field{Type: meta.FieldURL},
			[]string{"nullable", "url"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Rules(tc.field))
		})
	}
}

func TestRulesExplicitWinVerbatim(t *testing.T) {
	f := meta.Field{
		Type:       meta.FieldString,
		Required:   true,
		MaxLength:  10,
		Validation: []string{"required", "alpha_dash", "max:64"},
	}
	assert.Equal(t, []string{"required", "alpha_dash", "max:64"}, Rules(f))
}

func TestValidationString(t *testing.T) {
	assert.Equal(t, "required|string|max:200", ValidationString([]string{"required", "string", "max:200"}))
	assert.Equal(t, "", ValidationString(nil))
}

func TestCast(t *testing.T) {
	cases := map[meta.FieldType]CastType{
		meta.FieldInteger:  CastInteger,
		meta.FieldNumber:   CastFloat,
		meta.FieldFloat:    CastFloat,
		meta.FieldDecimal:  CastDecimal,
		meta.FieldBoolean:  CastBoolean,
		meta.FieldDate:     CastDate,
		meta.FieldDateTime: CastDateTime,
		meta.FieldTimestamp: CastDateTime,
		meta.FieldJSON:     CastJSON,
		meta.FieldString:   CastNone,
		meta.FieldText:     CastNone,
		meta.FieldImage:    CastNone,
	}
	for ft, cast := range cases {
		assert.Equal(t, cast, Cast(ft), "cast for %s", ft)
		assert.Equal(t, cast != CastNone, ShouldBeCast(ft))
	}
}

func TestReservedTimestampsNeverFillable(t *testing.T) {
	f := meta.Field{Type: meta.FieldTimestamp}
	for _, name := range []string{"created_at", "updated_at", "deleted_at"} {
		assert.False(t, ShouldBeFillable(name, f), "%s is managed by the persistence layer", name)
	}
	assert.True(t, ShouldBeFillable("published_at", f))
	assert.False(t, ShouldBeFillable("published_at", meta.Field{Type: meta.FieldTimestamp, Guarded: true}))
}

// Every field type must stay in one consistent type family across the rule
// list, the storage column and the cast.
func TestDerivedFactsAgreeAcrossTypes(t *testing.T) {
	for _, ft := range meta.FieldTypes {
		f := meta.Field{Type: ft, Required: true}
		info := Analyze("value", f)

		require.NotEmpty(t, info.FormType, "widget for %s", ft)
		require.NotEmpty(t, info.Rules, "rules for %s", ft)
		assert.Equal(t, "required", info.Rules[0])
		assert.Equal(t, Column("value", f), info.Column)
		assert.Equal(t, Cast(ft), info.Cast)

		switch ft {
		case meta.FieldInteger:
			assert.Contains(t, info.Rules, "integer")
			assert.Equal(t, ColInteger, info.Column.Kind)
		case meta.FieldNumber, meta.FieldFloat:
			assert.Contains(t, info.Rules, "numeric")
			assert.Equal(t, ColDouble, info.Column.Kind)
		case meta.FieldDecimal:
			assert.Contains(t, info.Rules, "numeric")
			assert.Equal(t, ColDecimal, info.Column.Kind)
		case meta.FieldBoolean:
			assert.Contains(t, info.Rules, "boolean")
			assert.Equal(t, ColBoolean, info.Column.Kind)
		case meta.FieldDate, meta.FieldDateTime, meta.FieldTimestamp:
			assert.Contains(t, info.Rules, "date")
		case meta.FieldJSON:
			assert.Contains(t, info.Rules, "json")
			assert.Equal(t, ColJSON, info.Column.Kind)
		}
	}
}

func TestAnalyzeFlags(t *testing.T) {
	info := Analyze("title", meta.Field{
		Type: meta.FieldString, Required: true, Translatable: true, Unique: true, Indexed: true,
	})
	assert.True(t, info.Required)
	assert.True(t, info.Translatable)
	assert.True(t, info.Unique)
	assert.True(t, info.Indexed)
	assert.True(t, info.Nullable)
	assert.True(t, info.Fillable)
}
