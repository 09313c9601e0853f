package form

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kokiddp/elkcms/internal/cache"
	"github.com/kokiddp/elkcms/internal/meta"
	"github.com/kokiddp/elkcms/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type articleFixture struct {
	Title    string `cms:"type=string,label=Title,required,translatable,maxlen=200"`
	Summary  string `cms:"type=text,label=Summary,translatable"`
	Body     string `cms:"type=wysiwyg,label=Body,required"`
	Cover    string `cms:"type=image,label=Cover,required"`
	Layout   string `cms:"type=select,label=Layout,options=default|wide|full"`
	Featured bool   `cms:"type=boolean,label=Featured"`
	Views    int    `cms:"type=integer,label=Views"`
	Price    string `cms:"type=decimal,label=Price"`
	Meta     string `cms:"type=json,label=Meta"`
	GoLive   string `cms:"type=datetime,label=Go live"`
}

func (articleFixture) ContentModelOptions() meta.ContentModel {
	return meta.ContentModel{Label: "Articles", Supports: []string{"translations"}}
}

func newBuilder(locales ...string) *Builder {
	sc := scanner.New(cache.NewMemory(), scanner.Options{Enabled: false})
	return NewBuilder(sc, locales)
}

func fieldDef(t *testing.T, name string) scanner.FieldDefinition {
	t.Helper()
	def, err := scanner.Build(&articleFixture{})
	require.NoError(t, err)
	fd := def.Field(name)
	require.NotNil(t, fd, "field %s", name)
	return *fd
}

func TestBuildFieldEscapesUserValues(t *testing.T) {
	b := newBuilder()

	html, err := b.BuildField("title", `<script>alert(1)</script>`, fieldDef(t, "title"))
	require.NoError(t, err)

	out := string(html)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestBuildFieldTextInput(t *testing.T) {
	b := newBuilder()

	html, err := b.BuildField("title", "Hello", fieldDef(t, "title"))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `type="text"`)
	assert.Contains(t, out, `name="title"`)
	assert.Contains(t, out, `value="Hello"`)
	assert.Contains(t, out, `maxlength="200"`)
	assert.Contains(t, out, " required")
}

func TestBuildFieldNumberStep(t *testing.T) {
	b := newBuilder()

	html, err := b.BuildField("views", 3, fieldDef(t, "views"))
	require.NoError(t, err)
	assert.Contains(t, string(html), `step="1"`)

	html, err = b.BuildField("price", "9.99", fieldDef(t, "price"))
	require.NoError(t, err)
	assert.Contains(t, string(html), `step="0.01"`)
}

func TestBuildFieldCheckbox(t *testing.T) {
	b := newBuilder()

	html, err := b.BuildField("featured", true, fieldDef(t, "featured"))
	require.NoError(t, err)
	out := string(html)
	assert.Contains(t, out, `type="hidden" name="featured" value="0"`)
	assert.Contains(t, out, `type="checkbox"`)
	assert.Contains(t, out, " checked")

	html, err = b.BuildField("featured", "0", fieldDef(t, "featured"))
	require.NoError(t, err)
	assert.NotContains(t, string(html), " checked")
}

func TestBuildFieldSelect(t *testing.T) {
	b := newBuilder()

	html, err := b.BuildField("layout", "wide", fieldDef(t, "layout"))
	require.NoError(t, err)
	out := string(html)

	assert.Contains(t, out, "<select")
	assert.Contains(t, out, `<option value="wide" selected>`)
	assert.Contains(t, out, `<option value="default">`)
	assert.Contains(t, out, `<option value="full">`)
}

func TestBuildFieldFileRequiredSuppressedWhenStored(t *testing.T) {
	b := newBuilder()

	html, err := b.BuildField("cover", "", fieldDef(t, "cover"))
	require.NoError(t, err)
	out := string(html)
	assert.Contains(t, out, `type="file"`)
	assert.Contains(t, out, `accept="image/*"`)
	assert.Contains(t, out, " required")
	assert.NotContains(t, out, "file-preview")

	html, err = b.BuildField("cover", "/uploads/cover.jpg", fieldDef(t, "cover"))
	require.NoError(t, err)
	out = string(html)
	assert.NotContains(t, out, " required", "a stored file never forces a re-upload")
	assert.Contains(t, out, `<img src="/uploads/cover.jpg"`)
}

func TestBuildFieldDateTimeFormatting(t *testing.T) {
	b := newBuilder()

	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	html, err := b.BuildField("go_live", at, fieldDef(t, "go_live"))
	require.NoError(t, err)
	assert.Contains(t, string(html), `value="2026-03-14T09:30"`)

	html, err = b.BuildField("go_live", "2026-03-14 09:30:00", fieldDef(t, "go_live"))
	require.NoError(t, err)
	assert.Contains(t, string(html), `value="2026-03-14T09:30"`)
}

func TestBuildFieldJSONPrettyPrints(t *testing.T) {
	b := newBuilder()

	html, err := b.BuildField("meta", map[string]any{"key": "value"}, fieldDef(t, "meta"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "&#34;key&#34;: &#34;value&#34;")
}

func TestBuildForm(t *testing.T) {
	b := newBuilder()

	html, err := b.BuildForm(context.Background(), &articleFixture{},
		map[string]any{"title": "Stored title"},
		Options{
			OldInput: map[string]any{"body": "<p>resubmitted</p>"},
			Errors:   map[string][]string{"title": {"required"}},
		})
	require.NoError(t, err)
	out := string(html)

	// old input wins over the stored value; stored values fill the rest
	assert.Contains(t, out, `value="Stored title"`)
	assert.Contains(t, out, "&lt;p&gt;resubmitted&lt;/p&gt;")

	assert.Contains(t, out, `<label for="field-title">Title <span class="required">*</span></label>`)
	assert.Contains(t, out, `data-invalid="true"`)
	assert.Contains(t, out, `<p class="field-error">required</p>`)
}

func TestBuildValidationRules(t *testing.T) {
	b := newBuilder()

	rules, err := b.BuildValidationRules(context.Background(), &articleFixture{})
	require.NoError(t, err)

	assert.Equal(t, []string{"required", "string", "max:200"}, rules["title"])
	assert.Equal(t, []string{"nullable", "string", "in:default,wide,full"}, rules["layout"])
}

func TestBuildTranslationTabs(t *testing.T) {
	b := newBuilder("en", "it")

	html, err := b.BuildTranslationTabs(context.Background(), &articleFixture{}, Options{
		Translations: map[string]map[string]any{
			"it": {"title": "Ciao"},
		},
	})
	require.NoError(t, err)
	out := string(html)

	assert.Equal(t, 2, strings.Count(out, `class="tab-pane`))
	assert.Contains(t, out, `data-locale="en"`)
	assert.Contains(t, out, `data-locale="it"`)
	assert.Contains(t, out, `name="translations[en][title]"`)
	assert.Contains(t, out, `name="translations[it][title]"`)
	assert.Contains(t, out, `name="translations[en][summary]"`)
	assert.Contains(t, out, `value="Ciao"`)

	// only the first tab starts active
	assert.Equal(t, 1, strings.Count(out, `class="tab-pane active"`))

	// non-translatable fields stay out of the tabs
	assert.NotContains(t, out, "translations[en][body]")
	assert.NotContains(t, out, "translations[en][layout]")
}

func TestBuildTranslationTabsOldInputWins(t *testing.T) {
	b := newBuilder("en")

	html, err := b.BuildTranslationTabs(context.Background(), &articleFixture{}, Options{
		OldInput:     map[string]any{"translations[en][title]": "Resubmitted"},
		Translations: map[string]map[string]any{"en": {"title": "Stored"}},
	})
	require.NoError(t, err)
	assert.Contains(t, string(html), `value="Resubmitted"`)
	assert.NotContains(t, string(html), `value="Stored"`)
}

func TestBuildTranslationTabsEmptyWithoutTranslatableFields(t *testing.T) {
	b := newBuilder("en", "it")

	html, err := b.BuildTranslationTabs(context.Background(), &plainFixture{}, Options{})
	require.NoError(t, err)
	assert.Empty(t, string(html))
}

type plainFixture struct {
	Count int `cms:"type=integer"`
}

func (plainFixture) ContentModelOptions() meta.ContentModel {
	return meta.ContentModel{Label: "Plain"}
}

func TestLabelFallback(t *testing.T) {
	fd := scanner.FieldDefinition{Name: "cover_image"}
	assert.Equal(t, "Cover Image", labelFor("cover_image", fd))

	fd.Declaration.Label = "Cover"
	assert.Equal(t, "Cover", labelFor("cover_image", fd))
}

func TestFieldID(t *testing.T) {
	assert.Equal(t, "translations-en-title", fieldID("translations[en][title]"))
	assert.Equal(t, "title", fieldID("title"))
}
