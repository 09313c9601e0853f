package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readerFixture struct {
	Title     string `cms:"type=string,label=Title,required,translatable,maxlen=200"`
	Body      string `cms:"type=wysiwyg,label=Body,required"`
	Layout    string `cms:"type=select,label=Layout,options=default|wide|full,default=default"`
	Internal  string
	Broken    string `cms:"type=hologram"`
	SortOrder int    `cms:"type=integer,index,notnull"`

	Author string `cmsrel:"type=belongsTo,model=Author,fk=author_id,eager"`
	Tags   string `cmsrel:"type=belongsToMany,model=Tag,pivot=fixture_tag,fields=sort:integer;note:string:nullable"`
}

func (readerFixture) ContentModelOptions() ContentModel {
	return ContentModel{Label: "Fixtures"}
}

func TestParseFieldTag(t *testing.T) {
	f, err := ParseFieldTag("type=string,label=Title,required,translatable,unique,maxlen=120,minlen=3,help=Shown in lists,placeholder=My title")
	require.NoError(t, err)

	assert.Equal(t, FieldString, f.Type)
	assert.Equal(t, "Title", f.Label)
	assert.True(t, f.Required)
	assert.True(t, f.Translatable)
	assert.True(t, f.Unique)
	assert.Equal(t, 120, f.MaxLength)
	assert.Equal(t, 3, f.MinLength)
	assert.Equal(t, "Shown in lists", f.HelpText)
	assert.Equal(t, "My title", f.Placeholder)
}

func TestParseFieldTagLists(t *testing.T) {
	f, err := ParseFieldTag("type=select,options=draft|review|published,validate=required|string|in:draft,default=draft")
	require.NoError(t, err)

	assert.Equal(t, []string{"draft", "review", "published"}, f.Options)
	assert.Equal(t, []string{"required", "string", "in:draft"}, f.Validation)
	assert.True(t, f.HasDefault)
	assert.Equal(t, "draft", f.Default)
}

func TestParseFieldTagEmptyDefault(t *testing.T) {
	f, err := ParseFieldTag("type=string,default=")
	require.NoError(t, err)
	assert.True(t, f.HasDefault, "an empty default is still a default")
	assert.Equal(t, "", f.Default)
}

func TestParseFieldTagErrors(t *testing.T) {
	_, err := ParseFieldTag("label=No type")
	assert.Error(t, err)

	_, err = ParseFieldTag("type=hologram")
	assert.Error(t, err)

	_, err = ParseFieldTag("type=string,maxlen=lots")
	assert.Error(t, err)

	_, err = ParseFieldTag("type=string,sparkly")
	assert.Error(t, err)
}

func TestParseRelationTag(t *testing.T) {
	r, err := ParseRelationTag("type=belongsToMany,model=Tag,pivot=post_tag,label=Tags,eager,fields=sort:integer;featured:boolean:nullable")
	require.NoError(t, err)

	assert.Equal(t, BelongsToMany, r.Type)
	assert.Equal(t, "Tag", r.Model)
	assert.Equal(t, "post_tag", r.PivotTable)
	assert.Equal(t, "Tags", r.Label)
	assert.True(t, r.Eager)
	require.Len(t, r.PivotFields, 2)
	assert.Equal(t, PivotField{Name: "sort", Type: FieldInteger}, r.PivotFields[0])
	assert.Equal(t, PivotField{Name: "featured", Type: FieldBoolean, Nullable: true}, r.PivotFields[1])
}

func TestParseRelationTagErrors(t *testing.T) {
	_, err := ParseRelationTag("model=Tag")
	assert.Error(t, err, "missing relation type")

	_, err = ParseRelationTag("type=hasMany")
	assert.Error(t, err, "missing model")

	_, err = ParseRelationTag("type=owns,model=Tag")
	assert.Error(t, err)

	_, err = ParseRelationTag("type=belongsToMany,model=Tag,fields=sort")
	assert.Error(t, err, "pivot field without a type")
}

func TestFieldDeclarationsOrderAndSkips(t *testing.T) {
	decls := FieldDeclarations(&readerFixture{})

	names := make([]string, 0, len(decls))
	for _, d := range decls {
		names = append(names, d.Name)
	}
	// Internal has no tag and Broken fails to parse; both are skipped while
	// the rest keep declaration order.
	assert.Equal(t, []string{"title", "body", "layout", "sort_order"}, names)

	assert.Equal(t, "Title", decls[0].Field.Label)
	assert.Equal(t, "SortOrder", decls[3].Property)
	assert.True(t, decls[3].Field.NotNull)
	assert.True(t, decls[3].Field.Indexed)
}

func TestRelationDeclarations(t *testing.T) {
	decls := RelationDeclarations(readerFixture{})
	require.Len(t, decls, 2)

	assert.Equal(t, "author", decls[0].Name)
	assert.Equal(t, BelongsTo, decls[0].Relation.Type)
	assert.Equal(t, "author_id", decls[0].Relation.ForeignKey)
	assert.True(t, decls[0].Relation.Eager)

	assert.Equal(t, "tags", decls[1].Name)
	assert.Equal(t, "fixture_tag", decls[1].Relation.PivotTable)
}

func TestHasTags(t *testing.T) {
	assert.True(t, HasFieldTag(&readerFixture{}, "Title"))
	assert.False(t, HasFieldTag(&readerFixture{}, "Internal"))
	assert.True(t, HasRelationTag(&readerFixture{}, "Author"))
	assert.False(t, HasRelationTag(&readerFixture{}, "Title"))
}

func TestModelOptions(t *testing.T) {
	opts, ok := ModelOptions(&readerFixture{})
	require.True(t, ok)
	assert.Equal(t, "Fixtures", opts.Label)

	_, ok = SEOOptions(&readerFixture{})
	assert.False(t, ok)
}

func TestToMap(t *testing.T) {
	m := ToMap(ContentModel{Label: "Posts", Hidden: true})
	assert.Equal(t, "Posts", m["label"])
	assert.Equal(t, true, m["hidden"])
	assert.Contains(t, m, "route_prefix")

	assert.Nil(t, ToMap(nil))
	assert.Nil(t, ToMap(42))
}

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"Title":      "title",
		"CoverImage": "cover_image",
		"SEOTitle":   "seo_title",
		"ImageURL":   "image_url",
		"ID":         "id",
		"HTMLBody":   "html_body",
	}
	for in, want := range cases {
		assert.Equal(t, want, SnakeCase(in), "SnakeCase(%q)", in)
	}
}
