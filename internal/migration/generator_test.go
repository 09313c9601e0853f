package migration

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/kokiddp/elkcms/internal/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productModel struct {
	Title string `cms:"type=string,label=Title,required,notnull,maxlen=200"`
	Body  string `cms:"type=text,label=Body"`

	Brand string `cmsrel:"type=belongsTo,model=Brand"`
	Tags  string `cmsrel:"type=belongsToMany,model=Label,fields=sort:integer;featured:boolean:nullable"`
}

func (productModel) ContentModelOptions() meta.ContentModel {
	return meta.ContentModel{Label: "Products", Supports: []string{"seo"}}
}

type brandModel struct {
	Name string `cms:"type=string,required"`
}

func (brandModel) ContentModelOptions() meta.ContentModel {
	return meta.ContentModel{Label: "Brands", Hidden: true}
}

type labelModel struct {
	Name string `cms:"type=string,required"`
}

func (labelModel) ContentModelOptions() meta.ContentModel {
	return meta.ContentModel{Label: "Labels", Hidden: true}
}

func fixedGenerator(t *testing.T) *Generator {
	t.Helper()
	r := meta.NewRegistry()
	r.MustRegister(&productModel{})
	r.MustRegister(&brandModel{})
	r.MustRegister(&labelModel{})

	g := NewGenerator(r, nil)
	g.now = func() time.Time {
		return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	}
	return g
}

func TestGenerateCreateTable(t *testing.T) {
	g := fixedGenerator(t)
	dir := t.TempDir()

	path, err := g.Generate(&productModel{}, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2026_03_14_150926_create_products_table.sql"), path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	sql := string(body)

	assert.Contains(t, sql, "-- +migrate Up")
	assert.Contains(t, sql, "-- +migrate Down")
	assert.Contains(t, sql, "CREATE TABLE `products` (")
	assert.Contains(t, sql, "`id` BIGINT UNSIGNED NOT NULL AUTO_INCREMENT")
	assert.Contains(t, sql, "`title` VARCHAR(200) NOT NULL")
	assert.Contains(t, sql, "`body` TEXT NULL")
	assert.Contains(t, sql, "`created_at` TIMESTAMP NULL")
	assert.Contains(t, sql, "`updated_at` TIMESTAMP NULL")
	assert.Contains(t, sql, "PRIMARY KEY (`id`)")
	assert.Contains(t, sql, "DROP TABLE IF EXISTS `products`;")
}

func TestGenerateImpliedColumns(t *testing.T) {
	g := fixedGenerator(t)

	path, err := g.Generate(&productModel{}, t.TempDir())
	require.NoError(t, err)
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	sql := string(body)

	// seo support implies a unique slug; a public model implies an indexed
	// status defaulting to draft
	assert.Contains(t, sql, "`slug` VARCHAR(255) NOT NULL UNIQUE")
	assert.Contains(t, sql, "`status` VARCHAR(255) NOT NULL DEFAULT 'draft'")
	assert.Contains(t, sql, "KEY `idx_products_status` (`status`)")
}

func TestGenerateHiddenModelSkipsImplied(t *testing.T) {
	g := fixedGenerator(t)

	path, err := g.Generate(&brandModel{}, t.TempDir())
	require.NoError(t, err)
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	sql := string(body)

	assert.NotContains(t, sql, "`slug`")
	assert.NotContains(t, sql, "`status`")
}

func TestGenerateBelongsToForeignKey(t *testing.T) {
	g := fixedGenerator(t)

	path, err := g.Generate(&productModel{}, t.TempDir())
	require.NoError(t, err)
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	sql := string(body)

	// the foreign-key column mirrors the BIGINT UNSIGNED primary key it
	// references, otherwise MySQL refuses the constraint
	assert.Contains(t, sql, "`brand_id` BIGINT UNSIGNED NULL")
	assert.Contains(t, sql, "KEY `idx_products_brand_id` (`brand_id`)")
	assert.Contains(t, sql, "CONSTRAINT `fk_products_brand_id` FOREIGN KEY (`brand_id`) REFERENCES `brands` (`id`)")
}

func TestGeneratePivot(t *testing.T) {
	g := fixedGenerator(t)

	path, err := g.GeneratePivot(&productModel{}, "tags", t.TempDir())
	require.NoError(t, err)
	require.NotEmpty(t, path)
	assert.Contains(t, filepath.Base(path), "create_labels_products_table")

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	sql := string(body)

	assert.Contains(t, sql, "CREATE TABLE `labels_products` (")
	assert.Contains(t, sql, "`product_id` BIGINT UNSIGNED NOT NULL")
	assert.Contains(t, sql, "`label_id` BIGINT UNSIGNED NOT NULL")
	assert.Contains(t, sql, "PRIMARY KEY (`product_id`, `label_id`)")
	assert.Contains(t, sql, "REFERENCES `products` (`id`) ON DELETE CASCADE")
	assert.Contains(t, sql, "REFERENCES `labels` (`id`) ON DELETE CASCADE")
	assert.Contains(t, sql, "`sort` INT NOT NULL")
	assert.Contains(t, sql, "`featured` BOOLEAN NULL")
	assert.NotContains(t, sql, "AUTO_INCREMENT", "pivot tables have no surrogate id")
}

func TestGeneratePivotMisses(t *testing.T) {
	g := fixedGenerator(t)
	dir := t.TempDir()

	path, err := g.GeneratePivot(&productModel{}, "nope", dir)
	require.NoError(t, err)
	assert.Empty(t, path, "unknown relation writes nothing")

	path, err = g.GeneratePivot(&productModel{}, "brand", dir)
	require.NoError(t, err)
	assert.Empty(t, path, "belongsTo needs no pivot table")
}

func TestFilenameTimestampFormat(t *testing.T) {
	g := fixedGenerator(t)

	path, err := g.Generate(&brandModel{}, t.TempDir())
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}_\d{2}_\d{2}_\d{6}_create_brands_table\.sql$`), filepath.Base(path))
}

func TestGenerateLeavesNoTempFiles(t *testing.T) {
	g := fixedGenerator(t)
	dir := t.TempDir()

	_, err := g.Generate(&productModel{}, dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
