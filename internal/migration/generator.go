// Package migration turns scanned model definitions into schema-migration
// files. Generation always works from a fresh scan so the emitted schema
// reflects the declarations as they are on disk, never a cached definition.
package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jinzhu/inflection"
	"github.com/kokiddp/elkcms/internal/analyzer"
	"github.com/kokiddp/elkcms/internal/meta"
	"github.com/kokiddp/elkcms/internal/scanner"
	"go.uber.org/zap"
)

const timestampLayout = "2006_01_02_150405"

// Generator writes migration files for declared content models.
type Generator struct {
	registry *meta.Registry
	log      *zap.Logger
	now      func() time.Time
}

// NewGenerator returns a Generator resolving relation targets through the
// given registry.
func NewGenerator(registry *meta.Registry, logger *zap.Logger) *Generator {
	if registry == nil {
		registry = meta.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{registry: registry, log: logger, now: time.Now}
}

// Generate writes the create-table migration for one content model and
// returns the file path.
func (g *Generator) Generate(model any, outDir string) (string, error) {
	def, err := scanner.Build(model)
	if err != nil {
		return "", fmt.Errorf("scan %T: %w", model, err)
	}

	table := g.buildTable(def)
	name := fmt.Sprintf("create_%s_table", table.Name)
	path, err := g.write(outDir, name, table.Render())
	if err != nil {
		return "", err
	}
	g.log.Info("migration generated",
		zap.String("model", def.ShortName),
		zap.String("table", table.Name),
		zap.String("path", path),
	)
	return path, nil
}

// GeneratePivot writes the pivot-table migration for one belongsToMany
// relationship. It returns ("", nil) when the relationship does not exist or
// does not require a pivot table.
func (g *Generator) GeneratePivot(model any, relationName, outDir string) (string, error) {
	def, err := scanner.Build(model)
	if err != nil {
		return "", fmt.Errorf("scan %T: %w", model, err)
	}

	rel := def.Relationship(relationName)
	if rel == nil || !rel.RequiresPivot {
		return "", nil
	}

	ownTable := def.TableName()
	otherTable := g.tableFor(rel.Declaration.Model)
	table := buildPivotTable(def.ShortName, rel.Declaration, ownTable, otherTable)

	name := fmt.Sprintf("create_%s_table", table.Name)
	path, err := g.write(outDir, name, table.Render())
	if err != nil {
		return "", err
	}
	g.log.Info("pivot migration generated",
		zap.String("model", def.ShortName),
		zap.String("relation", relationName),
		zap.String("path", path),
	)
	return path, nil
}

// buildTable assembles the table spec for one definition: declared columns in
// order, belongsTo foreign keys, then the implied slug/status columns.
func (g *Generator) buildTable(def *scanner.Definition) TableSpec {
	table := TableSpec{Name: def.TableName(), AutoID: true, Timestamps: true}

	for _, f := range def.Fields {
		table.Columns = append(table.Columns, f.Column)
	}

	for _, rel := range def.Relationships {
		if rel.Declaration.Type != meta.BelongsTo {
			continue
		}
		fkName := rel.Declaration.ForeignKey
		if fkName == "" {
			fkName = meta.SnakeCase(rel.Name) + "_id"
		}
		table.Columns = append(table.Columns, analyzer.ColumnSpec{
			Name:     fkName,
			Kind:     analyzer.ColReference,
			Nullable: true,
			Indexed:  true,
		})
		table.ForeignKeys = append(table.ForeignKeys, ForeignKey{
			Column:    fkName,
			RefTable:  g.tableFor(rel.Declaration.Model),
			RefColumn: "id",
		})
	}

	if def.Supports("seo") {
		table.Columns = append(table.Columns, analyzer.ColumnSpec{
			Name:     "slug",
			Kind:     analyzer.ColVarchar,
			Length:   255,
			Unique:   true,
			Nullable: false,
		})
	}
	if def.IsPublic() {
		table.Columns = append(table.Columns, analyzer.ColumnSpec{
			Name:       "status",
			Kind:       analyzer.ColVarchar,
			Length:     255,
			Nullable:   false,
			Indexed:    true,
			Default:    "draft",
			HasDefault: true,
		})
	}
	return table
}

// buildPivotTable assembles the pivot spec: two cascading foreign keys, the
// declared extra columns, and a composite primary key.
func buildPivotTable(ownShort string, rel meta.Relationship, ownTable, otherTable string) TableSpec {
	name := rel.PivotTable
	if name == "" {
		pair := []string{ownTable, otherTable}
		sort.Strings(pair)
		name = pair[0] + "_" + pair[1]
	}

	ownFK := meta.SnakeCase(ownShort) + "_id"
	otherFK := meta.SnakeCase(rel.Model) + "_id"

	table := TableSpec{
		Name:       name,
		PrimaryKey: []string{ownFK, otherFK},
		Columns: []analyzer.ColumnSpec{
			{Name: ownFK, Kind: analyzer.ColReference, Nullable: false},
			{Name: otherFK, Kind: analyzer.ColReference, Nullable: false},
		},
		ForeignKeys: []ForeignKey{
			{Column: ownFK, RefTable: ownTable, RefColumn: "id", OnDelete: "CASCADE"},
			{Column: otherFK, RefTable: otherTable, RefColumn: "id", OnDelete: "CASCADE"},
		},
	}

	for _, pf := range rel.PivotFields {
		table.Columns = append(table.Columns, analyzer.Column(pf.Name, meta.Field{
			Type:    pf.Type,
			NotNull: !pf.Nullable,
		}))
	}
	return table
}

// tableFor resolves a relation target's table through the registry, falling
// back to naming convention when the target is not registered.
func (g *Generator) tableFor(shortName string) string {
	if model, err := g.registry.Lookup(shortName); err == nil {
		if def, err := scanner.Build(model); err == nil {
			return def.TableName()
		}
	}
	return inflection.Plural(meta.SnakeCase(shortName))
}

// write persists the migration atomically: the body goes to a temp file in
// the target directory first, then gets renamed into place.
func (g *Generator) write(outDir, name, body string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create migrations dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.sql", g.now().Format(timestampLayout), name)
	path := filepath.Join(outDir, filename)

	tmp, err := os.CreateTemp(outDir, "."+filename+".tmp")
	if err != nil {
		return "", fmt.Errorf("create temp migration: %w", err)
	}
	if _, err := tmp.WriteString(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write migration: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close migration: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("finalize migration: %w", err)
	}
	return path, nil
}
