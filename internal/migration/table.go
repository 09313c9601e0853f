package migration

import (
	"fmt"
	"strings"

	"github.com/kokiddp/elkcms/internal/analyzer"
)

// ForeignKey is one generated foreign-key constraint.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
	OnDelete  string // empty for no action
}

// TableSpec is the structured form of one generated table. Rendering is kept
// separate from assembly so the conditional pieces stay testable on their own.
type TableSpec struct {
	Name string
	// AutoID adds the auto-increment `id` primary key.
	AutoID bool
	// Timestamps adds the created_at/updated_at pair.
	Timestamps  bool
	Columns     []analyzer.ColumnSpec
	PrimaryKey  []string // composite key; ignored when AutoID is set
	ForeignKeys []ForeignKey
}

// RenderUp emits the CREATE TABLE statement.
func (t TableSpec) RenderUp() string {
	var lines []string

	if t.AutoID {
		lines = append(lines, "`id` BIGINT UNSIGNED NOT NULL AUTO_INCREMENT")
	}
	for _, col := range t.Columns {
		lines = append(lines, col.Render())
	}
	if t.Timestamps {
		lines = append(lines, "`created_at` TIMESTAMP NULL", "`updated_at` TIMESTAMP NULL")
	}

	if t.AutoID {
		lines = append(lines, "PRIMARY KEY (`id`)")
	} else if len(t.PrimaryKey) > 0 {
		lines = append(lines, fmt.Sprintf("PRIMARY KEY (%s)", backtickList(t.PrimaryKey)))
	}

	for _, col := range t.Columns {
		if col.Indexed {
			lines = append(lines, fmt.Sprintf("KEY `idx_%s_%s` (`%s`)", t.Name, col.Name, col.Name))
		}
	}

	for _, fk := range t.ForeignKeys {
		line := fmt.Sprintf("CONSTRAINT `fk_%s_%s` FOREIGN KEY (`%s`) REFERENCES `%s` (`%s`)",
			t.Name, fk.Column, fk.Column, fk.RefTable, fk.RefColumn)
		if fk.OnDelete != "" {
			line += " ON DELETE " + fk.OnDelete
		}
		lines = append(lines, line)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE `%s` (\n", t.Name)
	for i, line := range lines {
		b.WriteString("  " + line)
		if i < len(lines)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(");")
	return b.String()
}

// RenderDown emits the structural inverse of RenderUp.
func (t TableSpec) RenderDown() string {
	return fmt.Sprintf("DROP TABLE IF EXISTS `%s`;", t.Name)
}

// Render emits the full migration body with up and down sections.
func (t TableSpec) Render() string {
	return "-- +migrate Up\n" + t.RenderUp() + "\n\n-- +migrate Down\n" + t.RenderDown() + "\n"
}

func backtickList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	return strings.Join(quoted, ", ")
}
