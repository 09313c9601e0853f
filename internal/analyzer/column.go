package analyzer

import (
	"fmt"
	"strings"

	"github.com/kokiddp/elkcms/internal/meta"
)

// ColumnKind is the storage type family of one generated column.
type ColumnKind string

const (
	ColVarchar   ColumnKind = "varchar"
	ColText      ColumnKind = "text"
	ColInteger   ColumnKind = "integer"
	ColReference ColumnKind = "reference"
	ColBoolean   ColumnKind = "boolean"
	ColDate      ColumnKind = "date"
	ColDateTime  ColumnKind = "datetime"
	ColTimestamp ColumnKind = "timestamp"
	ColDecimal   ColumnKind = "decimal"
	ColDouble    ColumnKind = "double"
	ColJSON      ColumnKind = "json"
)

// ColumnSpec is the structured form of one generated column definition.
// The migration generator renders it; keeping it structured keeps the
// conditional modifiers composable and testable on their own.
type ColumnSpec struct {
	Name       string     `json:"name"`
	Kind       ColumnKind `json:"kind"`
	Length     int        `json:"length,omitempty"`
	Precision  int        `json:"precision,omitempty"`
	Scale      int        `json:"scale,omitempty"`
	Nullable   bool       `json:"nullable"`
	Unique     bool       `json:"unique"`
	Indexed    bool       `json:"indexed"`
	Default    string     `json:"default,omitempty"`
	HasDefault bool       `json:"has_default"`
}

// Column derives the storage column for one named field declaration.
func Column(name string, f meta.Field) ColumnSpec {
	spec := ColumnSpec{
		Name:       name,
		Nullable:   f.IsNullable(),
		Unique:     f.Unique,
		Indexed:    f.Indexed,
		Default:    f.Default,
		HasDefault: f.HasDefault,
	}

	switch f.Type {
	case meta.FieldString, meta.FieldEmail, meta.FieldURL, meta.FieldSelect, meta.FieldRadio,
		meta.FieldImage, meta.FieldFile:
		spec.Kind = ColVarchar
		spec.Length = 255
		if f.Type == meta.FieldString && f.MaxLength > 0 {
			spec.Length = f.MaxLength
		}
	case meta.FieldText, meta.FieldWYSIWYG, meta.FieldPageBuilder:
		spec.Kind = ColText
	case meta.FieldInteger:
		spec.Kind = ColInteger
	case meta.FieldBoolean:
		spec.Kind = ColBoolean
	case meta.FieldDate:
		spec.Kind = ColDate
	case meta.FieldDateTime:
		spec.Kind = ColDateTime
	case meta.FieldTimestamp:
		spec.Kind = ColTimestamp
	case meta.FieldDecimal:
		spec.Kind = ColDecimal
		spec.Precision, spec.Scale = 10, 2
	case meta.FieldNumber, meta.FieldFloat:
		spec.Kind = ColDouble
	case meta.FieldJSON:
		spec.Kind = ColJSON
	default:
		spec.Kind = ColVarchar
		spec.Length = 255
	}
	return spec
}

// SQLType renders the MySQL type expression for the column.
func (c ColumnSpec) SQLType() string {
	switch c.Kind {
	case ColVarchar:
		length := c.Length
		if length <= 0 {
			length = 255
		}
		return fmt.Sprintf("VARCHAR(%d)", length)
	case ColText:
		return "TEXT"
	case ColInteger:
		return "INT"
	case ColReference:
		// Must match the BIGINT UNSIGNED auto-increment primary keys it
		// points at; MySQL rejects foreign keys over mismatched types.
		return "BIGINT UNSIGNED"
	case ColBoolean:
		return "BOOLEAN"
	case ColDate:
		return "DATE"
	case ColDateTime:
		return "DATETIME"
	case ColTimestamp:
		return "TIMESTAMP"
	case ColDecimal:
		p, s := c.Precision, c.Scale
		if p <= 0 {
			p, s = 10, 2
		}
		return fmt.Sprintf("DECIMAL(%d,%d)", p, s)
	case ColDouble:
		return "DOUBLE"
	case ColJSON:
		return "JSON"
	default:
		return "VARCHAR(255)"
	}
}

// Render emits the column-definition line. Modifiers appear in a fixed
// order: type, nullability, unique, default. Plain indexes are table-level
// in MySQL and are rendered by the migration generator instead.
func (c ColumnSpec) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "`%s` %s", c.Name, c.SQLType())
	if c.Nullable {
		b.WriteString(" NULL")
	} else {
		b.WriteString(" NOT NULL")
	}
	if c.Unique {
		b.WriteString(" UNIQUE")
	}
	if c.HasDefault {
		b.WriteString(" DEFAULT ")
		b.WriteString(c.renderDefault())
	}
	return b.String()
}

// quoted kinds take string literals; the rest render the raw declared value.
func (c ColumnSpec) renderDefault() string {
	switch c.Kind {
	case ColInteger, ColReference, ColBoolean, ColDecimal, ColDouble:
		return c.Default
	default:
		return "'" + strings.ReplaceAll(c.Default, "'", "''") + "'"
	}
}
