// Package query builds parameterized PostgreSQL SELECT statements from a
// projection of view field names onto table columns.
package query

import "strings"

// ProjectionMap maps view field names onto the columns of a single aliased table.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns []string
	fields  map[string]string
}

// NewProjectionMap creates an empty projection for schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project adds column under the view name. The column may be any
// expression valid after the table alias, such as a JSONB accessor.
func (p *ProjectionMap) Project(column, view string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.columns = append(p.columns, qualified)
	p.fields[view] = qualified
	return p
}

// Field maps view onto column for filtering and ordering without adding it
// to the select list.
func (p *ProjectionMap) Field(column, view string) *ProjectionMap {
	p.fields[view] = p.alias + "." + column
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the qualified, aliased table reference.
func (p *ProjectionMap) Table() string {
	return p.schema + "." + p.table + " " + p.alias
}

// Column resolves a view name to its qualified column. Unknown names are returned unchanged.
func (p *ProjectionMap) Column(view string) string {
	if col, ok := p.fields[view]; ok {
		return col
	}
	return view
}

// Has reports whether the view name is projected.
func (p *ProjectionMap) Has(view string) bool {
	_, ok := p.fields[view]
	return ok
}

// Columns returns the projected columns as a comma-separated select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}

// ColumnList returns the projected columns in projection order.
func (p *ProjectionMap) ColumnList() []string {
	out := make([]string, len(p.columns))
	copy(out, p.columns)
	return out
}
