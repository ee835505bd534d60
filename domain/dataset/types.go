package dataset

import (
	"ecostat/domain/core"
)

// Column is a single named numeric variable
type Column struct {
	Key    core.VariableKey `json:"key"`
	Values []float64        `json:"values"`
}

// Group is a labelled subset of observations for a single variable,
// e.g. fish lengths for one habitat or pH readings for one site
type Group struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Table is a materialized synthetic dataset. Columns share row order;
// grouped tables carry one Group per level instead of a label column.
type Table struct {
	ID        core.DatasetID `json:"id"`
	Name      string         `json:"name"`
	Seed      int64          `json:"seed"`
	Columns   []Column       `json:"columns,omitempty"`
	Groups    []Group        `json:"groups,omitempty"`
	CreatedAt core.Timestamp `json:"created_at"`
}

// ColumnData returns the values for a variable key
func (t *Table) ColumnData(key core.VariableKey) ([]float64, bool) {
	for _, c := range t.Columns {
		if c.Key == key {
			return c.Values, true
		}
	}
	return nil, false
}

// GroupData returns the values for a named group
func (t *Table) GroupData(name string) ([]float64, bool) {
	for _, g := range t.Groups {
		if g.Name == name {
			return g.Values, true
		}
	}
	return nil, false
}

// RowCount returns the number of observations across all groups or the
// shared column length for columnar tables
func (t *Table) RowCount() int {
	if len(t.Groups) > 0 {
		total := 0
		for _, g := range t.Groups {
			total += len(g.Values)
		}
		return total
	}
	if len(t.Columns) > 0 {
		return len(t.Columns[0].Values)
	}
	return 0
}
