package cmd

import (
	"fmt"
	"strings"

	vaultv1alpha1 "contentpackage.run/apis/vault/v1alpha1"
	"contentpackage.run/internal/model"
)

// Table is command output with a header row and formatted cells.
type Table interface {
	Headers() []string
	Rows() [][]string
}

// NewTextTable returns an empty table with the given column headers.
func NewTextTable(headers ...string) *TextTable {
	return &TextTable{headers: headers}
}

// TextTable is a Table filled row by row.
type TextTable struct {
	headers []string
	rows    [][]string
}

func (t *TextTable) Headers() []string { return t.headers }

func (t *TextTable) Rows() [][]string { return t.rows }

// AddRow appends one row. Cells are formatted with fmt.Sprint, rows shorter
// than the header row are padded with blank cells.
func (t *TextTable) AddRow(cells ...any) {
	row := make([]string, 0, max(len(cells), len(t.headers)))
	for _, c := range cells {
		row = append(row, fmt.Sprint(c))
	}
	for len(row) < len(t.headers) {
		row = append(row, "")
	}
	t.rows = append(t.rows, row)
}

// NodeResultsTable lists the files processed for a node and what was applied to them.
func NodeResultsTable(results []NodeFileResult) *TextTable {
	table := NewTextTable("Input", "Output", "Role", "Processors")
	for _, r := range results {
		table.AddRow(r.Input, r.Output, r.Role, strings.Join(r.Applied, ","))
	}
	return table
}

// ModelPackagesTable lists the files a node model flags for packaging.
func ModelPackagesTable(files []model.ContentPackageFile) *TextTable {
	table := NewTextTable("Path", "Role", "Package")
	for _, f := range files {
		name, _ := f.Options[vaultv1alpha1.OptionPackageName].(string)
		if name == "" {
			name = "-"
		}
		table.AddRow(f.Path, f.Role, name)
	}
	return table
}
