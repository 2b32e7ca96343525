package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"treemap/internal/trees"
)

var treeColumns = []table.Column{
	{Title: "#", Width: 7},
	{Title: "Species", Width: 22},
	{Title: "Health", Width: 8},
	{Title: "DBH", Width: 5},
	{Title: "Borough", Width: 14},
}

func newTreeTable() table.Model {
	t := table.New(table.WithColumns(treeColumns), table.WithFocused(true))
	t.SetHeight(12)
	return t
}

// treeRows lists the visible records in sample order.
func treeRows(records []trees.Record) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		dbh := ""
		if r.Diameter > 0 {
			dbh = strconv.FormatFloat(r.Diameter, 'f', -1, 64)
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", r.ID),
			r.Species,
			string(r.Health),
			dbh,
			r.Borough,
		})
	}
	return rows
}

// refreshTable reloads the table from the currently visible subset.
func (m *Model) refreshTable() {
	// clear rows before swapping so the cursor never points past the end
	m.tbl.SetRows(nil)
	m.tbl.SetRows(treeRows(m.filter.Visible(m.sample)))
}

// selectedTreeID returns the record ID under the table cursor.
func (m Model) selectedTreeID() (int, bool) {
	row := m.tbl.SelectedRow()
	if len(row) == 0 {
		return 0, false
	}
	id, err := strconv.Atoi(row[0])
	return id, err == nil
}
