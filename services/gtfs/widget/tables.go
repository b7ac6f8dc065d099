package widget

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
	"github.com/rmrobinson/gtfsview/services/gtfs"
)

// TableInfo summarizes a populated slot of a loaded feed.
type TableInfo struct {
	Name    gtfs.TableName
	Size    int
	Columns []string
}

// Summarize lists the populated slots of o in slot order.
func Summarize(o *gtfs.Object) []TableInfo {
	var infos []TableInfo
	for _, name := range gtfs.TableNames {
		if !o.Exists(name) {
			continue
		}
		columns, _ := o.Header(name)
		infos = append(infos, TableInfo{
			Name:    name,
			Size:    o.Len(name),
			Columns: columns,
		})
	}
	return infos
}

// Tables is a widget listing the tables of a loaded feed with the details of the selected one.
type Tables struct {
	*tview.Flex

	app *tview.Application

	tableList   *tview.List
	tableDetail *tview.TextView

	tables []TableInfo
}

// NewTables creates a new instance of this widget showing the supplied tables.
func NewTables(app *tview.Application, tables []TableInfo) *Tables {
	t := &Tables{
		Flex:        tview.NewFlex(),
		app:         app,
		tableDetail: tview.NewTextView(),
		tables:      tables,
	}

	t.tableList = tview.NewList().
		SetChangedFunc(t.onListEntrySelected)

	t.tableDetail.SetWordWrap(true).
		SetBorder(true).
		SetTitle("Columns")

	t.SetBorder(true).
		SetTitle("Tables").
		SetTitleAlign(tview.AlignLeft)

	t.SetDirection(tview.FlexColumn).
		AddItem(t.tableList, 0, 1, true).
		AddItem(t.tableDetail, 0, 2, false)

	for _, table := range t.tables {
		t.tableList.AddItem(string(table.Name), tableDescription(table), 0, nil)
	}
	if len(t.tables) > 0 {
		t.tableDetail.SetText(tableDetail(t.tables[0]))
	}

	return t
}

func (t *Tables) onListEntrySelected(idx int, mainText string, secondaryText string, shortcut rune) {
	if idx < 0 || idx >= len(t.tables) {
		return
	}
	t.tableDetail.SetText(tableDetail(t.tables[idx]))
}

func tableDescription(table TableInfo) string {
	if table.Size == 1 {
		return "1 key"
	}
	return fmt.Sprintf("%d keys", table.Size)
}

func tableDetail(table TableInfo) string {
	if len(table.Columns) < 1 {
		return "(derived index)"
	}
	return strings.Join(table.Columns, "\n")
}
