package widget

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell"
	"github.com/rivo/tview"
	"github.com/rmrobinson/gtfsview/services/gtfs"
)

type tableRecord struct {
	*tview.Flex

	nameText  *tview.TextView
	phaseText *tview.TextView
}

func newTableRecord() *tableRecord {
	tr := &tableRecord{
		Flex:      tview.NewFlex(),
		nameText:  tview.NewTextView(),
		phaseText: tview.NewTextView(),
	}

	tr.nameText.SetTextAlign(tview.AlignLeft)
	tr.phaseText.SetTextAlign(tview.AlignRight)

	tr.SetDirection(tview.FlexColumn).
		AddItem(tr.nameText, 0, 1, false).
		AddItem(tr.phaseText, 9, 1, false)

	return tr
}

// LoadingStatus is a widget that displays the progress of a feed load, one row per table.
type LoadingStatus struct {
	*tview.Flex

	app *tview.Application

	summaryText *tview.TextView
	records     []*tableRecord
}

// NewLoadingStatus creates a new loading status widget with a row for every known file.
// It will not show any data until Refresh() is called.
func NewLoadingStatus(app *tview.Application) *LoadingStatus {
	ls := &LoadingStatus{
		Flex:        tview.NewFlex(),
		app:         app,
		summaryText: tview.NewTextView(),
	}

	ls.SetBorder(true).
		SetTitle("Loading").
		SetTitleAlign(tview.AlignLeft)

	ls.SetDirection(tview.FlexRow).
		AddItem(ls.summaryText, 2, 1, false)
	for range gtfs.KnownFiles() {
		record := newTableRecord()
		ls.records = append(ls.records, record)
		ls.AddItem(record, 1, 1, false)
	}

	return ls
}

// Refresh causes the displayed status to be updated.
func (ls *LoadingStatus) Refresh(status gtfs.Status) {
	ls.app.QueueUpdateDraw(func() {
		ls.summaryText.SetText(statusSummary(status))

		names := tableNames(status)
		for i, record := range ls.records {
			if i >= len(names) {
				record.nameText.Clear()
				record.phaseText.Clear()
				continue
			}

			phase := status.Tables[names[i]]
			record.nameText.SetText(names[i])
			record.phaseText.SetTextColor(phaseColor(phase))
			record.phaseText.SetText(string(phase))
		}
	})
}

func statusSummary(status gtfs.Status) string {
	fileName := "(no file)"
	if status.FileName != nil {
		fileName = *status.FileName
	}

	switch status.Status {
	case gtfs.StatusNoFile:
		return "No GTFS file was provided."
	case gtfs.StatusError:
		if status.Error != nil {
			return fmt.Sprintf("Loading %s failed: %s", fileName, status.Error)
		}
		return fmt.Sprintf("Loading %s failed", fileName)
	case gtfs.StatusDone:
		return fmt.Sprintf("Loaded %s", fileName)
	}

	done := 0
	for _, phase := range status.Tables {
		if phase == gtfs.TablePhaseDone {
			done++
		}
	}
	return fmt.Sprintf("Loading %s (%d/%d tables done)", fileName, done, len(status.Tables))
}

func tableNames(status gtfs.Status) []string {
	names := make([]string, 0, len(status.Tables))
	for name := range status.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func phaseColor(phase gtfs.TablePhase) tcell.Color {
	switch phase {
	case gtfs.TablePhaseDone:
		return tcell.ColorGreen
	case gtfs.TablePhaseError:
		return tcell.ColorRed
	}
	return tcell.ColorYellow
}
