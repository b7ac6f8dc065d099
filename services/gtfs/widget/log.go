package widget

import (
	"strings"

	"github.com/gdamore/tcell"
	"github.com/rivo/tview"
)

const maxLogLines = 200

// Log is a widget to display recent log output.
type Log struct {
	*tview.TextView

	app   *tview.Application
	lines []string
}

// NewLog creates a new log widget.
func NewLog(app *tview.Application) *Log {
	l := &Log{
		TextView: tview.NewTextView(),
		app:      app,
	}

	l.SetTextAlign(tview.AlignLeft).
		SetTextColor(tcell.ColorBlue).
		SetBorder(true).
		SetTitle("Log")

	return l
}

// Write appends p to the widget, so a Log can back a zap sink.
func (l *Log) Write(p []byte) (int, error) {
	l.lines = appendLines(l.lines, string(p), maxLogLines)
	contents := strings.Join(l.lines, "\n")

	l.app.QueueUpdateDraw(func() {
		l.Clear()
		l.SetText(contents)
		l.ScrollToEnd()
	})
	return len(p), nil
}

// Sync is a nop.
func (l *Log) Sync() error { return nil }

func appendLines(lines []string, text string, max int) []string {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		lines = append(lines, line)
	}
	if len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	return lines
}
