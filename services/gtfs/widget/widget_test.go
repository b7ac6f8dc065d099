package widget

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell"
	"github.com/rmrobinson/gtfsview/services/gtfs"
	"github.com/stretchr/testify/assert"
)

type statusSummaryTest struct {
	name   string
	status gtfs.Status
	result string
}

var feedName = "feed.zip"

var statusSummaryTests = []statusSummaryTest{
	{
		"loading",
		gtfs.Status{
			Status:   gtfs.StatusLoading,
			FileName: &feedName,
			Tables: map[string]gtfs.TablePhase{
				"agency.txt": gtfs.TablePhaseDone,
				"stops.txt":  gtfs.TablePhaseLoading,
			},
		},
		"Loading feed.zip (1/2 tables done)",
	},
	{
		"done",
		gtfs.Status{Status: gtfs.StatusDone, FileName: &feedName},
		"Loaded feed.zip",
	},
	{
		"error",
		gtfs.Status{Status: gtfs.StatusError, FileName: &feedName, Error: errors.New("boom")},
		"Loading feed.zip failed: boom",
	},
	{
		"no file",
		gtfs.Status{Status: gtfs.StatusNoFile},
		"No GTFS file was provided.",
	},
}

func TestStatusSummary(t *testing.T) {
	for _, tt := range statusSummaryTests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.result, statusSummary(tt.status))
		})
	}
}

func TestTableNames(t *testing.T) {
	status := gtfs.Status{Tables: map[string]gtfs.TablePhase{
		"stops.txt":  gtfs.TablePhaseLoading,
		"agency.txt": gtfs.TablePhaseDone,
	}}
	assert.Equal(t, []string{"agency.txt", "stops.txt"}, tableNames(status))
}

func TestPhaseColor(t *testing.T) {
	assert.Equal(t, tcell.ColorGreen, phaseColor(gtfs.TablePhaseDone))
	assert.Equal(t, tcell.ColorRed, phaseColor(gtfs.TablePhaseError))
	assert.Equal(t, tcell.ColorYellow, phaseColor(gtfs.TablePhaseLoading))
}

func TestSummarize(t *testing.T) {
	o := &gtfs.Object{
		Shapes:       gtfs.ShapeTable{"a": nil, "b": nil},
		StopChildren: gtfs.StopChildren{"sta": {"p"}},
	}

	assert.Equal(t, []TableInfo{
		{Name: gtfs.TableShapes, Size: 2},
		{Name: gtfs.TableStopChildren, Size: 1},
	}, Summarize(o))
	assert.Empty(t, Summarize(&gtfs.Object{}))
}

func TestTableText(t *testing.T) {
	assert.Equal(t, "1 key", tableDescription(TableInfo{Size: 1}))
	assert.Equal(t, "3 keys", tableDescription(TableInfo{Size: 3}))
	assert.Equal(t, "stop_id\nstop_name", tableDetail(TableInfo{Columns: []string{"stop_id", "stop_name"}}))
	assert.Equal(t, "(derived index)", tableDetail(TableInfo{}))
}

func TestAppendLines(t *testing.T) {
	lines := appendLines(nil, "one\ntwo\n", 3)
	assert.Equal(t, []string{"one", "two"}, lines)

	lines = appendLines(lines, "three\nfour\n", 3)
	assert.Equal(t, []string{"two", "three", "four"}, lines)
}
