package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rivo/tview"
	"github.com/rmrobinson/gtfsview/services/gtfs"
	"github.com/rmrobinson/gtfsview/services/gtfs/config"
	"github.com/rmrobinson/gtfsview/services/gtfs/widget"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	fs := pflag.NewFlagSet("gtfsview", pflag.ExitOnError)
	config.RegisterFlags(fs)
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(viper.New(), fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %s\n", err)
		os.Exit(2)
	}
	path := cfg.Path
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	app := tview.NewApplication()

	logView := widget.NewLog(app)
	logger := zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(logView),
		cfg.Level(),
	))

	statusView := widget.NewLoadingStatus(app)
	pages := tview.NewPages()

	loading := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(statusView, 0, 2, false).
		AddItem(logView, 0, 1, false)
	pages.AddPage("loading", loading, true, true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader := gtfs.NewLoader(logger, func(_ string, status gtfs.Status) {
		statusView.Refresh(status)
	}, cfg.LoaderOptions()...)

	go func() {
		defer loader.Cleanup()

		obj, err := loader.Load(ctx, path)
		if err != nil {
			return
		}

		tables := widget.NewTables(app, widget.Summarize(obj))
		app.QueueUpdateDraw(func() {
			pages.AddPage("tables", tables, true, true)
			app.SetFocus(tables)
		})
	}()

	if err := app.SetRoot(pages, true).Run(); err != nil {
		panic(err)
	}
}
