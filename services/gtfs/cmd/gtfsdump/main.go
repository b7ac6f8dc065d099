package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/davecgh/go-spew/spew"
	"github.com/rmrobinson/gtfsview/services/gtfs"
	"github.com/rmrobinson/gtfsview/services/gtfs/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const usage = "usage: gtfsdump [flags] <path> [table [key]]"

func main() {
	fs := pflag.NewFlagSet("gtfsdump", pflag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, usage)
		fs.PrintDefaults()
	}
	config.RegisterFlags(fs)
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(viper.New(), fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %s\n", err)
		os.Exit(2)
	}

	args := fs.Args()
	path := cfg.Path
	if len(args) > 0 {
		path = args[0]
	}

	logger, err := cfg.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to create logger: %s\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	loader := gtfs.NewLoader(logger, statusPrinter(os.Stderr), cfg.LoaderOptions()...)
	defer loader.Cleanup()

	obj, err := loader.Load(ctx, path)
	if err != nil {
		logger.Error("unable to load gtfs",
			zap.String("path", path),
			zap.Error(err),
		)
		os.Exit(1)
	}

	switch {
	case len(args) < 2:
		printSizes(os.Stdout, obj)
	case len(args) == 2:
		err = dumpTable(os.Stdout, obj, args[1])
	default:
		err = findKey(os.Stdout, obj, args[1], args[2])
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func statusPrinter(w io.Writer) gtfs.Sender {
	return func(channel string, status gtfs.Status) {
		data, err := json.Marshal(status)
		if err != nil {
			return
		}
		fmt.Fprintf(w, "%s %s\n", channel, data)
	}
}

func printSizes(w io.Writer, o *gtfs.Object) {
	for _, name := range gtfs.TableNames {
		if o.Exists(name) {
			fmt.Fprintf(w, "%-16s %d\n", name, o.Len(name))
		}
	}
}

func dumpTable(w io.Writer, o *gtfs.Object, table string) error {
	name, ok := gtfs.ParseTableName(table)
	if !ok {
		return fmt.Errorf("%w: %s", gtfs.ErrUnknownTable, table)
	}

	enc := json.NewEncoder(w)
	return o.DumpAll(name, func(row gtfs.Row) error {
		return enc.Encode(row)
	})
}

func findKey(w io.Writer, o *gtfs.Object, table, key string) error {
	name, ok := gtfs.ParseTableName(table)
	if !ok {
		return fmt.Errorf("%w: %s", gtfs.ErrUnknownTable, table)
	}

	value := o.Find(name, key)
	if value == nil {
		return fmt.Errorf("no %s entry for key %s", name, key)
	}
	spew.Fdump(w, value)
	return nil
}
