package gtfs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rmrobinson/gtfsview/lib/stream"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Sender receives every status update of a loader, on StatusChannel.
// Calls are serialized; a Sender must not call back into the Loader.
type Sender func(channel string, status Status)

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithParseOptions applies the parse options to every table the loader reads.
func WithParseOptions(opts ...Option) LoaderOption {
	return func(l *Loader) {
		l.parseOpts = append(l.parseOpts, opts...)
	}
}

// WithMaxConcurrentTables bounds how many tables are parsed at once; 0 means no bound.
func WithMaxConcurrentTables(n int) LoaderOption {
	return func(l *Loader) {
		l.maxConcurrent = n
	}
}

// WithStatusBuffer sets how many undelivered status updates each watcher buffers.
func WithStatusBuffer(n int) LoaderOption {
	return func(l *Loader) {
		l.statusBuffer = n
	}
}

// Loader drives the loading of a GTFS feed and reports its progress.
// One load runs at a time per loader.
type Loader struct {
	logger        *zap.Logger
	sender        Sender
	source        *stream.Source
	parseOpts     []Option
	maxConcurrent int
	statusBuffer  int

	// mu guards the fields below and serializes status emission.
	mu       sync.Mutex
	obj      *Object
	status   Status
	inFlight bool
}

// NewLoader creates a loader reporting to sender, which may be nil if only watchers are used.
func NewLoader(logger *zap.Logger, sender Sender, opts ...LoaderOption) *Loader {
	l := &Loader{
		logger: logger,
		sender: sender,
		obj:    &Object{},
		status: Status{Status: StatusLoading},
	}
	for _, opt := range opts {
		opt(l)
	}
	l.source = stream.NewSource(logger, l.statusBuffer)
	return l
}

// Load reads the directory or zip archive at path and returns its tables.
// The initial loading status, every table transition and the terminal status are all emitted;
// the terminal status is always the last one of the attempt. If ctx is cancelled the load
// stops without emitting anything further and ctx.Err() is returned.
func (l *Loader) Load(ctx context.Context, path string) (*Object, error) {
	l.mu.Lock()
	if l.inFlight {
		l.mu.Unlock()
		return nil, ErrLoadInProgress
	}
	l.inFlight = true
	l.source.Reset()

	var fileName *string
	if path != "" {
		fileName = &path
	}
	l.obj = &Object{}
	l.status = Status{
		Status:   StatusLoading,
		FileName: fileName,
		Tables:   map[string]TablePhase{},
	}
	l.emitLocked(ctx)
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.source.CloseSinks()
		l.inFlight = false
	}()

	l.logger.Info("loading gtfs",
		zap.String("path", path),
	)
	start := time.Now()

	err := l.loadPath(ctx, path)
	if ctxErr := ctx.Err(); ctxErr != nil {
		l.logger.Info("gtfs load cancelled",
			zap.String("path", path),
		)
		return nil, ctxErr
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.status.Tables = nil
	if err != nil {
		if path == "" {
			l.status.Status = StatusNoFile
		} else {
			l.status.Status = StatusError
			l.status.Error = err
		}
		l.emitLocked(ctx)

		l.logger.Warn("error loading gtfs",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	l.status.Status = StatusDone
	l.emitLocked(ctx)

	l.logger.Info("loaded gtfs",
		zap.String("path", path),
		zap.Duration("duration", time.Since(start)),
	)
	return l.obj, nil
}

func (l *Loader) loadPath(ctx context.Context, path string) error {
	src, err := OpenSource(l.logger, path)
	if err != nil {
		return err
	}
	defer src.Close()

	g, gctx := errgroup.WithContext(ctx)
	if l.maxConcurrent > 0 {
		g.SetLimit(l.maxConcurrent)
	}

	entries, errCh := src.Entries(gctx)
	for entry := range entries {
		entry := entry
		g.Go(func() error {
			return l.loadTable(ctx, gctx, entry)
		})
	}

	if err := <-errCh; err != nil {
		g.Wait()
		return err
	}
	return g.Wait()
}

// loadTable parses a single entry and stores it. Status is suppressed once ctx is done,
// while gctx additionally stops the work when a sibling table fails.
func (l *Loader) loadTable(ctx, gctx context.Context, entry *Entry) error {
	handler := fileHandlers[entry.Name]

	rc, err := entry.Open()
	if err != nil {
		l.setTablePhase(ctx, entry.Name, TablePhaseError)
		return err
	}
	defer rc.Close()

	l.setTablePhase(ctx, entry.Name, TablePhaseLoading)
	l.logger.Debug("loading table",
		zap.String("file_name", entry.Name),
	)
	start := time.Now()

	commit, err := handler.load(gctx, rc, entry.Name, handler.primaryKey, l.parseOpts)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			l.setTablePhase(ctx, entry.Name, TablePhaseError)
		}
		l.logger.Debug("error loading table",
			zap.String("file_name", entry.Name),
			zap.Error(err),
		)
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	commit(l.obj)
	l.status.Tables[entry.Name] = TablePhaseDone
	l.emitLocked(ctx)
	if handler.derive != nil {
		handler.derive(l.obj)
	}

	l.logger.Debug("loaded table",
		zap.String("file_name", entry.Name),
		zap.Int("key_count", l.obj.Len(handler.table)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

func (l *Loader) setTablePhase(ctx context.Context, fileName string, phase TablePhase) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.status.Tables[fileName] = phase
	l.emitLocked(ctx)
}

// emitLocked sends a snapshot of the status to the sender and the watchers. l.mu must be held.
func (l *Loader) emitLocked(ctx context.Context) {
	if ctx != nil && ctx.Err() != nil {
		return
	}

	snapshot := l.status.Clone()
	if l.sender != nil {
		l.sender(StatusChannel, snapshot)
	}

	msg, err := snapshot.Proto()
	if err != nil {
		l.logger.Debug("error converting status",
			zap.Error(err),
		)
		return
	}
	l.source.SendMessage(msg)
}

// RequestStatus re-emits the current status.
func (l *Loader) RequestStatus() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.emitLocked(nil)
}

// Status returns a snapshot of the current status.
func (l *Loader) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status.Clone()
}

// Watch registers a watcher receiving every status as a *structpb.Struct.
// The watcher's channel is closed once the running (or next) load concludes. A watcher
// registered between loads first receives the previous terminal status.
func (l *Loader) Watch() *stream.Sink {
	return l.source.NewSink()
}

// Cleanup closes every registered watcher. Load does the same when an attempt concludes,
// successfully or not; calling it again is harmless.
func (l *Loader) Cleanup() {
	l.source.CloseSinks()
}
