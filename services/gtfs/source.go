package gtfs

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Entry is a recognized GTFS file found in a directory or archive.
type Entry struct {
	Name string

	open func() (io.ReadCloser, error)
}

// Open returns a stream of the entry's contents. The caller must close it.
func (e *Entry) Open() (io.ReadCloser, error) {
	return e.open()
}

// Source enumerates the recognized GTFS files of an input path.
type Source interface {
	// Entries yields every recognized file once. The entry channel is closed when
	// enumeration ends; the error channel then carries at most one error.
	Entries(ctx context.Context) (<-chan *Entry, <-chan error)
	// Close releases the resources held by the source.
	Close() error
}

// OpenSource inspects path and returns a directory or zip archive source for it.
func OpenSource(logger *zap.Logger, path string) (Source, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no input path provided", ErrInvalidInputFile)
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInputFile, err)
	} else if err != nil {
		return nil, err
	}

	if info.IsDir() {
		logger.Debug("loading gtfs from directory",
			zap.String("path", path),
		)
		return &dirSource{logger: logger, path: path}, nil
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		logger.Debug("error opening zip archive",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: provided file %s doesn't point to a directory or a valid zip archive", ErrInvalidInputFile, path)
	}

	logger.Debug("loading gtfs from zip archive",
		zap.String("path", path),
		zap.Int("entry_count", len(zr.File)),
	)
	return &zipSource{logger: logger, path: path, reader: zr}, nil
}

type dirSource struct {
	logger *zap.Logger
	path   string
}

func (s *dirSource) Entries(ctx context.Context) (<-chan *Entry, <-chan error) {
	out := make(chan *Entry)
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		defer close(out)

		dirEntries, err := os.ReadDir(s.path)
		if err != nil {
			errCh <- err
			return
		}

		for _, dirEntry := range dirEntries {
			if dirEntry.IsDir() {
				continue
			}
			name := dirEntry.Name()
			if !IsKnownFile(name) {
				s.logger.Debug("skipping unrecognized file",
					zap.String("file_name", name),
				)
				continue
			}

			fullPath := filepath.Join(s.path, name)
			entry := &Entry{
				Name: name,
				open: func() (io.ReadCloser, error) {
					return os.Open(fullPath)
				},
			}

			select {
			case out <- entry:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, errCh
}

func (s *dirSource) Close() error {
	return nil
}

type zipSource struct {
	logger *zap.Logger
	path   string
	reader *zip.ReadCloser
}

func (s *zipSource) Entries(ctx context.Context) (<-chan *Entry, <-chan error) {
	out := make(chan *Entry)
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		defer close(out)

		for _, zipFile := range s.reader.File {
			if !IsKnownFile(zipFile.Name) {
				s.logger.Debug("skipping unrecognized archive entry",
					zap.String("file_name", zipFile.Name),
				)
				continue
			}

			zf := zipFile
			entry := &Entry{
				Name: zf.Name,
				open: func() (io.ReadCloser, error) {
					rc, err := zf.Open()
					if err != nil {
						return nil, fmt.Errorf("%w: unable to read file %s from within %s: %v", ErrUnableToExtract, zf.Name, s.path, err)
					}
					return rc, nil
				},
			}

			select {
			case out <- entry:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, errCh
}

func (s *zipSource) Close() error {
	return s.reader.Close()
}
