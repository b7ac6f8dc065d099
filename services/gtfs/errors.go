package gtfs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInputFile is returned if the input path is missing, does not exist,
	// or points to something that is neither a directory nor a readable zip archive.
	ErrInvalidInputFile = errors.New("invalid input file")
	// ErrUnableToExtract is returned if a single archive member could not be opened for reading.
	ErrUnableToExtract = errors.New("unable to extract file from archive")
	// ErrMissingPrimaryColumn is returned if a table row lacks the table's primary key column.
	ErrMissingPrimaryColumn = errors.New("missing primary column")
	// ErrLoadInProgress is returned if Load is called while a previous load on the same loader is still running.
	ErrLoadInProgress = errors.New("load already in progress")
	// ErrUnknownTable is returned by the query methods for a table name they do not know.
	ErrUnknownTable = errors.New("unknown table")
	// ErrNotDumpable is returned when dumping a table which does not hold rows.
	ErrNotDumpable = errors.New("table can not be dumped as rows")
)

// MissingPrimaryColumnError names the table and the primary column a row was missing.
type MissingPrimaryColumnError struct {
	Table  string
	Column string
}

func (e *MissingPrimaryColumnError) Error() string {
	return fmt.Sprintf("Table %s is missing its primary column: %s", e.Table, e.Column)
}

// Is allows errors.Is(err, ErrMissingPrimaryColumn) to match.
func (e *MissingPrimaryColumnError) Is(target error) bool {
	return target == ErrMissingPrimaryColumn
}
