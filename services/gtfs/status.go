package gtfs

import (
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// StatusChannel is the channel name passed to a Sender with every status update.
const StatusChannel = "loading-status"

// Phase is the overall state of a load attempt.
type Phase string

// The overall phases. StatusNoFile, StatusError and StatusDone are terminal.
const (
	StatusNoFile  Phase = "no-file"
	StatusError   Phase = "error"
	StatusLoading Phase = "loading"
	StatusDone    Phase = "done"
)

// TablePhase is the state of a single table within a load attempt.
type TablePhase string

// The per-table phases.
const (
	TablePhaseLoading TablePhase = "loading"
	TablePhaseDone    TablePhase = "done"
	TablePhaseError   TablePhase = "error"
)

// Status describes the progress of a load attempt.
// Tables is keyed by file name and is cleared once the attempt reaches a terminal phase.
type Status struct {
	Status   Phase
	FileName *string
	Tables   map[string]TablePhase
	Error    error
}

// Clone returns a deep copy of the status.
func (s Status) Clone() Status {
	dup := Status{
		Status: s.Status,
		Error:  s.Error,
	}
	if s.FileName != nil {
		name := *s.FileName
		dup.FileName = &name
	}
	if s.Tables != nil {
		dup.Tables = make(map[string]TablePhase, len(s.Tables))
		for name, phase := range s.Tables {
			dup.Tables[name] = phase
		}
	}
	return dup
}

// Terminal reports whether the status ends its load attempt.
func (s Status) Terminal() bool {
	return s.Status != StatusLoading
}

// Proto renders the status as {status, fileName, tables?, error?}.
func (s Status) Proto() (*structpb.Struct, error) {
	fields := map[string]interface{}{
		"status":   string(s.Status),
		"fileName": nil,
	}
	if s.FileName != nil {
		fields["fileName"] = *s.FileName
	}
	if s.Tables != nil {
		tables := make(map[string]interface{}, len(s.Tables))
		for name, phase := range s.Tables {
			tables[name] = string(phase)
		}
		fields["tables"] = tables
	}
	if s.Error != nil {
		fields["error"] = s.Error.Error()
	}
	return structpb.NewStruct(fields)
}

// MarshalJSON renders the same shape as Proto.
func (s Status) MarshalJSON() ([]byte, error) {
	msg, err := s.Proto()
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(msg)
}
