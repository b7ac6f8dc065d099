package stream

import (
	"sync"

	"google.golang.org/protobuf/proto"
)

// Sink is an implementation of a message sync; it receives messages broadcast by its parent source.
type Sink struct {
	id      string
	channel chan proto.Message
	once    sync.Once

	source *Source
}

// ID returns the identifier of this sink.
func (s *Sink) ID() string {
	return s.id
}

// Messages returns the read channel of messages broadcast by the source.
// The channel is closed when either the sink or its source is closed.
func (s *Sink) Messages() <-chan proto.Message {
	return s.channel
}

// Close releases any resources allocated as part of this sink's creation.
func (s *Sink) Close() {
	s.source.removeSink(s)
}

func (s *Sink) closeChannel() {
	s.once.Do(func() {
		close(s.channel)
	})
}
