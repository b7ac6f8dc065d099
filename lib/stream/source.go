package stream

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
)

// DefaultBufferSize is the number of undelivered messages a sink holds before the oldest is dropped.
const DefaultBufferSize = 10

// Source represents a message source that will be broadcast to its sinks.
// The most recent message is retained and replayed to sinks created later.
type Source struct {
	logger     *zap.Logger
	bufferSize int

	sinks     map[string]*Sink
	last      proto.Message
	closed    bool
	sinksLock sync.Mutex
}

// NewSource creates a new message source. A bufferSize below 1 uses DefaultBufferSize.
func NewSource(logger *zap.Logger, bufferSize int) *Source {
	if bufferSize < 1 {
		bufferSize = DefaultBufferSize
	}
	return &Source{
		logger:     logger,
		bufferSize: bufferSize,
		sinks:      map[string]*Sink{},
	}
}

// NewSink creates a message sink for this source. If a message was already sent it is
// delivered first. A sink created after Close receives that message and is then closed.
func (s *Source) NewSink() *Sink {
	sink := &Sink{
		id:      uuid.New().String(),
		channel: make(chan proto.Message, s.bufferSize),
		source:  s,
	}

	s.sinksLock.Lock()
	defer s.sinksLock.Unlock()

	if s.last != nil {
		sink.channel <- s.last
	}
	if s.closed {
		sink.closeChannel()
		return sink
	}
	s.sinks[sink.id] = sink

	s.logger.Debug("added watcher",
		zap.String("channel_id", sink.id))
	return sink
}

// SendMessage sends a message to all created sinks without blocking.
// A sink whose buffer is full loses its oldest pending message so the newest one always lands.
func (s *Source) SendMessage(msg proto.Message) {
	s.sinksLock.Lock()
	defer s.sinksLock.Unlock()

	s.last = msg
	for _, sink := range s.sinks {
		select {
		case sink.channel <- msg:
			continue
		default:
		}

		select {
		case <-sink.channel:
			s.logger.Debug("channel blocked, dropped oldest message",
				zap.String("channel_id", sink.id),
			)
		default:
		}
		select {
		case sink.channel <- msg:
		default:
			s.logger.Debug("channel blocked",
				zap.String("channel_id", sink.id),
			)
		}
	}
}

// Last returns the most recently sent message, or nil.
func (s *Source) Last() proto.Message {
	s.sinksLock.Lock()
	defer s.sinksLock.Unlock()
	return s.last
}

// SinkCount returns the number of open sinks.
func (s *Source) SinkCount() int {
	s.sinksLock.Lock()
	defer s.sinksLock.Unlock()
	return len(s.sinks)
}

// Close closes every sink and refuses new ones until Reset. Messages already buffered stay readable.
func (s *Source) Close() {
	s.sinksLock.Lock()
	defer s.sinksLock.Unlock()

	s.closeSinks()
	s.closed = true
}

// CloseSinks closes the sinks registered so far. Sinks created afterwards are registered as usual
// and still receive the last message first.
func (s *Source) CloseSinks() {
	s.sinksLock.Lock()
	defer s.sinksLock.Unlock()

	s.closeSinks()
}

func (s *Source) closeSinks() {
	for id, sink := range s.sinks {
		sink.closeChannel()
		delete(s.sinks, id)
	}
}

// Reset reopens a closed source and forgets the last message.
func (s *Source) Reset() {
	s.sinksLock.Lock()
	defer s.sinksLock.Unlock()

	s.closed = false
	s.last = nil
}

func (s *Source) removeSink(sink *Sink) {
	s.sinksLock.Lock()
	defer s.sinksLock.Unlock()

	if _, ok := s.sinks[sink.id]; ok {
		delete(s.sinks, sink.id)
		sink.closeChannel()
	}
}
