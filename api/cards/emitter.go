/* emitter.go
 * Contains the pagination emitter. Chat platforms cap how much a single message may carry, so rendered records are
 * buffered and flushed as several outbound units. In return mode nothing is sent and the accumulated fragments are
 * handed back to the caller to compose into a larger view
 * Authors: Zachary Bower
 */

package cards

import (
	"context"
	"fmt"

	"sportsstats-bot/api/shared"

	"go.uber.org/zap"
)

const (
	// DefaultRecordsPerFlush is how many records go into one outbound unit
	DefaultRecordsPerFlush = 5
	// MaxFragmentsPerUnit is the hard per-message ceiling (Slack allows 50 blocks per message)
	MaxFragmentsPerUnit = 50
)

// Mode selects whether an emitter sends units or returns them
type Mode int

const (
	SendMode Mode = iota
	ReturnMode
)

// Option configures an Emitter
type Option func(*Emitter)

// WithRecordsPerFlush overrides DefaultRecordsPerFlush
func WithRecordsPerFlush(n int) Option {
	return func(e *Emitter) {
		if n > 0 {
			e.recordsPerFlush = n
		}
	}
}

// WithMaxFragments overrides MaxFragmentsPerUnit
func WithMaxFragments(n int) Option {
	return func(e *Emitter) {
		if n > 0 {
			e.maxFragments = n
		}
	}
}

// WithLogger sets the logger used to report failed sends
func WithLogger(logger *zap.Logger) Option {
	return func(e *Emitter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSentHook registers a callback invoked after every send attempt, used for metrics
func WithSentHook(hook func(err error)) Option {
	return func(e *Emitter) {
		e.onSent = hook
	}
}

// Emitter batches card fragment sequences into outbound units. It is owned by a single request
type Emitter struct {
	mode            Mode
	sink            Sink
	destination     string
	fallback        string
	recordsPerFlush int
	maxFragments    int
	logger          *zap.Logger
	onSent          func(err error)

	prelude  Sequence
	buffer   Sequence
	records  int
	sent     int
	returned Sequence
}

// NewEmitter creates an emitter in send mode that flushes to sink
func NewEmitter(sink Sink, destination string, fallback string, opts ...Option) *Emitter {
	e := &Emitter{
		mode:            SendMode,
		sink:            sink,
		destination:     destination,
		fallback:        fallback,
		recordsPerFlush: DefaultRecordsPerFlush,
		maxFragments:    MaxFragmentsPerUnit,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewCardBuilder creates an emitter in return mode. Close returns everything that was added
func NewCardBuilder(opts ...Option) *Emitter {
	e := NewEmitter(nil, "", "", opts...)
	e.mode = ReturnMode
	return e
}

// Prelude sets fragments (usually a card header) that open the first outbound unit. They do not count as a record
func (e *Emitter) Prelude(seq Sequence) {
	e.prelude = append(e.prelude, seq...)
}

// Add buffers one record's fragments, flushing first if they would push the buffer past the fragment ceiling and
// afterwards if the per-flush record count has been reached
// Preconditions: seq is one rendered record
// Postconditions: seq is buffered or sent, or ErrRenderFailure is returned if seq alone can never fit in a unit
func (e *Emitter) Add(ctx context.Context, seq Sequence) error {
	if len(seq) == 0 {
		return nil
	}
	if e.mode == ReturnMode {
		e.returned = append(e.returned, seq...)
		e.records++
		return nil
	}

	if len(seq) > e.maxFragments {
		return fmt.Errorf("%w: card of %d fragments exceeds the %d fragment limit", shared.ErrRenderFailure, len(seq), e.maxFragments)
	}
	if pending := len(e.prelude) + len(e.buffer); pending > 0 && pending+len(seq) > e.maxFragments {
		e.flush(ctx)
	}

	e.buffer = append(e.buffer, seq...)
	e.records++
	if e.records >= e.recordsPerFlush {
		e.flush(ctx)
	}
	return nil
}

// Close flushes the final partial buffer. In return mode it returns the prelude followed by every added record
func (e *Emitter) Close(ctx context.Context) Sequence {
	if e.mode == ReturnMode {
		out := make(Sequence, 0, len(e.prelude)+len(e.returned))
		out = append(out, e.prelude...)
		out = append(out, e.returned...)
		return out
	}
	if e.records > 0 || len(e.prelude) > 0 {
		e.flush(ctx)
	}
	return nil
}

// Sent returns how many units have been handed to the sink
func (e *Emitter) Sent() int {
	return e.sent
}

func (e *Emitter) flush(ctx context.Context) {
	unit := Unit{
		Destination: e.destination,
		Fallback:    e.fallback,
		Fragments:   make(Sequence, 0, len(e.prelude)+len(e.buffer)),
	}
	unit.Fragments = append(unit.Fragments, e.prelude...)
	unit.Fragments = append(unit.Fragments, e.buffer...)
	e.prelude = nil
	e.buffer = e.buffer[:0]
	e.records = 0

	if len(unit.Fragments) == 0 {
		return
	}

	err := e.sink.Send(ctx, unit)
	e.sent++
	if e.onSent != nil {
		e.onSent(err)
	}
	if err != nil {
		e.logger.Error("failed to send card",
			zap.String("destination", unit.Destination),
			zap.String("fallback", unit.Fallback),
			zap.Int("fragments", len(unit.Fragments)),
			zap.Error(err))
	}
}

// Send delivers a single unit built from seq through sink, logging failures. Used for one-off messages such as errors
func Send(ctx context.Context, sink Sink, destination string, fallback string, seq Sequence, opts ...Option) {
	e := NewEmitter(sink, destination, fallback, opts...)
	e.Prelude(seq)
	e.Close(ctx)
}
