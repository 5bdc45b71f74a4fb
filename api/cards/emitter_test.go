/* emitter_test.go
 * Contains unit tests for emitter.go
 * Authors: Zachary Bower
 */

package cards

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"sportsstats-bot/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// recordingSink stores every unit it is asked to send
type recordingSink struct {
	units []Unit
	err   error
}

func (s *recordingSink) Send(_ context.Context, unit Unit) error {
	s.units = append(s.units, unit)
	return s.err
}

// record builds a fake rendered record of n fragments whose first fragment is labelled
func record(label string, n int) Sequence {
	seq := Sequence{section(label)}
	for i := 1; i < n-1; i++ {
		seq = append(seq, section(fmt.Sprintf("%s line %d", label, i)))
	}
	return append(seq, divider())
}

// labels returns the first fragment text of every record found in units, skipping header fragments
func labels(units []Unit) []string {
	var out []string
	for _, u := range units {
		start := true
		for _, f := range u.Fragments {
			if f.Type == HeaderFragment {
				continue
			}
			if f.Type == DividerFragment {
				start = true
				continue
			}
			if start && f.Type == SectionFragment {
				out = append(out, f.Text)
			}
			start = false
		}
	}
	return out
}

func TestEmitter_FlushesEveryFiveRecords(t *testing.T) {
	sink := &recordingSink{}
	e := NewEmitter(sink, "channel123", "EPL Standings Card")
	e.Prelude(Sequence{{Type: HeaderFragment, Text: "Standings"}})

	var want []string
	for i := 1; i <= 20; i++ {
		label := fmt.Sprintf("team %d", i)
		want = append(want, label)
		require.NoError(t, e.Add(context.Background(), record(label, 5)))
	}
	e.Close(context.Background())

	require.Len(t, sink.units, 4)
	for _, u := range sink.units {
		assert.Equal(t, "channel123", u.Destination)
		assert.Equal(t, "EPL Standings Card", u.Fallback)
		assert.NotEmpty(t, u.Fragments)
	}
	// The header only opens the first unit
	assert.Equal(t, HeaderFragment, sink.units[0].Fragments[0].Type)
	assert.NotEqual(t, HeaderFragment, sink.units[1].Fragments[0].Type)
	assert.Equal(t, want, labels(sink.units))
}

func TestEmitter_FlushesFinalPartialBufferOnce(t *testing.T) {
	sink := &recordingSink{}
	e := NewEmitter(sink, "c", "f")

	for i := 0; i < 7; i++ {
		require.NoError(t, e.Add(context.Background(), record(fmt.Sprintf("r%d", i), 5)))
	}
	e.Close(context.Background())
	e.Close(context.Background())

	require.Len(t, sink.units, 2)
	assert.Len(t, labels(sink.units[:1]), 5)
	assert.Len(t, labels(sink.units[1:]), 2)
	assert.Equal(t, 2, e.Sent())
}

func TestEmitter_NeverExceedsRecordsPerFlush(t *testing.T) {
	for total := 0; total <= 13; total++ {
		for perFlush := 1; perFlush <= 6; perFlush++ {
			sink := &recordingSink{}
			e := NewEmitter(sink, "c", "f", WithRecordsPerFlush(perFlush))
			var want []string
			for i := 0; i < total; i++ {
				label := fmt.Sprintf("r%d", i)
				want = append(want, label)
				require.NoError(t, e.Add(context.Background(), record(label, 3)))
			}
			e.Close(context.Background())

			for _, u := range sink.units {
				assert.LessOrEqual(t, len(labels([]Unit{u})), perFlush)
				assert.NotEmpty(t, u.Fragments)
			}
			assert.Equal(t, want, labels(sink.units), "total=%d perFlush=%d", total, perFlush)
		}
	}
}

func TestEmitter_RespectsFragmentCeiling(t *testing.T) {
	sink := &recordingSink{}
	e := NewEmitter(sink, "c", "f", WithRecordsPerFlush(10), WithMaxFragments(12))

	for i := 0; i < 5; i++ {
		require.NoError(t, e.Add(context.Background(), record(fmt.Sprintf("r%d", i), 5)))
	}
	e.Close(context.Background())

	require.Len(t, sink.units, 3)
	for _, u := range sink.units {
		assert.LessOrEqual(t, len(u.Fragments), 12)
	}
}

func TestEmitter_HeaderFlushedAloneWhenFirstRecordDoesNotFit(t *testing.T) {
	sink := &recordingSink{}
	e := NewEmitter(sink, "c", "f", WithMaxFragments(5))
	e.Prelude(Header("Standings"))

	require.NoError(t, e.Add(context.Background(), record("r0", 5)))
	e.Close(context.Background())

	require.Len(t, sink.units, 2)
	assert.Len(t, sink.units[0].Fragments, 2)
	assert.Len(t, sink.units[1].Fragments, 5)
}

func TestEmitter_RejectsOversizedRecord(t *testing.T) {
	sink := &recordingSink{}
	e := NewEmitter(sink, "c", "f", WithMaxFragments(4))

	err := e.Add(context.Background(), record("huge", 5))

	assert.ErrorIs(t, err, shared.ErrRenderFailure)
	assert.Empty(t, sink.units)
}

func TestEmitter_NothingAddedSendsNothing(t *testing.T) {
	sink := &recordingSink{}
	e := NewEmitter(sink, "c", "f")

	require.NoError(t, e.Add(context.Background(), nil))
	e.Close(context.Background())

	assert.Empty(t, sink.units)
}

func TestEmitter_SendFailureIsLoggedNotReturned(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	sink := &recordingSink{err: errors.New("discord down")}
	var hookErrs []error
	e := NewEmitter(sink, "c", "f", WithLogger(zap.New(core)), WithSentHook(func(err error) {
		hookErrs = append(hookErrs, err)
	}))

	require.NoError(t, e.Add(context.Background(), record("r0", 5)))
	e.Close(context.Background())

	assert.Len(t, sink.units, 1)
	assert.Equal(t, 1, logs.FilterMessage("failed to send card").Len())
	require.Len(t, hookErrs, 1)
	assert.EqualError(t, hookErrs[0], "discord down")
}

func TestCardBuilder_ReturnsAccumulatedSequence(t *testing.T) {
	b := NewCardBuilder()
	b.Prelude(Header("Top 3"))

	for i := 0; i < 8; i++ {
		require.NoError(t, b.Add(context.Background(), record(fmt.Sprintf("r%d", i), 5)))
	}
	card := b.Close(context.Background())

	assert.Len(t, card, 2+8*5)
	assert.Equal(t, HeaderFragment, card[0].Type)
	assert.Equal(t, 0, b.Sent())
}

func TestSend_SingleUnit(t *testing.T) {
	sink := &recordingSink{}

	Send(context.Background(), sink, "c", "Error Getting Data from API", Notice("Unable to get standings. Please try again later."))

	require.Len(t, sink.units, 1)
	assert.Equal(t, PlainTextFragment, sink.units[0].Fragments[0].Type)
	assert.Equal(t, "Error Getting Data from API", sink.units[0].Fallback)
}
