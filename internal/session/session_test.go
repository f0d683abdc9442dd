package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/helixdojo/internal/challenge"
	"github.com/zjrosen/helixdojo/internal/engine"
	"github.com/zjrosen/helixdojo/internal/pubsub"
	"github.com/zjrosen/helixdojo/internal/tracing"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func builtin(t *testing.T, id string) challenge.Challenge {
	t.Helper()
	catalog, err := challenge.Builtin()
	require.NoError(t, err)
	c, err := catalog.ByID(id)
	require.NoError(t, err)
	return c
}

func play(s *Session, script string) {
	s.HandleKeys(engine.ParseKeys(script))
}

// TestSession_SolvesBuiltinChallenges replays a solution for several
// builtin challenges and checks the result record
func TestSession_SolvesBuiltinChallenges(t *testing.T) {
	tests := []struct {
		id     string
		script string
		keys   int
		score  int
		stars  int
	}{
		{id: "join-lines", script: "J", keys: 1, score: 1000, stars: 3},
		{id: "replace-char", script: "lre", keys: 3, score: 990, stars: 2},
		{id: "match-inside", script: "mi(cnew<Esc>", keys: 7, score: 990, stars: 2},
		{id: "add-surround", script: `wvems"`, keys: 6, score: 1000, stars: 3},
		{id: "multiple-cursors", script: "veCCcbar<Esc>", keys: 8, score: 1000, stars: 3},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s := New()
			s.Load(builtin(t, tt.id))
			play(s, tt.script)

			res, ok := s.Result()
			require.True(t, ok, "buffer: %q", s.Value())
			assert.True(t, res.Completed)
			assert.Equal(t, tt.keys, res.Keystrokes)
			assert.Equal(t, tt.score, res.Score())
			assert.Equal(t, tt.stars, res.Stars())
		})
	}
}

// TestSession_ResultIsCreatedOnce verifies later keys do not change the
// result
func TestSession_ResultIsCreatedOnce(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock.Now))
	s.Load(builtin(t, "join-lines"))

	clock.Advance(2 * time.Second)
	s.HandleKey("J")
	first, ok := s.Result()
	require.True(t, ok)
	require.Equal(t, int64(2000), first.ElapsedMs)

	clock.Advance(time.Minute)
	play(s, "ix<Esc>")
	s.UseHint()

	again, ok := s.Result()
	require.True(t, ok)
	require.Equal(t, first, again)
	require.Equal(t, 2*time.Second, s.Elapsed(), "clock stops at completion")
	require.Equal(t, 4, s.Keystrokes(), "keys after completion are still logged")
}

// TestSession_ValidatesOnlyOnContentChange verifies a buffer that already
// matches is not completed by motions alone
func TestSession_ValidatesOnlyOnContentChange(t *testing.T) {
	s := New()
	s.Load(builtin(t, "basic-hjkl"))

	play(s, "jjll")
	require.False(t, s.Completed())

	play(s, "ia<Backspace>")
	require.True(t, s.Completed())
	res, _ := s.Result()
	require.Equal(t, 7, res.Keystrokes)
}

// TestSession_CountsIgnoredKeys verifies keys the editor ignores still
// count
func TestSession_CountsIgnoredKeys(t *testing.T) {
	s := New()
	s.Load(builtin(t, "replace-char"))

	res := s.HandleKey("Q")
	require.False(t, res.Consumed)
	play(s, "lre")

	result, ok := s.Result()
	require.True(t, ok)
	require.Equal(t, 4, result.Keystrokes)
}

// TestSession_KeyLog verifies every key is logged with its timestamp
func TestSession_KeyLog(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock.Now))
	s.Load(builtin(t, "replace-char"))

	s.HandleKey("l")
	clock.Advance(150 * time.Millisecond)
	s.HandleKey("r")

	keys := s.KeyLog()
	require.Len(t, keys, 2)
	require.Equal(t, KeyEvent{Key: "l", Timestamp: clock.t.Add(-150 * time.Millisecond).UnixMilli()}, keys[0])
	require.Equal(t, "r", keys[1].Key)
	require.Equal(t, clock.t.UnixMilli(), keys[1].Timestamp)

	keys[0].Key = "changed"
	require.Equal(t, "l", s.KeyLog()[0].Key, "KeyLog returns a copy")
}

// TestSession_LoadClearsState verifies loading resets buffer, counters,
// registers and mode
func TestSession_LoadClearsState(t *testing.T) {
	s := New()
	s.Load(builtin(t, "yank-paste"))
	firstID := s.ID()

	play(s, "xyv")
	s.UseHint()
	require.Equal(t, "SELECT", s.Snapshot().ModeLabel)
	require.NotEmpty(t, s.Snapshot().Register)

	s.Load(builtin(t, "join-lines"))
	snap := s.Snapshot()
	require.Equal(t, "first\nsecond", snap.Text)
	require.Equal(t, engine.Position{}, snap.Cursor)
	require.Empty(t, snap.Selections)
	require.Empty(t, snap.Register)
	require.Equal(t, "NORMAL", snap.ModeLabel)
	require.Zero(t, s.Keystrokes())
	require.Zero(t, s.HintsUsed())
	require.NotEqual(t, firstID, s.ID())
}

// TestSession_Reset verifies reset restarts the same challenge
func TestSession_Reset(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock.Now))
	s.Load(builtin(t, "join-lines"))
	s.HandleKey("J")
	require.True(t, s.Completed())

	clock.Advance(time.Second)
	s.Reset()
	require.False(t, s.Completed())
	require.Zero(t, s.Keystrokes())
	require.Equal(t, "first\nsecond", s.Value())
	require.Zero(t, s.Elapsed())

	c, ok := s.Challenge()
	require.True(t, ok)
	require.Equal(t, "join-lines", c.ID)
}

// TestSession_UseHintCapped verifies hints are revealed in order and
// capped at the number available
func TestSession_UseHintCapped(t *testing.T) {
	s := New()
	c := builtin(t, "join-lines")
	s.Load(c)

	for i, want := range c.Hints {
		hint, ok := s.UseHint()
		require.True(t, ok)
		require.Equal(t, want, hint)
		require.Equal(t, i+1, s.HintsUsed())
	}
	_, ok := s.UseHint()
	require.False(t, ok)
	require.Equal(t, len(c.Hints), s.HintsUsed())
	require.Equal(t, c.Hints, s.Hints())

	s.HandleKey("J")
	res, _ := s.Result()
	require.Equal(t, 1, res.Stars())
	require.Equal(t, 800, res.Score())
}

// TestSession_Sandbox verifies a sandbox never completes
func TestSession_Sandbox(t *testing.T) {
	s := New(WithEditorConfig(engine.Config{IndentWidth: 2}))
	s.LoadSandbox("free text")
	require.True(t, s.Sandbox())

	play(s, "xd>")
	require.False(t, s.Completed())
	require.Nil(t, s.Diff())
	_, ok := s.UseHint()
	require.False(t, ok)
	_, ok = s.Challenge()
	require.False(t, ok)

	s.Reset()
	require.Equal(t, "free text", s.Value())
}

// TestSession_Diff verifies the diff compares normalized target and buffer
func TestSession_Diff(t *testing.T) {
	s := New()
	s.Load(builtin(t, "replace-char"))

	segs := s.Diff()
	require.NotEmpty(t, segs)
	var current string
	for _, seg := range segs {
		if seg.Kind.String() != "missing" {
			current += seg.Text
		}
	}
	require.Equal(t, "hXllo world", current)
}

// TestSession_Next verifies Next walks the catalog and stops at the end
func TestSession_Next(t *testing.T) {
	catalog, err := challenge.Builtin()
	require.NoError(t, err)
	all := catalog.All()

	s := New(WithCatalog(catalog))
	next, ok, err := s.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, all[0].ID, next.ID)

	s.Load(all[len(all)-1])
	_, ok, err = s.Next()
	require.NoError(t, err)
	require.False(t, ok)
	c, _ := s.Challenge()
	require.Equal(t, all[len(all)-1].ID, c.ID)

	_, _, err = New().Next()
	require.ErrorIs(t, err, ErrNoCatalog)
}

// TestSession_PublishesEvents verifies lifecycle and key events reach
// subscribers
func TestSession_PublishesEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	broker := pubsub.NewBroker[Event]()
	defer broker.Close()
	ch := broker.Subscribe(ctx)

	s := New(WithBroker(broker))
	s.Load(builtin(t, "join-lines"))
	s.UseHint()
	s.HandleKey("J")
	s.Reset()

	var got []pubsub.Event[Event]
	for len(got) < 5 {
		select {
		case ev := <-ch:
			got = append(got, ev)
		case <-time.After(time.Second):
			t.Fatalf("timed out after %d events", len(got))
		}
	}

	types := make([]pubsub.EventType, len(got))
	for i, ev := range got {
		types[i] = ev.Type
	}
	require.Equal(t, []pubsub.EventType{
		pubsub.LoadedEvent, pubsub.HintEvent, pubsub.KeyEvent, pubsub.CompletedEvent, pubsub.ResetEvent,
	}, types)

	completed := got[3].Payload
	require.Equal(t, "join-lines", completed.ChallengeID)
	require.NotNil(t, completed.Result)
	require.Equal(t, 1, completed.Result.HintsUsed)
	require.Equal(t, "J", got[2].Payload.Key)
	require.Equal(t, "change.join_lines", got[2].Payload.CommandID)
}

// TestSession_Spans verifies each attempt records a root span with one
// child per key
func TestSession_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	s := New(WithTracer(tp.Tracer("test")))
	s.Load(builtin(t, "replace-char"))
	play(s, "lre")

	ended := recorder.Ended()
	// The empty attempt from New, three keys, then the solved attempt.
	require.Len(t, ended, 5)

	replaced := ended[0]
	require.Equal(t, tracing.SpanAttempt, replaced.Name())

	attempt := ended[4]
	require.Equal(t, tracing.SpanAttempt, attempt.Name())
	attrs := map[string]any{}
	for _, kv := range attempt.Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	require.Equal(t, "replace-char", attrs[tracing.AttrChallengeID])
	require.Equal(t, tracing.EndCompleted, attrs[tracing.AttrEndReason])
	require.Equal(t, int64(3), attrs[tracing.AttrKeystrokes])
	require.Len(t, attempt.Events(), 1)
	require.Equal(t, tracing.EventCompleted, attempt.Events()[0].Name)

	for _, key := range ended[1:4] {
		require.Equal(t, tracing.SpanKey, key.Name())
		require.Equal(t, attempt.SpanContext().SpanID(), key.Parent().SpanID())
	}
}
