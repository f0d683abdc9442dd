// Package session holds the state of one training attempt around an
// engine.Editor: the loaded challenge, the keystroke log, revealed hints,
// the clock and the result. It replaces ambient UI state with an explicit
// object that has a defined reset.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/helixdojo/internal/challenge"
	"github.com/zjrosen/helixdojo/internal/engine"
	"github.com/zjrosen/helixdojo/internal/log"
	"github.com/zjrosen/helixdojo/internal/pubsub"
	"github.com/zjrosen/helixdojo/internal/scoring"
	"github.com/zjrosen/helixdojo/internal/tracing"
)

// ErrNoCatalog is returned by Next when the session was built without one.
var ErrNoCatalog = errors.New("session has no catalog")

// KeyEvent is one entry of the keystroke log.
type KeyEvent struct {
	Key string
	// Timestamp is Unix milliseconds.
	Timestamp int64
}

// Event is the payload published for every session event.
type Event struct {
	SessionID   string
	ChallengeID string
	Key         string
	CommandID   string
	Keystrokes  int
	HintsUsed   int
	// Result is set on CompletedEvent only.
	Result *scoring.Result
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithBroker publishes session events on broker.
func WithBroker(broker *pubsub.Broker[Event]) Option {
	return func(s *Session) {
		s.broker = broker
	}
}

// WithTracer records attempt and key spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Session) {
		s.tracer = tracer
	}
}

// WithEditorConfig configures the editor the session drives.
func WithEditorConfig(cfg engine.Config) Option {
	return func(s *Session) {
		s.editorCfg = cfg
	}
}

// WithCatalog lets Next advance through the catalog.
func WithCatalog(catalog *challenge.Catalog) Option {
	return func(s *Session) {
		s.catalog = catalog
	}
}

// Session is one attempt at a challenge, or a free sandbox. It is driven
// from a single goroutine and is not safe for concurrent use.
type Session struct {
	id        string
	editor    *engine.Editor
	editorCfg engine.Config

	challenge *challenge.Challenge
	sandbox   string

	keys      []KeyEvent
	hintsUsed int
	started   time.Time
	result    *scoring.Result

	catalog *challenge.Catalog
	broker  *pubsub.Broker[Event]
	now     func() time.Time

	tracer     trace.Tracer
	attemptCtx context.Context
	attempt    trace.Span
}

// New creates a session with an empty sandbox loaded.
func New(opts ...Option) *Session {
	s := &Session{
		now:    time.Now,
		tracer: noop.NewTracerProvider().Tracer(tracing.DefaultServiceName),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.editor = engine.New(s.editorCfg)
	s.begin()
	return s
}

// ============================================================================
// Lifecycle
// ============================================================================

// Load starts a fresh attempt at c: the buffer holds c.Initial, selections,
// registers and counters are cleared and the mode is Normal.
func (s *Session) Load(c challenge.Challenge) {
	s.end(tracing.EndReplaced)
	s.challenge = &c
	s.sandbox = ""
	s.begin()
	log.Debug(log.CatSession, "Loaded challenge", "session", s.id, "challenge", c.ID)
	s.publish(pubsub.LoadedEvent, Event{})
}

// LoadSandbox starts a free editing session on text with no target.
func (s *Session) LoadSandbox(text string) {
	s.end(tracing.EndReplaced)
	s.challenge = nil
	s.sandbox = text
	s.begin()
	log.Debug(log.CatSession, "Loaded sandbox", "session", s.id, "bytes", len(text))
	s.publish(pubsub.LoadedEvent, Event{})
}

// Reset reloads the current challenge or sandbox from scratch.
func (s *Session) Reset() {
	s.end(tracing.EndReset)
	s.begin()
	log.Debug(log.CatSession, "Reset", "session", s.id)
	s.publish(pubsub.ResetEvent, Event{})
}

// Next loads the challenge after the current one. It returns false at the
// end of the catalog, leaving the session unchanged.
func (s *Session) Next() (challenge.Challenge, bool, error) {
	if s.catalog == nil {
		return challenge.Challenge{}, false, ErrNoCatalog
	}
	var next challenge.Challenge
	var ok bool
	if s.challenge == nil {
		all := s.catalog.All()
		if len(all) > 0 {
			next, ok = all[0], true
		}
	} else {
		next, ok = s.catalog.Next(s.challenge.ID)
	}
	if !ok {
		return challenge.Challenge{}, false, nil
	}
	s.Load(next)
	return next, true, nil
}

// SetCatalog replaces the catalog Next walks, e.g. after packs reload.
func (s *Session) SetCatalog(catalog *challenge.Catalog) {
	s.catalog = catalog
}

// Close ends the current attempt span.
func (s *Session) Close() {
	s.end(tracing.EndClosed)
}

// begin resets every per-attempt field and opens the attempt span.
func (s *Session) begin() {
	s.id = uuid.NewString()
	s.keys = nil
	s.hintsUsed = 0
	s.result = nil
	s.started = s.now()
	s.editor.Load(s.initial())

	attrs := []attribute.KeyValue{
		attribute.String(tracing.AttrSessionID, s.id),
		attribute.Bool(tracing.AttrSandbox, s.challenge == nil),
	}
	if s.challenge != nil {
		attrs = append(attrs,
			attribute.String(tracing.AttrChallengeID, s.challenge.ID),
			attribute.String(tracing.AttrChallengeCat, string(s.challenge.Category)),
		)
	}
	s.attemptCtx, s.attempt = s.tracer.Start(context.Background(), tracing.SpanAttempt,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

func (s *Session) end(reason string) {
	if s.attempt == nil {
		return
	}
	s.attempt.SetAttributes(
		attribute.String(tracing.AttrEndReason, reason),
		attribute.Int(tracing.AttrKeystrokes, len(s.keys)),
		attribute.Int(tracing.AttrHintsUsed, s.hintsUsed),
	)
	s.attempt.SetStatus(codes.Ok, "")
	s.attempt.End()
	s.attempt = nil
}

func (s *Session) initial() string {
	if s.challenge != nil {
		return s.challenge.Initial
	}
	return s.sandbox
}

// ============================================================================
// Keys
// ============================================================================

// HandleKey logs key, applies it to the editor and, when the content
// changed, validates the buffer against the target. Every key counts,
// including keys the editor ignores.
func (s *Session) HandleKey(key string) engine.KeyResult {
	at := s.now()
	s.keys = append(s.keys, KeyEvent{Key: key, Timestamp: at.UnixMilli()})

	_, span := s.tracer.Start(s.attemptCtx, tracing.SpanKey,
		trace.WithAttributes(
			attribute.String(tracing.AttrKey, key),
			attribute.Int(tracing.AttrKeyIndex, len(s.keys)),
		),
	)
	res := s.editor.HandleKey(key)
	span.SetAttributes(
		attribute.String(tracing.AttrCommandID, res.CommandID),
		attribute.String(tracing.AttrCommandResult, res.Result.String()),
		attribute.String(tracing.AttrMode, res.Mode.String()),
		attribute.Bool(tracing.AttrContentChanged, res.ContentChanged),
	)
	span.End()

	log.Debug(log.CatSession, "Key",
		"session", s.id, "key", key, "command", res.CommandID, "result", res.Result, "mode", res.Mode)
	s.publish(pubsub.KeyEvent, Event{Key: key, CommandID: res.CommandID})

	if res.ContentChanged {
		s.check(at)
	}
	return res
}

// HandleKeys applies a sequence of keys in order.
func (s *Session) HandleKeys(keys []string) {
	for _, k := range keys {
		s.HandleKey(k)
	}
}

// check creates the result the first time the buffer matches the target.
func (s *Session) check(at time.Time) {
	if s.challenge == nil || s.result != nil {
		return
	}
	if !scoring.Validate(s.challenge.Initial, s.challenge.Target, s.editor.Value()) {
		return
	}
	s.result = &scoring.Result{
		Completed:         true,
		Keystrokes:        len(s.keys),
		OptimalKeystrokes: s.challenge.OptimalKeystrokes,
		ElapsedMs:         at.Sub(s.started).Milliseconds(),
		HintsUsed:         s.hintsUsed,
	}
	score, stars := s.result.Score(), s.result.Stars()

	s.attempt.AddEvent(tracing.EventCompleted, trace.WithAttributes(
		attribute.Int(tracing.AttrKeystrokes, s.result.Keystrokes),
		attribute.Int64(tracing.AttrElapsedMs, s.result.ElapsedMs),
		attribute.Int(tracing.AttrScore, score),
		attribute.Int(tracing.AttrStars, stars),
	))
	s.end(tracing.EndCompleted)

	log.Info(log.CatSession, "Challenge completed",
		"session", s.id, "challenge", s.challenge.ID, "keys", s.result.Keystrokes, "score", score, "stars", stars)
	r := *s.result
	s.publish(pubsub.CompletedEvent, Event{Result: &r})
}

// ============================================================================
// Hints
// ============================================================================

// UseHint reveals the next hint. It returns the hint and false once every
// hint is showing, or in a sandbox.
func (s *Session) UseHint() (string, bool) {
	if s.challenge == nil || s.hintsUsed >= len(s.challenge.Hints) {
		return "", false
	}
	hint := s.challenge.Hints[s.hintsUsed]
	s.hintsUsed++
	if s.attempt != nil {
		s.attempt.AddEvent(tracing.EventHintUsed,
			trace.WithAttributes(attribute.Int(tracing.AttrHintsUsed, s.hintsUsed)))
	}
	log.Debug(log.CatSession, "Hint revealed", "session", s.id, "hints", s.hintsUsed)
	s.publish(pubsub.HintEvent, Event{})
	return hint, true
}

// Hints returns the hints revealed so far.
func (s *Session) Hints() []string {
	if s.challenge == nil {
		return nil
	}
	return append([]string(nil), s.challenge.Hints[:s.hintsUsed]...)
}

// HintsUsed returns how many hints were revealed.
func (s *Session) HintsUsed() int { return s.hintsUsed }

// ============================================================================
// Accessors
// ============================================================================

// ID returns the attempt id. A new id is issued on every load and reset.
func (s *Session) ID() string { return s.id }

// Challenge returns the loaded challenge, or false in a sandbox.
func (s *Session) Challenge() (challenge.Challenge, bool) {
	if s.challenge == nil {
		return challenge.Challenge{}, false
	}
	return *s.challenge, true
}

// Sandbox reports whether the session has no target.
func (s *Session) Sandbox() bool { return s.challenge == nil }

// Result returns the result once the challenge is solved.
func (s *Session) Result() (scoring.Result, bool) {
	if s.result == nil {
		return scoring.Result{}, false
	}
	return *s.result, true
}

// Completed reports whether the challenge has been solved.
func (s *Session) Completed() bool { return s.result != nil }

// Keystrokes returns the number of keys handled in this attempt.
func (s *Session) Keystrokes() int { return len(s.keys) }

// KeyLog returns a copy of the keystroke log.
func (s *Session) KeyLog() []KeyEvent {
	return append([]KeyEvent(nil), s.keys...)
}

// Elapsed returns the time spent on the attempt. It stops at completion.
func (s *Session) Elapsed() time.Duration {
	if s.result != nil {
		return time.Duration(s.result.ElapsedMs) * time.Millisecond
	}
	return s.now().Sub(s.started)
}

// Snapshot returns the editor state for rendering.
func (s *Session) Snapshot() engine.Snapshot { return s.editor.Snapshot() }

// Value returns the buffer contents.
func (s *Session) Value() string { return s.editor.Value() }

// Diff compares the buffer with the target. It is nil in a sandbox.
func (s *Session) Diff() []scoring.Segment {
	if s.challenge == nil {
		return nil
	}
	return scoring.Diff(s.challenge.Target, s.editor.Value())
}

func (s *Session) publish(t pubsub.EventType, ev Event) {
	if s.broker == nil {
		return
	}
	ev.SessionID = s.id
	if s.challenge != nil {
		ev.ChallengeID = s.challenge.ID
	}
	ev.Keystrokes = len(s.keys)
	ev.HintsUsed = s.hintsUsed
	s.broker.Publish(t, ev)
}
