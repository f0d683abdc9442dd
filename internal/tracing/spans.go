package tracing

// Span names.
const (
	SpanAttempt = "session.attempt"
	SpanKey     = "session.key"
)

// Attribute keys.
const (
	AttrSessionID      = "session.id"
	AttrChallengeID    = "challenge.id"
	AttrChallengeCat   = "challenge.category"
	AttrSandbox        = "session.sandbox"
	AttrKey            = "key.name"
	AttrKeyIndex       = "key.index"
	AttrCommandID      = "command.id"
	AttrCommandResult  = "command.result"
	AttrMode           = "editor.mode"
	AttrContentChanged = "editor.content_changed"
	AttrKeystrokes     = "result.keystrokes"
	AttrHintsUsed      = "result.hints_used"
	AttrElapsedMs      = "result.elapsed_ms"
	AttrScore          = "result.score"
	AttrStars          = "result.stars"
	AttrEndReason      = "attempt.end_reason"
)

// Span events.
const (
	EventCompleted = "challenge.completed"
	EventHintUsed  = "hint.used"
)

// Reasons an attempt span ends.
const (
	EndCompleted = "completed"
	EndReset     = "reset"
	EndReplaced  = "replaced"
	EndClosed    = "closed"
)
