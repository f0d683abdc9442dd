package engine

// ExecuteResult indicates the outcome of command execution.
type ExecuteResult int

const (
	// Executed means the command ran and consumed the key.
	Executed ExecuteResult = iota
	// PassThrough means no command handles this key in the current mode.
	PassThrough
	// Skipped means pre-conditions weren't met (join on the last line,
	// paste from an empty register). The key is still consumed.
	Skipped
)

func (r ExecuteResult) String() string {
	switch r {
	case Executed:
		return "executed"
	case PassThrough:
		return "pass-through"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Command is a single keyed operation on the editor. Commands own the text
// and selection effects of a key; the next mode comes from Transition.
type Command interface {
	// Execute applies the command. It never fails: a command that cannot
	// apply returns Skipped and leaves the editor untouched.
	Execute(e *Editor) ExecuteResult

	// Keys returns the trigger key(s). Aliases share one command,
	// e.g. []string{"h", KeyLeft}.
	Keys() []string

	// Mode returns the primary mode the command is registered in.
	Mode() ModeKind

	// ID returns a hierarchical identifier such as "move.left" or
	// "change.delete", used in logs and spans.
	ID() string

	// ChangesContent reports whether the command may modify the buffer.
	ChangesContent() bool

	// IsModeChange reports whether the key moves the editor to another mode.
	IsModeChange() bool
}

// ============================================================================
// Base structs for reducing boilerplate in Command implementations
// ============================================================================

// MotionBase is embedded by commands that only move the cursor.
type MotionBase struct{}

func (MotionBase) ChangesContent() bool { return false }
func (MotionBase) IsModeChange() bool   { return false }

// SelectionBase is embedded by commands that only reshape selections.
type SelectionBase struct{}

func (SelectionBase) ChangesContent() bool { return false }
func (SelectionBase) IsModeChange() bool   { return false }

// EditBase is embedded by commands that modify text and keep the mode.
type EditBase struct{}

func (EditBase) ChangesContent() bool { return true }
func (EditBase) IsModeChange() bool   { return false }

// ChangeBase is embedded by commands that modify text and enter insert.
type ChangeBase struct{}

func (ChangeBase) ChangesContent() bool { return true }
func (ChangeBase) IsModeChange() bool   { return true }

// ModeEntryBase is embedded by commands that switch mode without editing.
type ModeEntryBase struct{}

func (ModeEntryBase) ChangesContent() bool { return false }
func (ModeEntryBase) IsModeChange() bool   { return true }

// ============================================================================
// CommandRegistry
// ============================================================================

// CommandRegistry maps (mode, key) to a command.
type CommandRegistry struct {
	commands map[ModeKind]map[string]Command
}

// NewCommandRegistry creates an empty command registry.
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[ModeKind]map[string]Command),
	}
}

// Register adds cmd under its Mode() for each of its Keys().
func (r *CommandRegistry) Register(cmd Command) {
	r.registerWithModeKeys(cmd.Mode(), cmd)
}

// Get retrieves the command for a mode and key.
func (r *CommandRegistry) Get(mode ModeKind, key string) (Command, bool) {
	if modeMap, ok := r.commands[mode]; ok {
		if cmd, ok := modeMap[key]; ok {
			return cmd, true
		}
	}
	return nil, false
}

// registerWithModeKeys adds cmd under an explicit mode. Motions use it to
// appear in both Normal and Select.
func (r *CommandRegistry) registerWithModeKeys(mode ModeKind, cmd Command) {
	if r.commands[mode] == nil {
		r.commands[mode] = make(map[string]Command)
	}
	for _, key := range cmd.Keys() {
		r.commands[mode][key] = cmd
	}
}

// ============================================================================
// PendingCommandRegistry - Multi-key sequence dispatch
// ============================================================================

// CharCommandFunc builds a command around the character typed after an
// operator such as r or f.
type CharCommandFunc func(ch string) Command

// PendingCommandRegistry dispatches multi-key sequences. Fixed sequences
// map (operator, keys) to a command; char operators take any printable
// character as their argument.
type PendingCommandRegistry struct {
	commands map[rune]map[string]Command
	chars    map[rune]CharCommandFunc
}

// NewPendingCommandRegistry creates an empty pending command registry.
func NewPendingCommandRegistry() *PendingCommandRegistry {
	return &PendingCommandRegistry{
		commands: make(map[rune]map[string]Command),
		chars:    make(map[rune]CharCommandFunc),
	}
}

// Register adds a command for a specific operator and key sequence.
func (r *PendingCommandRegistry) Register(operator rune, keys string, cmd Command) {
	if r.commands[operator] == nil {
		r.commands[operator] = make(map[string]Command)
	}
	r.commands[operator][keys] = cmd
}

// RegisterChar makes operator take a single character argument.
func (r *PendingCommandRegistry) RegisterChar(operator rune, build CharCommandFunc) {
	r.chars[operator] = build
}

// Get retrieves the command for an operator and key sequence.
func (r *PendingCommandRegistry) Get(operator rune, keys string) (Command, bool) {
	if opMap, ok := r.commands[operator]; ok {
		if cmd, ok := opMap[keys]; ok {
			return cmd, true
		}
	}
	return nil, false
}

// GetChar retrieves the builder for a char operator.
func (r *PendingCommandRegistry) GetChar(operator rune) (CharCommandFunc, bool) {
	build, ok := r.chars[operator]
	return build, ok
}

// HasPrefix reports whether some longer sequence for operator starts with
// prefix, meaning more keys should be buffered.
func (r *PendingCommandRegistry) HasPrefix(operator rune, prefix string) bool {
	for key := range r.commands[operator] {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

// ============================================================================
// PendingCommandBuilder
// ============================================================================

// PendingCommandBuilder accumulates a multi-key sequence such as "gg" or
// "r<char>" until it resolves or is cancelled.
type PendingCommandBuilder struct {
	operator  rune
	keyBuffer string
}

// NewPendingCommandBuilder creates an empty pending command builder.
func NewPendingCommandBuilder() *PendingCommandBuilder {
	return &PendingCommandBuilder{}
}

// Clear resets the builder to empty state.
func (b *PendingCommandBuilder) Clear() {
	b.operator = 0
	b.keyBuffer = ""
}

// IsEmpty returns true if no pending command is being built.
func (b *PendingCommandBuilder) IsEmpty() bool {
	return b.operator == 0
}

// SetOperator starts a new sequence.
func (b *PendingCommandBuilder) SetOperator(op rune) {
	b.operator = op
	b.keyBuffer = ""
}

// Operator returns the current pending operator.
func (b *PendingCommandBuilder) Operator() rune {
	return b.operator
}

// AppendKey adds a key to the buffer.
func (b *PendingCommandBuilder) AppendKey(key string) {
	b.keyBuffer += key
}

// KeyBuffer returns the keys typed after the operator.
func (b *PendingCommandBuilder) KeyBuffer() string {
	return b.keyBuffer
}

// String renders the sequence typed so far.
func (b *PendingCommandBuilder) String() string {
	if b.IsEmpty() {
		return ""
	}
	return string(b.operator) + b.keyBuffer
}

// ============================================================================
// Default Registries
// ============================================================================

// DefaultRegistry holds every single-key command.
var DefaultRegistry = newDefaultRegistry()

// DefaultPendingRegistry holds every multi-key sequence.
var DefaultPendingRegistry = newDefaultPendingRegistry()

func newDefaultRegistry() *CommandRegistry {
	r := NewCommandRegistry()

	// Motions work in Normal and extend the selection in Select.
	motions := []Command{
		&MoveLeftCommand{},
		&MoveRightCommand{},
		&MoveDownCommand{},
		&MoveUpCommand{},
		&MoveWordForwardCommand{},
		&MoveWordBackwardCommand{},
		&MoveWordEndCommand{},
		&MoveToLineStartCommand{},
		&MoveToLineEndCommand{},
		&MoveToLastLineCommand{},
		&StartPendingCommand{operator: 'g'},
		&StartPendingCommand{operator: 'f'},
		&StartPendingCommand{operator: 't'},
	}
	for _, cmd := range motions {
		r.Register(cmd)
		r.registerWithModeKeys(ModeSelect, cmd)
	}

	// Selection commands.
	selection := []Command{
		&SelectLineCommand{},
		&ExtendToLinesCommand{},
		&CollapseSelectionsCommand{},
		&KeepPrimaryCommand{},
		&CopySelectionDownCommand{},
		&SplitSelectionCommand{},
	}
	for _, cmd := range selection {
		r.Register(cmd)
		r.registerWithModeKeys(ModeSelect, cmd)
	}

	// Edits shared by Normal and Select.
	edits := []Command{
		&DeleteCommand{},
		&ChangeCommand{},
		&YankCommand{},
		&PasteAfterCommand{},
		&PasteBeforeCommand{},
		&ToggleCaseCommand{},
		&IndentCommand{},
		&DedentCommand{},
		&JoinLinesCommand{},
		&EnterMatchCommand{},
	}
	for _, cmd := range edits {
		r.Register(cmd)
		r.registerWithModeKeys(ModeSelect, cmd)
	}

	// Normal only.
	r.Register(&StartPendingCommand{operator: 'r'})
	r.Register(&EnterSelectCommand{})
	r.Register(&EnterSelectLineCommand{})
	r.Register(&InsertBeforeCommand{})
	r.Register(&AppendAfterCommand{})
	r.Register(&InsertLineStartCommand{})
	r.Register(&AppendLineEndCommand{})
	r.Register(&OpenLineBelowCommand{})
	r.Register(&OpenLineAboveCommand{})
	r.Register(&UndoCommand{})
	r.Register(&RedoCommand{})

	// Select only.
	r.Register(&SelectCharwiseCommand{})
	r.Register(&SelectLinewiseCommand{})

	// Match sub-commands. The delimiter that follows is handled by the
	// editor since any printable character qualifies.
	r.Register(&MatchPendingCommand{pending: MatchInside})
	r.Register(&MatchPendingCommand{pending: MatchAround})
	r.Register(&MatchPendingCommand{pending: MatchSurround})
	r.Register(&MatchPendingCommand{pending: MatchDelete})

	// Insert mode.
	r.Register(&InsertBackspaceCommand{})
	r.Register(&InsertDeleteCommand{})
	r.Register(&InsertNewlineCommand{})
	r.Register(&InsertTabCommand{})
	r.Register(&InsertMoveCommand{key: KeyLeft})
	r.Register(&InsertMoveCommand{key: KeyRight})
	r.Register(&InsertMoveCommand{key: KeyUp})
	r.Register(&InsertMoveCommand{key: KeyDown})

	return r
}

func newDefaultPendingRegistry() *PendingCommandRegistry {
	r := NewPendingCommandRegistry()

	// g prefix commands
	r.Register('g', "g", &MoveToFirstLineCommand{})
	r.Register('g', "e", &MoveToLastLineStartCommand{})
	r.Register('g', "h", &MoveToLineStartCommand{})
	r.Register('g', "l", &MoveToLineEndCommand{})

	// Char operators
	r.RegisterChar('r', func(ch string) Command { return &ReplaceCharCommand{char: ch} })
	r.RegisterChar('f', func(ch string) Command { return &FindCharCommand{char: ch} })
	r.RegisterChar('t', func(ch string) Command { return &FindCharCommand{char: ch, till: true} })

	return r
}
