package engine

// ModeKind is the active editing mode.
type ModeKind int

const (
	// ModeNormal moves the cursor and runs commands.
	ModeNormal ModeKind = iota
	// ModeInsert types text at every insertion point.
	ModeInsert
	// ModeSelect extends the primary selection as the cursor moves.
	ModeSelect
	// ModeMatch waits for a match or surround sub-command.
	ModeMatch
)

// MatchPending is the sub-command typed after m, waiting for a delimiter.
type MatchPending int

const (
	MatchNone MatchPending = iota
	MatchInside
	MatchAround
	MatchSurround
	MatchDelete
)

func (p MatchPending) key() string {
	switch p {
	case MatchInside:
		return "i"
	case MatchAround:
		return "a"
	case MatchSurround:
		return "s"
	case MatchDelete:
		return "d"
	default:
		return ""
	}
}

// Mode is the tagged mode value. LineWise only applies to ModeSelect and
// Pending only to ModeMatch.
type Mode struct {
	Kind     ModeKind
	LineWise bool
	Pending  MatchPending
}

// String returns the status line label.
func (m Mode) String() string {
	switch m.Kind {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeSelect:
		if m.LineWise {
			return "SELECT LINE"
		}
		return "SELECT"
	case ModeMatch:
		switch m.Pending {
		case MatchInside:
			return "MATCH I"
		case MatchAround:
			return "MATCH A"
		case MatchSurround:
			return "MATCH S"
		case MatchDelete:
			return "MATCH D"
		default:
			return "MATCH"
		}
	default:
		return "UNKNOWN"
	}
}

func normalMode() Mode { return Mode{Kind: ModeNormal} }
func insertMode() Mode { return Mode{Kind: ModeInsert} }
func matchMode() Mode  { return Mode{Kind: ModeMatch} }

func selectMode(lineWise bool) Mode {
	return Mode{Kind: ModeSelect, LineWise: lineWise}
}

// Transition returns the mode that follows key in mode m and whether the
// key has any meaning there. Unconsumed keys leave the mode unchanged.
// Text and selection effects belong to the commands in the registry;
// this function only decides the next mode.
func Transition(m Mode, key string) (Mode, bool) {
	if key == KeyEscape {
		return normalMode(), true
	}

	switch m.Kind {
	case ModeNormal:
		switch key {
		case "i", "a", "I", "A", "o", "O", "c":
			return insertMode(), true
		case "v":
			return selectMode(false), true
		case "V":
			return selectMode(true), true
		case "m":
			return matchMode(), true
		}
	case ModeInsert:
		if _, ok := CharKey(key); ok {
			return m, true
		}
	case ModeSelect:
		switch key {
		case "c":
			return insertMode(), true
		case "m":
			return matchMode(), true
		case "v":
			if m.LineWise {
				return selectMode(false), true
			}
			return normalMode(), true
		case "V":
			if !m.LineWise {
				return selectMode(true), true
			}
			return normalMode(), true
		case "d", "y", "~", ">", "<", "J", "p", "P":
			return normalMode(), true
		}
	case ModeMatch:
		if m.Pending == MatchNone {
			switch key {
			case "i":
				return Mode{Kind: ModeMatch, Pending: MatchInside}, true
			case "a":
				return Mode{Kind: ModeMatch, Pending: MatchAround}, true
			case "s":
				return Mode{Kind: ModeMatch, Pending: MatchSurround}, true
			case "d":
				return Mode{Kind: ModeMatch, Pending: MatchDelete}, true
			}
			return m, false
		}
		if _, ok := CharKey(key); ok {
			return normalMode(), true
		}
		return m, false
	}

	_, ok := DefaultRegistry.Get(m.Kind, key)
	return m, ok
}
