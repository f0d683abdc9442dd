package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Named control keys. Every other key is the literal character it types.
const (
	KeyEscape    = "Escape"
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"
	KeyEnter     = "Enter"
	KeyTab       = "Tab"
	KeyLeft      = "ArrowLeft"
	KeyRight     = "ArrowRight"
	KeyUp        = "ArrowUp"
	KeyDown      = "ArrowDown"
)

// CharKey returns the text a key types when it is a single printable
// grapheme.
func CharKey(key string) (string, bool) {
	if key == "" || graphemeCount(key) != 1 {
		return "", false
	}
	r, _ := utf8.DecodeRuneInString(key)
	if unicode.IsControl(r) {
		return "", false
	}
	return key, true
}

var namedKeys = map[string]string{
	"escape":    KeyEscape,
	"esc":       KeyEscape,
	"enter":     KeyEnter,
	"cr":        KeyEnter,
	"backspace": KeyBackspace,
	"bs":        KeyBackspace,
	"delete":    KeyDelete,
	"del":       KeyDelete,
	"tab":       KeyTab,
	"space":     " ",
	"left":      KeyLeft,
	"right":     KeyRight,
	"up":        KeyUp,
	"down":      KeyDown,
	"lt":        "<",
	"gt":        ">",
}

// ParseKeys splits a key script into key events. Each grapheme is one key
// except <Name> tokens for named keys, matched case-insensitively:
// <Escape>/<Esc>, <Enter>/<CR>, <Backspace>/<BS>, <Delete>/<Del>, <Tab>,
// <Space>, <Left>, <Right>, <Up>, <Down>, <lt> and <gt>. A "<" that does
// not open a known token is the literal key.
func ParseKeys(script string) []string {
	gs := graphemes(script)
	keys := make([]string, 0, len(gs))
	for i := 0; i < len(gs); i++ {
		if gs[i] == "<" {
			if key, n, ok := namedToken(gs[i+1:]); ok {
				keys = append(keys, key)
				i += n
				continue
			}
		}
		keys = append(keys, gs[i])
	}
	return keys
}

// namedToken looks for "Name>" at the start of gs and returns the key and
// the number of graphemes consumed.
func namedToken(gs []string) (string, int, bool) {
	var name strings.Builder
	for i, g := range gs {
		if g == ">" {
			key, ok := namedKeys[strings.ToLower(name.String())]
			return key, i + 1, ok
		}
		if i >= 10 {
			break
		}
		name.WriteString(g)
	}
	return "", 0, false
}
