// Package challenge holds the challenge catalog: the built-in set embedded
// in the binary plus optional user packs read from a directory of YAML
// files.
package challenge

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when no challenge has the requested id.
	ErrNotFound = errors.New("challenge not found")
	// ErrDuplicateID is returned when one file defines an id twice.
	ErrDuplicateID = errors.New("duplicate challenge id")
)

// Difficulty grades a challenge.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// Category groups challenges by the skill they practise.
type Category string

const (
	Movement    Category = "movement"
	Selection   Category = "selection"
	Change      Category = "change"
	Surround    Category = "surround"
	MultiCursor Category = "multicursor"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{Movement, Selection, Change, Surround, MultiCursor}

// Label returns the menu heading for c.
func (c Category) Label() string {
	if c == MultiCursor {
		return "Multi-cursor"
	}
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Source says where a challenge was loaded from.
type Source string

const (
	SourceBuiltin Source = "builtin"
	SourceUser    Source = "user"
)

// Challenge is one exercise: turn Initial into Target.
type Challenge struct {
	ID                string
	Name              string
	Description       string
	Difficulty        Difficulty
	Category          Category
	Initial           string
	Target            string
	Hints             []string
	OptimalKeystrokes int
	Source            Source
}

// validate checks the fields a loaded challenge must have.
func (c Challenge) validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("challenge %s: name is required", c.ID)
	}
	if !c.Difficulty.Valid() {
		return fmt.Errorf("challenge %s: unknown difficulty %q", c.ID, c.Difficulty)
	}
	if !c.Category.Valid() {
		return fmt.Errorf("challenge %s: unknown category %q", c.ID, c.Category)
	}
	if c.OptimalKeystrokes < 0 {
		return fmt.Errorf("challenge %s: optimal_keystrokes must not be negative", c.ID)
	}
	for i, h := range c.Hints {
		if strings.TrimSpace(h) == "" {
			return fmt.Errorf("challenge %s: hint %d is empty", c.ID, i+1)
		}
	}
	return nil
}
