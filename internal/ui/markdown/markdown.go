// Package markdown provides styled markdown rendering for the TUI.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with a fixed style and wrap width.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// New creates a renderer. style is "dark" or "light", empty means dark.
// A fixed style is used instead of auto detection, which queries the
// terminal and can leak responses into the input stream.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return &Renderer{renderer: r, width: width, style: style}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Style returns the glamour style name.
func (r *Renderer) Style() string {
	return r.style
}

// Render transforms markdown to styled terminal output with trailing
// blank lines removed.
func (r *Renderer) Render(markdown string) (string, error) {
	out, err := r.renderer.Render(markdown)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n "), nil
}

// KeyGuide is the reference card shown beside the editor.
const KeyGuide = `## Keys

**Movement** ` + "`h` `j` `k` `l`" + ` or arrows, ` + "`w` `b` `e`" + ` words,
` + "`0` `$`" + ` line ends, ` + "`gg` `G` `ge` `gh` `gl`" + `, ` + "`f<c>` `t<c>`" + ` find

**Selection** ` + "`x`" + ` line (repeat grows), ` + "`X`" + ` full lines,
` + "`v` `V`" + ` select mode, ` + "`;`" + ` collapse, ` + "`,`" + ` keep primary,
` + "`C`" + ` copy selection down

**Change** ` + "`d` `c` `r<c>` `y` `p` `P` `~` `>` `<` `J` `o` `O`" + `

**Insert** ` + "`i` `a` `I` `A`" + `, ` + "`Esc`" + ` back to normal

**Match** ` + "`mi<d>`" + ` inside, ` + "`ma<d>`" + ` around,
` + "`ms<d>`" + ` add surround, ` + "`md<d>`" + ` delete surround
`
