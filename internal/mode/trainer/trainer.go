// Package trainer is the terminal front end: a challenge menu, the play
// screen that feeds keys into a session, and the completion panel.
package trainer

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/helixdojo/internal/challenge"
	"github.com/zjrosen/helixdojo/internal/config"
	"github.com/zjrosen/helixdojo/internal/engine"
	"github.com/zjrosen/helixdojo/internal/keys"
	"github.com/zjrosen/helixdojo/internal/log"
	"github.com/zjrosen/helixdojo/internal/progress"
	"github.com/zjrosen/helixdojo/internal/pubsub"
	"github.com/zjrosen/helixdojo/internal/session"
	"github.com/zjrosen/helixdojo/internal/ui/markdown"
	"github.com/zjrosen/helixdojo/internal/ui/toaster"
)

// DefaultSandboxText is loaded when the sandbox starts without text.
const DefaultSandboxText = `// Welcome to the helixdojo sandbox!
// Practice freely, nothing is scored here.
//   - hjkl for movement
//   - x to select lines
//   - v for select mode
//   - i to insert
//   - Esc to return to normal mode

function example() {
    const message = "Hello, Helix!";
    console.log(message);
    return message;
}`

type screen int

const (
	screenMenu screen = iota
	screenPlay
	screenResult
)

// Start chooses what the trainer opens with.
type Start struct {
	ChallengeID string
	Sandbox     bool
	SandboxText string
}

// Options configures the trainer.
type Options struct {
	Catalog *challenge.Catalog
	Board   *progress.Board
	Config  config.Config
	// ConfigPath is where UI toggles are saved. Empty disables saving.
	ConfigPath string
	// PackChanges signals that challenge packs should be reloaded.
	PackChanges <-chan struct{}
	Clock       func() time.Time
	Tracer      trace.Tracer
	Start       Start
}

type (
	tickMsg         time.Time
	packsChangedMsg struct{}
	packsLoadedMsg  struct {
		catalog *challenge.Catalog
		err     error
	}
)

// Model is the bubbletea model for the trainer.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	catalog *challenge.Catalog
	board   *progress.Board
	session *session.Session
	events  *pubsub.ContinuousListener[session.Event]
	logs    *log.LogListener
	changes <-chan struct{}

	cfg        config.Config
	configPath string

	screen   screen
	category int
	cursor   int

	showTarget   bool
	showKeyGuide bool
	showHelp     bool
	hints        []string
	newBest      bool
	lastLog      string

	toast   toaster.Model
	startup tea.Cmd

	help     help.Model
	markdown *markdown.Renderer
	width    int
	height   int
}

// New builds the trainer and loads the start screen.
func New(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())
	broker := pubsub.NewBroker[session.Event]()

	sessOpts := []session.Option{
		session.WithBroker(broker),
		session.WithCatalog(opts.Catalog),
		session.WithEditorConfig(engine.Config{IndentWidth: opts.Config.Editor.IndentWidth}),
	}
	if opts.Clock != nil {
		sessOpts = append(sessOpts, session.WithClock(opts.Clock))
	}
	if opts.Tracer != nil {
		sessOpts = append(sessOpts, session.WithTracer(opts.Tracer))
	}

	board := opts.Board
	if board == nil {
		board = progress.NewBoard(0)
	}

	m := Model{
		ctx:          ctx,
		cancel:       cancel,
		catalog:      opts.Catalog,
		board:        board,
		session:      session.New(sessOpts...),
		events:       pubsub.NewContinuousListener(ctx, broker),
		logs:         log.NewListener(ctx),
		changes:      opts.PackChanges,
		toast:        toaster.New(),
		cfg:          opts.Config,
		configPath:   opts.ConfigPath,
		showTarget:   opts.Config.UI.ShowTarget,
		showKeyGuide: opts.Config.UI.ShowKeyGuide,
		help:         help.New(),
		width:        100,
		height:       30,
	}
	m.markdown = m.newRenderer()

	switch {
	case opts.Start.Sandbox:
		text := opts.Start.SandboxText
		if text == "" {
			text = DefaultSandboxText
		}
		m.session.LoadSandbox(text)
		m.screen = screenPlay
	case opts.Start.ChallengeID != "":
		if c, err := opts.Catalog.ByID(opts.Start.ChallengeID); err == nil {
			m.startChallenge(c)
		} else {
			m.toast, m.startup = m.toast.Show(err.Error(), toaster.StyleError, toaster.DefaultDuration)
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick(), m.events.Listen()}
	if m.logs != nil {
		cmds = append(cmds, m.logs.Listen())
	}
	if m.changes != nil {
		cmds = append(cmds, waitForPacks(m.changes))
	}
	if m.startup != nil {
		cmds = append(cmds, m.startup)
	}
	return tea.Batch(cmds...)
}

// Session exposes the live session, mainly for tests.
func (m Model) Session() *session.Session { return m.session }

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func waitForPacks(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return packsChangedMsg{}
	}
}

func (m Model) reloadPacks() tea.Cmd {
	dir := m.cfg.Challenges.Dir
	return func() tea.Msg {
		catalog, err := challenge.Load(dir)
		return packsLoadedMsg{catalog: catalog, err: err}
	}
}

func (m Model) newRenderer() *markdown.Renderer {
	r, err := markdown.New(max(m.sideWidth()-4, 20), m.cfg.UI.MarkdownStyle)
	if err != nil {
		log.ErrorErr(log.CatUI, "Markdown renderer unavailable", err)
		return nil
	}
	return r
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.markdown = m.newRenderer()
		return m, nil

	case tickMsg:
		return m, tick()

	case toaster.DismissMsg:
		m.toast = m.toast.Update(msg)
		return m, nil

	case pubsub.Event[session.Event]:
		if msg.Type == pubsub.CompletedEvent && msg.Payload.Result != nil {
			m.newBest = m.board.Record(msg.Payload.ChallengeID, *msg.Payload.Result)
		}
		return m, m.events.Listen()

	case pubsub.Event[string]:
		m.lastLog = msg.Payload
		return m, m.logs.Listen()

	case packsChangedMsg:
		return m, tea.Batch(m.reloadPacks(), waitForPacks(m.changes))

	case packsLoadedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatCatalog, "Reloading packs failed", msg.err)
			return m.notify("pack reload failed: "+msg.err.Error(), toaster.StyleError)
		}
		m.catalog = msg.catalog
		m.session.SetCatalog(msg.catalog)
		m.category, m.cursor = 0, 0
		log.Info(log.CatCatalog, "Reloaded packs", "challenges", msg.catalog.Len())
		return m.notify("challenge packs reloaded", toaster.StyleSuccess)

	case tea.KeyMsg:
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenPlay:
			return m.updatePlay(msg)
		case screenResult:
			return m.updateResult(msg)
		}
	}
	return m, nil
}

func (m Model) notify(message string, style toaster.Style) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.toast, cmd = m.toast.Show(message, style, toaster.DefaultDuration)
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.session.Close()
	m.cancel()
	return m, tea.Quit
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cats := m.catalog.Categories()
	var list []challenge.Challenge
	if len(cats) > 0 {
		list = m.catalog.ByCategory(cats[m.category])
	}

	switch {
	case key.Matches(msg, keys.Menu.Quit):
		return m.quit()
	case key.Matches(msg, keys.Menu.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, keys.Menu.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Menu.Down):
		if m.cursor < len(list)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Menu.NextSection):
		if len(cats) > 0 {
			m.category = (m.category + 1) % len(cats)
			m.cursor = 0
		}
	case key.Matches(msg, keys.Menu.PrevSection):
		if len(cats) > 0 {
			m.category = (m.category + len(cats) - 1) % len(cats)
			m.cursor = 0
		}
	case key.Matches(msg, keys.Menu.Start):
		if m.cursor < len(list) {
			m.startChallenge(list[m.cursor])
		}
	case key.Matches(msg, keys.Menu.Sandbox):
		m.session.LoadSandbox(DefaultSandboxText)
		m.hints = nil
		m.screen = screenPlay
	}
	return m, nil
}

func (m *Model) startChallenge(c challenge.Challenge) {
	m.session.Load(c)
	m.hints = nil
	m.newBest = false
	m.screen = screenPlay
	m.selectInMenu(c.ID)
}

// selectInMenu points the menu cursor at id so returning to the menu
// lands on the last played challenge.
func (m *Model) selectInMenu(id string) {
	for ci, cat := range m.catalog.Categories() {
		for i, c := range m.catalog.ByCategory(cat) {
			if c.ID == id {
				m.category, m.cursor = ci, i
				return
			}
		}
	}
}

func (m Model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Play.Quit):
		return m.quit()
	case key.Matches(msg, keys.Play.Menu):
		m.screen = screenMenu
		return m, nil
	case key.Matches(msg, keys.Play.Hint):
		if hint, ok := m.session.UseHint(); ok {
			m.hints = append(m.hints, hint)
		}
		return m, nil
	case key.Matches(msg, keys.Play.Reset):
		m.session.Reset()
		m.hints = nil
		return m, nil
	case key.Matches(msg, keys.Play.Next):
		return m.next()
	case key.Matches(msg, keys.Play.ToggleTarget):
		m.showTarget = !m.showTarget
		return m.save("ui.show_target", m.showTarget)
	case key.Matches(msg, keys.Play.KeyGuide):
		m.showKeyGuide = !m.showKeyGuide
		return m.save("ui.show_key_guide", m.showKeyGuide)
	}

	for _, k := range engineKeys(msg) {
		m.session.HandleKey(k)
		if m.session.Completed() {
			m.screen = screenResult
			break
		}
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Result.Quit):
		return m.quit()
	case key.Matches(msg, keys.Result.Next):
		return m.next()
	case key.Matches(msg, keys.Result.Retry):
		m.session.Reset()
		m.hints = nil
		m.newBest = false
		m.screen = screenPlay
	case key.Matches(msg, keys.Result.Menu):
		m.screen = screenMenu
	}
	return m, nil
}

func (m Model) next() (tea.Model, tea.Cmd) {
	c, ok, err := m.session.Next()
	if err != nil || !ok {
		m.screen = screenMenu
		return m.notify("that was the last challenge", toaster.StyleInfo)
	}
	m.hints = nil
	m.newBest = false
	m.screen = screenPlay
	m.selectInMenu(c.ID)
	return m, nil
}

// save persists a UI toggle. Failures are logged and shown, never fatal.
func (m Model) save(setting string, value bool) (tea.Model, tea.Cmd) {
	if m.configPath == "" {
		return m, nil
	}
	if err := config.SaveSetting(m.configPath, setting, value); err != nil {
		log.ErrorErr(log.CatConfig, "Saving setting failed", err, "key", setting)
		return m.notify("could not save "+setting, toaster.StyleError)
	}
	return m, nil
}

// engineKeys converts a terminal key message into engine key events.
// Pasted text arrives as several runes and becomes one key per rune.
func engineKeys(msg tea.KeyMsg) []string {
	switch msg.Type {
	case tea.KeyEsc:
		return []string{engine.KeyEscape}
	case tea.KeyEnter:
		return []string{engine.KeyEnter}
	case tea.KeyBackspace:
		return []string{engine.KeyBackspace}
	case tea.KeyDelete:
		return []string{engine.KeyDelete}
	case tea.KeyTab:
		return []string{engine.KeyTab}
	case tea.KeyLeft:
		return []string{engine.KeyLeft}
	case tea.KeyRight:
		return []string{engine.KeyRight}
	case tea.KeyUp:
		return []string{engine.KeyUp}
	case tea.KeyDown:
		return []string{engine.KeyDown}
	case tea.KeySpace:
		return []string{" "}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		out := make([]string, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, string(r))
		}
		return out
	}
	return nil
}
