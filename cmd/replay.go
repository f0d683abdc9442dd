package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/helixdojo/internal/engine"
	"github.com/zjrosen/helixdojo/internal/presentation"
	"github.com/zjrosen/helixdojo/internal/scoring"
	"github.com/zjrosen/helixdojo/internal/session"
)

var replayJSON bool

var replayCmd = &cobra.Command{
	Use:   "replay <challenge-id> <keys>",
	Short: "Run a key script against a challenge",
	Long: `Feed a key script to a challenge without the terminal UI and report the
result. Keys are literal characters plus <Esc>, <Enter>, <Backspace>, <Tab>,
<Delete>, <Space>, <Left>, <Right>, <Up> and <Down>. Use <lt> for a literal <.

Keys after the one that solves the challenge are still counted in the log
but do not change the result.

Examples:
  helixdojo replay join-lines J
  helixdojo replay match-inside 'mi(cnew<Esc>'
  helixdojo replay add-surround 'wvems"' --json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		closeLog, err := setupLogging()
		if err != nil {
			return err
		}
		defer closeLog()

		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		c, err := catalog.ByID(args[0])
		if err != nil {
			return fmt.Errorf("replay: %w", err)
		}

		keys := engine.ParseKeys(args[1])
		s := session.New(session.WithEditorConfig(engine.Config{IndentWidth: cfg.Editor.IndentWidth}))
		defer s.Close()
		s.Load(c)
		s.HandleKeys(keys)

		var result *scoring.Result
		if r, ok := s.Result(); ok {
			result = &r
		}

		formatter := presentation.NewFormatter(cmd.OutOrStdout(), replayJSON)
		return formatter.FormatReplay(presentation.FromReplay(c, keys, s.Keystrokes(), result, s.Value()))
	},
}

func init() {
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "print JSON instead of text")
	rootCmd.AddCommand(replayCmd)
}
