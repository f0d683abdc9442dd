package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/helixdojo/internal/challenge"
	"github.com/zjrosen/helixdojo/internal/config"
	"github.com/zjrosen/helixdojo/internal/log"
	"github.com/zjrosen/helixdojo/internal/mode/trainer"
	"github.com/zjrosen/helixdojo/internal/progress"
	"github.com/zjrosen/helixdojo/internal/tracing"
	"github.com/zjrosen/helixdojo/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// localConfigPath is checked before the user config directory.
const localConfigPath = ".helixdojo/config.yaml"

var (
	version     = "dev"
	cfgFile     string
	debug       bool
	challengeID string
	cfg         config.Config
)

var rootCmd = &cobra.Command{
	Use:   "helixdojo",
	Short: "Practice Helix editor keybindings in the terminal",
	Long: `helixdojo is a terminal trainer for Helix-style modal editing.

Pick a challenge, transform the starting text into the target with as few
keystrokes as you can, and earn up to three stars.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: validateConfig,
	RunE:              runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/helixdojo/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write a debug log (also enabled by "+log.EnvDebug+")")
	rootCmd.Flags().StringVar(&challengeID, "challenge", "",
		"open this challenge instead of the menu")
}

// userConfigPath is the config file in the user's config directory.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return localConfigPath
	}
	return filepath.Join(home, ".config", "helixdojo", "config.yaml")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("editor.indent_width", defaults.Editor.IndentWidth)
	viper.SetDefault("challenges.dir", defaults.Challenges.Dir)
	viper.SetDefault("challenges.watch", defaults.Challenges.Watch)
	viper.SetDefault("challenges.watch_debounce", defaults.Challenges.WatchDebounce)
	viper.SetDefault("ui.show_target", defaults.UI.ShowTarget)
	viper.SetDefault("ui.show_key_guide", defaults.UI.ShowKeyGuide)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("log.path", defaults.Log.Path)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	switch {
	case cfgFile != "":
		// An explicit path that does not exist yet gets the default file.
		if _, err := os.Stat(cfgFile); errors.Is(err, os.ErrNotExist) {
			_ = config.WriteDefaultConfig(cfgFile)
		}
		viper.SetConfigFile(cfgFile)
	default:
		// Config lookup order:
		// 1. .helixdojo/config.yaml (current directory)
		// 2. ~/.config/helixdojo/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			viper.AddConfigPath(filepath.Dir(userConfigPath()))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// No config file found anywhere - create the user default
			defaultPath := userConfigPath()
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	cfg = config.Config{}
	_ = viper.Unmarshal(&cfg)
}

// validateConfig rejects bad configuration before anything starts.
func validateConfig(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// setupLogging opens the debug log when requested. The returned func is
// always safe to call.
func setupLogging() (func(), error) {
	if !log.DebugRequested(debug) {
		return func() {}, nil
	}
	closeLog, err := log.InitWithTeaLog(cfg.Log.Path, "helixdojo")
	if err != nil {
		return nil, fmt.Errorf("initializing debug log: %w", err)
	}
	log.Info(log.CatConfig, "Configuration loaded", "file", viper.ConfigFileUsed())
	return closeLog, nil
}

// setupTracing builds the tracer provider from the tracing section.
func setupTracing() (*tracing.Provider, error) {
	tc := tracing.DefaultConfig()
	tc.Enabled = cfg.Tracing.Enabled
	if cfg.Tracing.Exporter != "" {
		tc.Exporter = cfg.Tracing.Exporter
	}
	tc.FilePath = cfg.Tracing.FilePath
	if tc.FilePath == "" {
		tc.FilePath = config.DefaultTracesFilePath()
	}
	if cfg.Tracing.OTLPEndpoint != "" {
		tc.OTLPEndpoint = cfg.Tracing.OTLPEndpoint
	}
	if cfg.Tracing.SampleRate > 0 {
		tc.SampleRate = cfg.Tracing.SampleRate
	}

	provider, err := tracing.NewProvider(tc)
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	return provider, nil
}

// loadCatalog returns the built-in challenges merged with the user packs.
func loadCatalog() (*challenge.Catalog, error) {
	catalog, err := challenge.Load(cfg.Challenges.Dir)
	if err != nil {
		return nil, fmt.Errorf("loading challenges: %w", err)
	}
	return catalog, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	return runTrainer(trainer.Start{ChallengeID: challengeID})
}

// runTrainer wires logging, tracing, the catalog and the pack watcher
// around one trainer program.
func runTrainer(start trainer.Start) (err error) {
	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	provider, err := setupTracing()
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := provider.Shutdown(ctx); shutdownErr != nil && err == nil {
			err = shutdownErr
		}
	}()

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}
	if start.ChallengeID != "" {
		if _, err := catalog.ByID(start.ChallengeID); err != nil {
			return fmt.Errorf("--challenge: %w", err)
		}
	}

	var changes <-chan struct{}
	if cfg.Challenges.Dir != "" && cfg.Challenges.Watch {
		w, err := watcher.New(watcher.Config{Dir: cfg.Challenges.Dir, Debounce: cfg.Challenges.WatchDebounce})
		if err != nil {
			return fmt.Errorf("creating pack watcher: %w", err)
		}
		changes, err = w.Start()
		if err != nil {
			// A missing pack directory only disables reloading.
			log.ErrorErr(log.CatWatcher, "Pack watcher not started", err)
			_ = w.Stop()
			changes = nil
		} else {
			defer func() { _ = w.Stop() }()
		}
	}

	model := trainer.New(trainer.Options{
		Catalog:     catalog,
		Board:       progress.NewBoard(0),
		Config:      cfg,
		ConfigPath:  viper.ConfigFileUsed(),
		PackChanges: changes,
		Tracer:      provider.Tracer(),
		Start:       start,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
