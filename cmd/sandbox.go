package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/helixdojo/internal/mode/trainer"
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox [text]",
	Short: "Open the free editor with no target",
	Long: `Launch the editor without a challenge. Nothing is scored; use it to try
keys out. The text defaults to a short sample.`,
	RunE: runSandbox,
}

func init() {
	rootCmd.AddCommand(sandboxCmd)
}

func runSandbox(cmd *cobra.Command, args []string) error {
	return runTrainer(trainer.Start{
		Sandbox:     true,
		SandboxText: strings.Join(args, " "),
	})
}
