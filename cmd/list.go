package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/helixdojo/internal/challenge"
	"github.com/zjrosen/helixdojo/internal/presentation"
)

var (
	listCategory string
	listJSON     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available challenges",
	Long: `List the built-in challenges together with any user packs.

Examples:
  # Everything as a table
  helixdojo list

  # One category
  helixdojo list --category surround

  # JSON for scripting
  helixdojo list --json | jq '.[].id'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}

		challenges := catalog.All()
		if cmd.Flags().Changed("category") {
			cat := challenge.Category(listCategory)
			if !cat.Valid() {
				return fmt.Errorf("unknown category %q", listCategory)
			}
			challenges = catalog.ByCategory(cat)
		}

		formatter := presentation.NewFormatter(cmd.OutOrStdout(), listJSON)
		return formatter.FormatChallenges(presentation.FromChallenges(challenges))
	},
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "only list this category (movement, selection, change, surround, multicursor)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON instead of a table")
	rootCmd.AddCommand(listCmd)
}
