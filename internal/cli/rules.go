package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thruflo/hanoi/internal/tui"
)

var (
	rulesWidth int
	rulesPlain bool
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Describe the game and its controls",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().IntVar(&rulesWidth, "width", 80, "Wrap text at this width")
	rulesCmd.Flags().BoolVar(&rulesPlain, "plain", false, "Print the raw markdown")
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	if rulesPlain {
		_, err := fmt.Fprint(cmd.OutOrStdout(), tui.RulesMarkdown)
		return err
	}

	rendered, err := tui.RenderRules(rulesWidth)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
	return err
}
