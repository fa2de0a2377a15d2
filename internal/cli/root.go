package cli

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "hanoi",
	Short: "Play and solve the Towers of Hanoi in the terminal",
	Long: `Hanoi is a Towers of Hanoi game for the terminal. Move the stack of
disks from the first peg to the third, one disk at a time, never placing a
larger disk on a smaller one. The built-in solver plays the optimal sequence
when you give up.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("hanoi version {{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
