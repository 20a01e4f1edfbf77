package cmd

import (
	"github.com/spf13/cobra"

	"clut2dtstyle/internal/style"
)

var pruneCmd = &cobra.Command{
	Use:   "prune <style-file>",
	Short: "Strip unwanted operations from a dtstyle file",
	Long: `Prune removes every plugin except the color checker and tone curve from a
dtstyle file, renumbering the survivors. convert does this automatically;
prune reapplies it to an existing style in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	if err := style.Prune(args[0], nil); err != nil {
		return err
	}

	logger.Info("style pruned", "path", args[0])
	return nil
}
