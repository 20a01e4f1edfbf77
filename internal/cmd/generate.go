package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"clut2dtstyle/internal/clut"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a neutral identity Hald CLUT image",
	Long: `Generate writes the identity Hald CLUT for a level: the square image that
maps every color to itself. Apply a color grade to it in any editor and feed
the result back to convert to capture the grade as a style.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Int("level", 8, "Hald level; the image is level³ pixels on a side")
	generateCmd.Flags().StringP("output", "o", "", "Output file (default: hald_<level>.<format>)")
	generateCmd.Flags().String("format", "png", "Image format: png or tiff")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"generate.level", "level"},
		{"generate.output", "output"},
		{"generate.format", "format"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, generateCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	level := viper.GetInt("generate.level")
	format := viper.GetString("generate.format")
	output := viper.GetString("generate.output")

	if level < 1 {
		return fmt.Errorf("level must be a positive integer, got %d", level)
	}
	if format != "png" && format != "tiff" {
		return fmt.Errorf("invalid format %q: must be 'png' or 'tiff'", format)
	}
	if output == "" {
		output = fmt.Sprintf("hald_%d.%s", level, format)
	}

	if err := clut.WriteIdentity(output, level, format); err != nil {
		return err
	}

	side := level * level * level
	logger.Info("identity Hald CLUT written", "output", output, "level", level, "side", side)
	return nil
}
