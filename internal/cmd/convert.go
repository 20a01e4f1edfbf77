package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"clut2dtstyle/internal/chart"
	"clut2dtstyle/internal/extract"
	"clut2dtstyle/internal/pipeline"
)

var convertCmd = &cobra.Command{
	Use:   "convert <clut-file>",
	Short: "Convert a Hald CLUT image to a darktable style",
	Long: `Convert samples the Hald CLUT and a matching neutral CLUT in Lab space,
writes the paired samples as a patch table, fits them with darktable-chart,
and prunes the fitted style to its color checker and tone curve.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().IntP("number", "n", 64, "Number of input points along an axis used for fitting the color chart and the tone curve")
	convertCmd.Flags().IntP("patches", "p", 49, fmt.Sprintf("Number of patches in the output color chart (%d-%d)", chart.MinPatches, chart.MaxPatches))
	convertCmd.Flags().StringP("title", "t", "", "Title of the generated darktable style (default: input basename)")
	convertCmd.Flags().StringP("output", "o", "", "Output file (default: input path with .dtstyle extension)")
	convertCmd.Flags().String("pixel-format", "pfm", "Lab pixel dump format requested from the converter (pfm, txt)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"convert.number", "number"},
		{"convert.patches", "patches"},
		{"convert.title", "title"},
		{"convert.output", "output"},
		{"convert.pixel_format", "pixel-format"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, convertCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	number := viper.GetInt("convert.number")
	patches := viper.GetInt("convert.patches")

	// Reject bad parameters before any external tool runs.
	if number < 1 {
		return fmt.Errorf("number must be a positive integer, got %d", number)
	}
	if patches < chart.MinPatches || patches > chart.MaxPatches {
		return fmt.Errorf("patches must be an integer between %d and %d", chart.MinPatches, chart.MaxPatches)
	}

	conv, err := pipeline.NewConverter(extract.ExecRunner{}, pipeline.Config{
		Number:      number,
		Patches:     patches,
		Title:       viper.GetString("convert.title"),
		Output:      viper.GetString("convert.output"),
		PixelFormat: viper.GetString("convert.pixel_format"),
		IdentifyBin: viper.GetString("tools.identify"),
		ConvertBin:  viper.GetString("tools.convert"),
		ChartBin:    viper.GetString("tools.chart"),
	}, logger)
	if err != nil {
		return err
	}

	output, err := conv.Convert(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	logger.Info("style written", "output", output)
	return nil
}
