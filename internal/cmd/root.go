package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var logger *slog.Logger

var rootCmd = &cobra.Command{
	Use:   "clut2dtstyle",
	Short: "Convert Hald CLUTs to darktable styles",
	Long: `clut2dtstyle converts a Hald CLUT image into a darktable .dtstyle file
by sampling the CLUT in Lab color space, fitting the samples with
darktable-chart, and trimming the resulting style down to its color checker
and tone curve operations.

ImageMagick (identify, convert) and darktable-chart must be installed; their
binaries are found on the PATH or named via --identify-bin, --convert-bin
and --chart-bin.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the CLI and returns the process exit code: 0 on success, 1 on
// any handled error, 130 when interrupted.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if ctx.Err() != nil {
			return 130
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", rootCmd.Name(), err)
		return 1
	}
	return 0
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("identify-bin", "identify", "ImageMagick identify binary")
	rootCmd.PersistentFlags().String("convert-bin", "convert", "ImageMagick convert binary")
	rootCmd.PersistentFlags().String("chart-bin", "darktable-chart", "darktable-chart binary")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"verbose", "verbose"},
		{"tools.identify", "identify-bin"},
		{"tools.convert", "convert-bin"},
		{"tools.chart", "chart-bin"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, rootCmd.PersistentFlags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("CLUT2DTSTYLE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func initLogging() {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
