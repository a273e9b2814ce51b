package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// Execute runs the CLI. A .env file in the working directory is loaded
// before any command is built so environment values feed flag defaults.
func Execute() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "contour",
		Short: "Infer titles and outlines from PDF documents",
		Long: `contour reads PDF files and infers a document title and a three-level
heading outline from font size and font weight signals, without relying
on embedded bookmarks.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level",
		getenv("CONTOUR_LOG_LEVEL", "info"), "log verbosity: debug|info|warn|error")

	cmd.AddCommand(extractCmd())
	cmd.AddCommand(batchCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the contour version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// setupLogger installs a text handler on stderr as the process default, so
// artifact output on stdout stays clean.
func setupLogger(level string) {
	var lv slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv})
	slog.SetDefault(slog.New(h))
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
