// Package cli implements the rulegrid command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/tsawler/rulegrid/internal/version"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rulegrid",
	Short: "Find ruled tables in PDF files",
	Long: `rulegrid detects tables in PDF files and writes their contents as CSV,
Markdown, HTML, aligned text or JSON.

The default "spreadsheet" detector finds tables drawn with ruling lines. The
"geometric" detector looks for aligned text instead and also finds tables
without borders.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("rulegrid %s\n", version.String()))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every page and detection step to stderr")
}

// Execute runs the root command. Interrupts cancel the running command
// between pages.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		stop()
		os.Exit(1)
	}
}

// logger returns a debug logger writing to the command's stderr when
// --verbose is set, and nil otherwise.
func logger(cmd *cobra.Command) *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}
