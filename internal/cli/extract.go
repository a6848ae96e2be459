package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/rulegrid/export"
	"github.com/tsawler/rulegrid/tables"
)

var (
	extractFormat   string
	extractOutput   string
	extractPages    string
	extractDetector string
	extractWorkers  int
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Extract tables and write their contents",
	Long: `Extract every table found on the selected pages and write the tables to
stdout or to the file given with --output. Without --format the format is
taken from $RULEGRID_FORMAT, then from the output file extension, and
defaults to CSV.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(extractFormat, extractOutput)
		if err != nil {
			return err
		}
		ext, err := newExtractor(cmd, args[0], extractPages, extractDetector, extractWorkers)
		if err != nil {
			return err
		}

		found, warnings, err := ext.Tables(cmd.Context())
		if err != nil {
			return err
		}
		printWarnings(cmd.ErrOrStderr(), warnings)

		if extractOutput == "" {
			return export.Write(cmd.OutOrStdout(), found, format)
		}

		f, err := os.Create(extractOutput)
		if err != nil {
			return err
		}
		if err := export.Write(f, found, format); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s %s\n",
			successStyle.Render("wrote"), extractOutput,
			dimStyle.Render(fmt.Sprintf("(%s, %s)", plural(len(found), "table"), format)))
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "", "Output format ("+strings.Join(export.Formats(), ", ")+")")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Write to this file instead of stdout")
	extractCmd.Flags().StringVarP(&extractPages, "pages", "p", "", "Pages to process, e.g. 1,3-5 (default all)")
	extractCmd.Flags().StringVarP(&extractDetector, "detector", "d", tables.SpreadsheetName, "Detection algorithm ("+strings.Join(tables.ListDetectors(), ", ")+")")
	extractCmd.Flags().IntVarP(&extractWorkers, "workers", "w", 0, "Pages processed at once (0 = one per CPU)")

	rootCmd.AddCommand(extractCmd)
}
