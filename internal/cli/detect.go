package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/rulegrid/tables"
)

var (
	detectPages    string
	detectDetector string
	detectWorkers  int
)

var detectCmd = &cobra.Command{
	Use:   "detect <file.pdf>",
	Short: "List table regions page by page",
	Long:  `Print the rectangle of every table region on the selected pages, top of the page first. Coordinates are in points from the top-left corner.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ext, err := newExtractor(cmd, args[0], detectPages, detectDetector, detectWorkers)
		if err != nil {
			return err
		}

		pages, warnings, err := ext.Regions(cmd.Context())
		if err != nil {
			return err
		}
		printWarnings(cmd.ErrOrStderr(), warnings)

		w := cmd.OutOrStdout()
		for _, p := range pages {
			fmt.Fprintf(w, "%s %s\n",
				titleStyle.Render(fmt.Sprintf("page %d", p.Page)),
				dimStyle.Render(plural(len(p.Regions), "region")))
			for i, r := range p.Regions {
				fmt.Fprintf(w, "  %d. %s\n", i+1, formatBox(r))
			}
		}
		return nil
	},
}

func init() {
	detectCmd.Flags().StringVarP(&detectPages, "pages", "p", "", "Pages to process, e.g. 1,3-5 (default all)")
	detectCmd.Flags().StringVarP(&detectDetector, "detector", "d", tables.SpreadsheetName, "Detection algorithm ("+strings.Join(tables.ListDetectors(), ", ")+")")
	detectCmd.Flags().IntVarP(&detectWorkers, "workers", "w", 0, "Pages processed at once (0 = one per CPU)")

	rootCmd.AddCommand(detectCmd)
}
