package cli

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/rulegrid"
	"github.com/tsawler/rulegrid/reader"
	"github.com/tsawler/rulegrid/render"
	"github.com/tsawler/rulegrid/tables"
)

var (
	renderPages    string
	renderDetector string
	renderScale    float64
	renderDir      string
)

var renderCmd = &cobra.Command{
	Use:   "render <file.pdf>",
	Short: "Draw rulings and detected regions to PNG",
	Long: `Write one PNG per selected page showing word boxes in blue, rulings in grey
and detected table regions outlined in red, with a new hue for each further
region on the page. Files are named <name>-page<N>.png.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if tables.NewDetector(renderDetector) == nil {
			return fmt.Errorf("%w: %q", rulegrid.ErrUnknownDetector, renderDetector)
		}

		r, err := reader.Open(args[0])
		if err != nil {
			return err
		}
		defer r.Close()

		numbers, err := selectPages(renderPages, r.PageCount())
		if err != nil {
			return err
		}

		config := tables.DefaultConfig()
		config.Logger = logger(cmd)
		base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))

		for _, n := range numbers {
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			page, err := r.Page(n)
			if errors.Is(err, reader.ErrMalformedContent) {
				printWarnings(cmd.ErrOrStderr(), []rulegrid.Warning{{Page: n, Message: "page skipped", Err: err}})
				continue
			}
			if err != nil {
				return err
			}

			d := tables.NewDetector(renderDetector)
			if err := d.Configure(config); err != nil {
				return err
			}
			regions, err := d.Detect(page)
			if err != nil {
				return fmt.Errorf("page %d: %w", n, err)
			}

			name := filepath.Join(renderDir, fmt.Sprintf("%s-page%d.png", base, n))
			if err := writePNG(name, render.Page(page, regions, renderScale)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s %s\n",
				successStyle.Render("wrote"), name,
				dimStyle.Render(fmt.Sprintf("(%s)", plural(len(regions), "region"))))
		}
		return nil
	},
}

// selectPages returns the pages in list, or every page when list is
// empty.
func selectPages(list string, count int) ([]int, error) {
	if list == "" {
		numbers := make([]int, count)
		for i := range numbers {
			numbers[i] = i + 1
		}
		return numbers, nil
	}
	return parsePages(list, count)
}

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := render.WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	renderCmd.Flags().StringVarP(&renderPages, "pages", "p", "", "Pages to render, e.g. 1,3-5 (default all)")
	renderCmd.Flags().StringVarP(&renderDetector, "detector", "d", tables.SpreadsheetName, "Detection algorithm ("+strings.Join(tables.ListDetectors(), ", ")+")")
	renderCmd.Flags().Float64VarP(&renderScale, "scale", "s", 2, "Pixels per point")
	renderCmd.Flags().StringVar(&renderDir, "dir", ".", "Directory for the PNG files")

	rootCmd.AddCommand(renderCmd)
}
