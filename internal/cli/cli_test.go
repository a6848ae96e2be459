package cli

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/rulegrid"
	"github.com/tsawler/rulegrid/export"
	"github.com/tsawler/rulegrid/internal/testpdf"
	"github.com/tsawler/rulegrid/reader"
	"github.com/tsawler/rulegrid/tables"
)

// samplePDF writes a two-page document: a 2x2 ruled table with text on
// page 1 and a blank page 2.
func samplePDF(t *testing.T) string {
	t.Helper()
	page1 := testpdf.Letter(
		testpdf.Grid([]float64{100, 200, 300}, []float64{500, 550, 600}),
		testpdf.Text(110, 570, 10, "Name"),
		testpdf.Text(210, 570, 10, "Qty"),
		testpdf.Text(110, 520, 10, "Bolt"),
		testpdf.Text(210, 520, 10, "12"),
	)
	path := filepath.Join(t.TempDir(), "parts.pdf")
	if err := testpdf.WriteFile(path, page1, testpdf.Letter()); err != nil {
		t.Fatalf("failed to create test PDF: %v", err)
	}
	return path
}

// execute runs the root command with fresh flag values.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	verbose = false
	extractFormat, extractOutput, extractPages = "", "", ""
	extractDetector, extractWorkers = tables.SpreadsheetName, 0
	detectPages, detectDetector, detectWorkers = "", tables.SpreadsheetName, 0
	renderPages, renderDetector, renderScale, renderDir = "", tables.SpreadsheetName, 2, "."

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestExtractCSV(t *testing.T) {
	t.Setenv(formatEnv, "")
	out, _, err := execute(t, "extract", samplePDF(t))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if want := "Name,Qty\nBolt,12\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestExtractFormats(t *testing.T) {
	path := samplePDF(t)
	tests := []struct {
		format string
		want   string
	}{
		{"markdown", "| Name | Qty |"},
		{"html", "<th>Name</th>"},
		{"json", `"text": "Bolt"`},
		{"text", "| Name | Qty |"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, _, err := execute(t, "extract", "--format", tt.format, path)
			if err != nil {
				t.Fatalf("extract failed: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestExtractToFile(t *testing.T) {
	t.Setenv(formatEnv, "")
	output := filepath.Join(t.TempDir(), "parts.md")

	out, stderr, err := execute(t, "extract", "-o", output, samplePDF(t))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want nothing", out)
	}
	if !strings.Contains(stderr, output) || !strings.Contains(stderr, "1 table") {
		t.Errorf("stderr = %q, want summary", stderr)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "| Name | Qty |") {
		t.Errorf("file not written as markdown:\n%s", data)
	}
}

func TestExtractErrors(t *testing.T) {
	path := samplePDF(t)

	if _, _, err := execute(t, "extract", "--format", "pdf", path); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, _, err := execute(t, "extract", "--pages", "2-1", path); err == nil {
		t.Error("expected error for reversed page range")
	}
	if _, _, err := execute(t, "extract", "--pages", "9", path); !errors.Is(err, reader.ErrPageOutOfRange) {
		t.Errorf("error = %v, want ErrPageOutOfRange", err)
	}
	if _, _, err := execute(t, "extract", "--detector", "magic", path); !errors.Is(err, rulegrid.ErrUnknownDetector) {
		t.Errorf("error = %v, want ErrUnknownDetector", err)
	}
	if _, _, err := execute(t, "extract"); err == nil {
		t.Error("expected error without a file argument")
	}
}

func TestExtractVerbose(t *testing.T) {
	_, stderr, err := execute(t, "extract", "-v", "--pages", "1", samplePDF(t))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.Contains(stderr, "loaded page") {
		t.Errorf("stderr missing debug records:\n%s", stderr)
	}
}

func TestDetect(t *testing.T) {
	out, _, err := execute(t, "detect", samplePDF(t))
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	for _, want := range []string{"page 1", "1 region", "1. x=100 y=192 w=200 h=100", "page 2", "0 regions"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	_, stderr, err := execute(t, "render", "--dir", dir, "--scale", "1", "--pages", "1", samplePDF(t))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	name := filepath.Join(dir, "parts-page1.png")
	if !strings.Contains(stderr, name) {
		t.Errorf("stderr = %q, want %s", stderr, name)
	}
	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 612 || b.Dy() != 792 {
		t.Errorf("image size = %v, want 612x792", b)
	}
	if _, err := os.Stat(filepath.Join(dir, "parts-page2.png")); !os.IsNotExist(err) {
		t.Error("page 2 should not be rendered")
	}
}

func TestRenderUnknownDetector(t *testing.T) {
	_, _, err := execute(t, "render", "--detector", "magic", samplePDF(t))
	if !errors.Is(err, rulegrid.ErrUnknownDetector) {
		t.Errorf("error = %v, want ErrUnknownDetector", err)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "rulegrid dev") {
		t.Errorf("output = %q", out)
	}
}

func TestParsePages(t *testing.T) {
	tests := []struct {
		list       string
		want       []int
		wantErr    bool
		outOfRange bool
	}{
		{list: "1", want: []int{1}},
		{list: "1,3-5", want: []int{1, 3, 4, 5}},
		{list: " 2 , 4 - 5 ", want: []int{2, 4, 5}},
		{list: "1,,2", want: []int{1, 2}},
		{list: "10", want: []int{10}},
		{list: "", wantErr: true},
		{list: "0", wantErr: true},
		{list: "a", wantErr: true},
		{list: "5-3", wantErr: true},
		{list: "1-", wantErr: true},
		{list: "11", wantErr: true, outOfRange: true},
		{list: "1-2000000000", wantErr: true, outOfRange: true},
		{list: "2000000000-2000000001", wantErr: true, outOfRange: true},
	}

	for _, tt := range tests {
		t.Run(tt.list, func(t *testing.T) {
			got, err := parsePages(tt.list, 10)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePages(%q) error = %v, wantErr %v", tt.list, err, tt.wantErr)
			}
			if tt.outOfRange && !errors.Is(err, reader.ErrPageOutOfRange) {
				t.Errorf("parsePages(%q) error = %v, want ErrPageOutOfRange", tt.list, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parsePages(%q) = %v, want %v", tt.list, got, tt.want)
			}
		})
	}
}

func TestExtractHugePageRange(t *testing.T) {
	_, _, err := execute(t, "extract", "--pages", "1-2000000000", samplePDF(t))
	if !errors.Is(err, reader.ErrPageOutOfRange) {
		t.Errorf("error = %v, want ErrPageOutOfRange", err)
	}
}

func TestRenderHugePageRange(t *testing.T) {
	_, _, err := execute(t, "render", "--pages", "1-2000000000", "--dir", t.TempDir(), samplePDF(t))
	if !errors.Is(err, reader.ErrPageOutOfRange) {
		t.Errorf("error = %v, want ErrPageOutOfRange", err)
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		name   string
		env    string
		flag   string
		output string
		want   export.Format
	}{
		{"default", "", "", "", export.CSV},
		{"flag", "", "json", "out.md", export.JSON},
		{"env", "html", "", "out.md", export.HTML},
		{"flag over env", "html", "text", "", export.Text},
		{"extension", "", "", "out.md", export.Markdown},
		{"unknown extension", "", "", "out.dat", export.CSV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(formatEnv, tt.env)
			got, err := outputFormat(tt.flag, tt.output)
			if err != nil {
				t.Fatalf("outputFormat() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("outputFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}
