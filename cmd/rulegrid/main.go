// Command rulegrid finds ruled tables in PDF files.
package main

import "github.com/tsawler/rulegrid/internal/cli"

func main() {
	cli.Execute()
}
