package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"flipbot/flipbot/app"
	"flipbot/flipbot/services/extractor"
	"flipbot/flipbot/utils/color"
	"flipbot/flipbot/utils/jsonutils"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a manifest",
	Long: `Analyze a manifest given as text, a file, or both.

Examples:
  # Pasted text
  flipbot analyze --manifest "6 units sony untested $150 Garland, TX"

  # Text from stdin plus a spreadsheet
  cat notes.txt | flipbot analyze --manifest - --file lot.xlsx

  # Machine-readable output
  flipbot analyze --file manifest.pdf --json`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.String("manifest", "", `manifest text, or "-" to read it from stdin`)
	f.String("file", "", "path to a PDF, xlsx/xls, csv or image manifest")
	f.Bool("json", false, "print the result as JSON")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	manifest, _ := cmd.Flags().GetString("manifest")
	file, _ := cmd.Flags().GetString("file")
	asJSON, _ := cmd.Flags().GetBool("json")

	if manifest == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return eris.Wrap(err, "read manifest from stdin")
		}
		manifest = strings.TrimSpace(string(data))
	}

	var upload *extractor.Upload
	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return eris.Wrapf(err, "open %s", file)
		}
		upload = extractor.LocalFile(file)
	}

	ctx := cmd.Context()
	a := app.New(ctx, cfg, policy)
	defer a.Close()

	analysis, err := a.Analyze.Analyze(ctx, manifest, upload)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		fmt.Fprintln(out, jsonutils.ToJSON(analysis.Result))
		return nil
	}

	it := analysis.Items
	fmt.Fprintln(out, color.ColorDim(fmt.Sprintf("%d units · %s · %s · bid $%.2f · %s",
		it.Units, it.Brand, it.Condition, it.Bid, it.Location)))
	if !analysis.Lookup.Live {
		fmt.Fprintln(out, color.ColorWarning("sold data: using defaults ("+analysis.Lookup.Reason+")"))
	}
	if analysis.Scrape != nil && !analysis.Scrape.OK {
		fmt.Fprintln(out, color.ColorWarning("could not read "+analysis.Scrape.URL+": "+analysis.Scrape.Reason))
	}
	for _, e := range analysis.Result.Entries() {
		fmt.Fprintf(out, "- %s: %s\n", color.ColorKey(e.Key), e.Value)
	}
	return nil
}
