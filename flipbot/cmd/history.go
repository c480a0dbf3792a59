package main

import (
	"encoding/json"
	"fmt"

	"flipbot/flipbot/app"
	"flipbot/flipbot/utils/color"
	"flipbot/flipbot/utils/jsonutils"
	"flipbot/flipbot/utils/types"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "List past analyses, or show one",
	Long: `List the most recent analyses saved to Postgres, or print the stored
response of a single analysis. Needs DB_HOST and DB_NAME to be set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "number of analyses to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if !cfg.HistoryEnabled() {
		return eris.New("history is disabled: set DB_HOST and DB_NAME")
	}

	ctx := cmd.Context()
	a := app.New(ctx, cfg, policy)
	defer a.Close()
	if a.History == nil {
		return eris.New("history database is unreachable")
	}

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return eris.Wrapf(err, "invalid analysis id %q", args[0])
		}
		rec, err := a.History.GetAnalysisByID(ctx, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return eris.Errorf("analysis %s not found", id)
		}
		var result types.AnalysisResult
		if err := json.Unmarshal([]byte(rec.Result), &result); err != nil {
			return eris.Wrap(err, "decode stored result")
		}
		fmt.Fprintln(out, jsonutils.ToJSON(result))
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := a.History.ListRecentAnalyses(ctx, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, color.ColorInfo("no analyses yet"))
		return nil
	}
	for _, r := range records {
		live := "defaults"
		if r.LookupLive {
			live = "live"
		}
		fmt.Fprintf(out, "%s  %s  %d x %s (%s)  bid $%.2f  %s  [%s]\n",
			color.ColorKey(r.ID.String()),
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Units, r.Brand, r.Condition, r.Bid, r.Location, live)
	}
	return nil
}
