// Command flipbot analyzes liquidation manifests from the terminal.
package main

import (
	"os"

	"flipbot/flipbot/config"
	"flipbot/flipbot/utils/color"
	"flipbot/flipbot/utils/logging"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	cfg     config.Config
	policy  config.Policy
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "flipbot",
	Short: "Estimate whether a liquidation lot is worth flipping",
	Long: `FlipBot reads a manifest (pasted text, a PDF, a spreadsheet, a CSV or a
photo), pulls out units, brand, condition, bid and location, and prints the
same eight-line estimate the web page shows.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadConfig()
		if err != nil {
			return err
		}
		cfg = c

		p, err := config.LoadPolicy(cfg.PolicyFile)
		if err != nil {
			return eris.Wrap(err, "load policy")
		}
		policy = p

		if noColor {
			color.Disable()
		}
		logging.InitLogger(cfg.LogDir, false)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString(color.ColorError("error: ") + err.Error() + "\n")
		os.Exit(1)
	}
}
