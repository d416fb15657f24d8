package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ixmetrics/peeringdb-market/pkg/hhi"
)

var (
	hhiFile    string
	hhiCountry string
	hhiMetric  string
)

var hhiCmd = &cobra.Command{
	Use:   "hhi",
	Short: "Compute IXP market concentration (HHI) from a PeeringDB JSON dump.",
	RunE:  runHHI,
}

func init() {
	hhiCmd.Flags().StringVarP(&hhiFile, "file", "f", "", "path to the PeeringDB JSON dump (required)")
	hhiCmd.Flags().StringVarP(&hhiCountry, "country", "c", "US", "two-letter country code")
	hhiCmd.Flags().StringVarP(&hhiMetric, "metric", "m", "speed", "market share metric: speed or asns")
	hhiCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(hhiCmd)
}

func runHHI(cmd *cobra.Command, args []string) error {
	res, err := hhi.Analyze(hhi.Params{
		FilePath:    hhiFile,
		CountryCode: hhiCountry,
		Metric:      hhi.Metric(hhiMetric),
	})
	if err != nil {
		return err
	}

	hhi.RenderReport(os.Stdout, hhiCountry, hhi.Metric(hhiMetric), res)
	return nil
}
