package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ixmetrics/peeringdb-market/pkg/config"
	"github.com/ixmetrics/peeringdb-market/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "pdbmarket",
	Short: "pdbmarket fetches PeeringDB network data and analyzes IXP market concentration.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		logging.Setup(logging.Config{
			Level:  logging.LogLevel(cfg.LogLevel),
			Pretty: cfg.LogPretty,
		})
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
