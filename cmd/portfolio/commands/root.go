package commands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Backtest a weighted basket of equities",
	Long: `Backtest a buy-and-hold portfolio of equities against historical
adjusted closes and report trailing period statistics.

Examples:
  portfolio calculate --asset AAPL=60 --asset MSFT=40
  portfolio calculate --asset SPY=100 --lookback 5y --format table
  portfolio serve --port 3009`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}
