package commands

import (
	"fmt"

	deps "portfoliobacktest/cmd"
	"portfoliobacktest/internal/util"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API. The port defaults to the configured port (3009).

Example:
  portfolio serve --port 8080`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := util.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	handler, err := deps.InitializeDependencies(*cfg)
	if err != nil {
		return err
	}

	zap.S().Infow("starting api", "port", cfg.Port, "quoteSource", cfg.QuoteSource)
	return handler.StartApi(cfg.Port)
}
