package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pdm-mcp/internal/config"
	"pdm-mcp/internal/logging"
	"pdm-mcp/internal/mcp"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "pdm-mcp",
	Short: "PDM-MCP is a Monte-Carlo delivery-strategy comparison MCP Server",
	Long: `A specialized MCP Server that compares competing project-delivery strategies
(e.g. Design-Bid-Build vs Design-Build vs CMAR) by Monte-Carlo simulation over
three-point estimates, weighted composite scoring, Welch significance testing,
and risk classification.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("PDM-MCP starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Info().Msg("MCP Server starting Stdio loop")
		server := mcp.NewServer(cfg)
		return server.Serve()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
