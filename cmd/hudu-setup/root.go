// cmd/hudu-setup/root.go
package main

import (
	"fmt"
	"os"

	"github.com/pankajbeniwal/hudu-setup/internal/logging"
	"github.com/spf13/cobra"
)

const defaultOutput = ".env"

var (
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "hudu-setup",
	Short: "Generate the environment file for a self-hosted Hudu install",
	Long: `hudu-setup asks for the domain, file storage and mail settings of a Hudu
install, generates its encryption keys and writes the .env file that the
docker compose stack reads at startup.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logLevelFlag, logFormatFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", envOr("HUDU_SETUP_LOG_LEVEL", "warn"), "diagnostic log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "text", "diagnostic log format (text, json)")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print hudu-setup version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("hudu-setup", version)
	},
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// outputPath resolves the env file location: flag, then HUDU_SETUP_OUTPUT.
func outputPath(flag string) string {
	if flag != "" {
		return flag
	}
	return envOr("HUDU_SETUP_OUTPUT", defaultOutput)
}
