package cmd

import (
	"os"

	"github.com/mhout/cadence/internal/apiclient"
	"github.com/mhout/cadence/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cadence",
	Short: "Track habits and their streaks",
	Long: `
	Cadence tracks personal habits on a daily, weekly or monthly cadence.
	Check habits off as you complete them and cadence keeps score: current
	streaks, longest streaks, and how often each habit was broken.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newClient builds an API client from the loaded config. The API key for
// authenticated servers comes from CADENCE_API_KEY.
func newClient(cfg *config.Config) *apiclient.Client {
	return apiclient.New(cfg.APIBaseURL, os.Getenv("CADENCE_API_KEY"))
}

func loadConfig(cmd *cobra.Command) (*config.Config, bool) {
	cfg, err := config.Load()
	if err != nil {
		cmd.Println("Error loading config file:", err)
		return nil, false
	}
	return cfg, true
}
