package cmd

import (
	"fmt"
	"time"

	"github.com/mhout/cadence/internal/nudge"

	"github.com/spf13/cobra"
)

var nudgeCmd = &cobra.Command{
	Use:   "nudge",
	Short: "Send a reminder for habit streaks expiring soon",
	Long: `The "nudge" command emails a reminder for active habits that have not
been checked off this period and whose period closes within the
configured window.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, ok := loadConfig(cmd)
		if !ok {
			return nil
		}
		if cfg.ResendAPIKey == "" {
			return fmt.Errorf("CADENCE_RESEND_API_KEY environment variable is not set")
		}
		if cfg.NotifyEmail == "" {
			return fmt.Errorf("notify_email is not set in config")
		}

		n := &nudge.ResendNotifier{
			APIKey: cfg.ResendAPIKey,
			From:   "cadence@resend.dev",
			Email:  cfg.NotifyEmail,
		}
		window := time.Duration(cfg.NudgeWindowHours) * time.Hour
		return nudge.Run(cmd.Context(), newClient(cfg), n, window)
	},
}

func init() {
	rootCmd.AddCommand(nudgeCmd)
}
