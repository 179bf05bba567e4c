package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <name>",
	Short: "Show streak statistics for a habit",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		summary(args[0], cmd)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func summary(name string, cmd *cobra.Command) {
	cfg, ok := loadConfig(cmd)
	if !ok {
		return
	}

	s, err := newClient(cfg).GetHabitSummary(cmd.Context(), name)
	if err != nil {
		cmd.Println("Error fetching summary:", err)
		return
	}

	status := "lapsed"
	if s.IsActive {
		status = "active"
	}
	cmd.Printf("%s (%s, %s)\n", s.Name, s.Periodicity, status)
	cmd.Printf("  current streak: %d\n", s.CurrentStreak)
	cmd.Printf("  longest streak: %d\n", s.LongestStreak)
	cmd.Printf("  times broken:   %d\n", s.BreakCount)
	cmd.Printf("  periods done:   %d\n", s.TotalPeriods)
	if s.FirstLogged != 0 {
		cmd.Printf("  first logged:   %s\n", time.Unix(s.FirstLogged, 0).UTC().Format(time.DateOnly))
	}
}
