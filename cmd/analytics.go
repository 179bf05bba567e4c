package cmd

import (
	"github.com/mhout/cadence/pkg/habit"
	"github.com/spf13/cobra"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics <best|broken|periodicity>",
	Short: "Show habit rankings",
	Long: `The "analytics" command ranks your habits: "best" by current streak,
"broken" by how often the streak was broken, and "periodicity" grouped
by cadence.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"best", "broken", "periodicity"},
	Run: func(cmd *cobra.Command, args []string) {
		showAnalytics(args[0], cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
}

func printRanking(cmd *cobra.Command, summaries []habit.Summary, label func(habit.Summary) int) {
	for _, s := range summaries {
		cmd.Printf("%-32s %s - %d\n", s.Name, s.Periodicity, label(s))
	}
}

func showAnalytics(mode string, cmd *cobra.Command) {
	cfg, ok := loadConfig(cmd)
	if !ok {
		return
	}
	client := newClient(cfg)

	switch mode {
	case "best":
		summaries, err := client.BestHabits(cmd.Context())
		if err != nil {
			cmd.Println("Error fetching analytics:", err)
			return
		}
		printRanking(cmd, summaries, func(s habit.Summary) int { return s.CurrentStreak })
	case "broken":
		summaries, err := client.MostBrokenHabits(cmd.Context())
		if err != nil {
			cmd.Println("Error fetching analytics:", err)
			return
		}
		printRanking(cmd, summaries, func(s habit.Summary) int { return s.BreakCount })
	case "periodicity":
		groups, err := client.HabitsByPeriodicity(cmd.Context())
		if err != nil {
			cmd.Println("Error fetching analytics:", err)
			return
		}
		for _, p := range []habit.Periodicity{habit.Daily, habit.Weekly, habit.Monthly} {
			cmd.Printf("%s:\n", p)
			for _, s := range groups[p] {
				cmd.Printf("  %-30s streak: %d\n", s.Name, s.CurrentStreak)
			}
		}
	default:
		cmd.Println("Unknown analytics mode:", mode)
	}
}
