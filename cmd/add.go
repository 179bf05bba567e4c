package cmd

import (
	"github.com/mhout/cadence/pkg/habit"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <name> <daily|weekly|monthly>",
	Short: "Create a new habit",
	Long:  `The "add" command creates a habit with the given name and periodicity.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		add(args[0], args[1], cmd)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func add(name, periodicity string, cmd *cobra.Command) {
	if _, err := habit.ParsePeriodicity(periodicity); err != nil {
		cmd.Println("Error:", err)
		return
	}

	cfg, ok := loadConfig(cmd)
	if !ok {
		return
	}

	if err := newClient(cfg).CreateHabit(cmd.Context(), name, periodicity); err != nil {
		cmd.Println("Error creating habit:", err)
		return
	}
	cmd.Printf("Created %s habit %q\n", periodicity, name)
}
