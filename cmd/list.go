package cmd

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits",
	Long:  `The "list" command lets you list your tracked habits.`,
	Run: func(cmd *cobra.Command, args []string) {
		list(cmd)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func list(cmd *cobra.Command) {
	cfg, ok := loadConfig(cmd)
	if !ok {
		return
	}

	habits, err := newClient(cfg).ListHabits(cmd.Context())
	if err != nil {
		cmd.Println("Error fetching habits:", err)
		return
	}
	for _, h := range habits {
		cmd.Printf("%-32s %s\n", h.Name, h.Periodicity)
	}
}
