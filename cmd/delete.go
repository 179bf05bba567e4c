package cmd

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a habit and its history",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deleteHabit(args[0], cmd)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func deleteHabit(name string, cmd *cobra.Command) {
	cfg, ok := loadConfig(cmd)
	if !ok {
		return
	}

	if err := newClient(cfg).DeleteHabit(cmd.Context(), name); err != nil {
		cmd.Println("Error deleting habit:", err)
		return
	}
	cmd.Printf("Deleted %q\n", name)
}
