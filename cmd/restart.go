package cmd

import (
	"github.com/spf13/cobra"
)

var restartCmd = &cobra.Command{
	Use:   "restart <name>",
	Short: "Restart a habit, resetting its current streak",
	Long: `The "restart" command records a restart marker for a habit. The running
streak starts over from zero; history, longest streak and break count
are kept.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		restart(args[0], cmd)
	},
}

func init() {
	rootCmd.AddCommand(restartCmd)
}

func restart(name string, cmd *cobra.Command) {
	cfg, ok := loadConfig(cmd)
	if !ok {
		return
	}

	if err := newClient(cfg).Restart(cmd.Context(), name); err != nil {
		cmd.Println("Error restarting habit:", err)
		return
	}
	cmd.Printf("Restarted %q\n", name)
}
