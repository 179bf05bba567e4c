package cmd

import (
	"github.com/spf13/cobra"
)

var checkoffCmd = &cobra.Command{
	Use:   "checkoff <name>",
	Short: "Check off a habit for the current period",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		checkoff(args[0], cmd)
	},
}

func init() {
	rootCmd.AddCommand(checkoffCmd)
}

func checkoff(name string, cmd *cobra.Command) {
	cfg, ok := loadConfig(cmd)
	if !ok {
		return
	}

	if err := newClient(cfg).CheckOff(cmd.Context(), name); err != nil {
		cmd.Println("Error checking off habit:", err)
		return
	}
	cmd.Printf("Checked off %q\n", name)
}
