package cmd

import (
	"github.com/mhout/cadence/internal/config"
	"github.com/mhout/cadence/internal/server"

	"github.com/spf13/cobra"
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey <label>",
	Short: "Mint a new API key",
	Long: `The "apikey" command writes a new API key directly to the store and
prints it once. Run it on the host that owns the database; the server
only ever sees key hashes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		key, err := server.RegisterAPIKey(store, args[0])
		if err != nil {
			return err
		}
		cmd.Println(key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(apikeyCmd)
}
