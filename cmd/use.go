package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriSend/internal/config"
)

var useCmd = &cobra.Command{
	Use:   "use [account-name]",
	Short: "Switch to an account and open the send form",
	Long:  `Make the specified account active and immediately open the send form.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Load config
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		// Switch to the account
		if err := activateAccount(cfg, args[0]); err != nil {
			log.Fatalf("%v", err)
		}

		// Save config with new active account
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		runSendApp(cfg)
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
