package cmd

import (
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriSend/internal/app"
	"github.com/Rorical/RoriSend/internal/config"
)

var accountFlag string

var rootCmd = &cobra.Command{
	Use:   "rorisend",
	Short: "Send tokens from the terminal",
	Long:  `RoriSend prepares, confirms and sends token transfers from a keychain or ledger account.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if accountFlag != "" {
			if err := activateAccount(cfg, accountFlag); err != nil {
				log.Fatalf("%v", err)
			}
		}
		runSendApp(cfg)
	},
}

// runSendApp asks for the account password and runs the send form.
func runSendApp(cfg *config.Config) {
	account, err := cfg.ActiveAccountContext()
	if err != nil {
		log.Fatalf("Failed to resolve account: %v", err)
	}

	var password []byte
	if isKeychain(account.AccountMeta.Type) {
		password, err = promptPassword("Password for " + account.AccountName)
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
	}

	application, err := app.NewApplication(cfg, password)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func promptPassword(label string) ([]byte, error) {
	prompt := promptui.Prompt{
		Label: label,
		Mask:  '*',
	}
	password, err := prompt.Run()
	if err != nil {
		return nil, err
	}
	return []byte(password), nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&accountFlag, "account", "a", "", "account to send from (defaults to the active account)")

	// Add subcommands
	rootCmd.AddCommand(accountCmd)
}
