package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriSend/internal/config"
	"github.com/Rorical/RoriSend/internal/validate"
	"github.com/Rorical/RoriSend/internal/wallet"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage sending accounts",
	Long:  `Manage keychain and ledger accounts. Account names are case-insensitive and stored in lower case.`,
}

var listAccountsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		vault := wallet.NewVault(cfg.VaultDir())

		fmt.Printf("Active Account: %s\n\n", cfg.ActiveAccount)
		fmt.Println("Available Accounts:")
		for _, name := range cfg.AccountNames() {
			account := cfg.Accounts[name]
			marker := ""
			if name == cfg.ActiveAccount {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			fmt.Printf("    Type: %s\n", account.Type)
			if account.Address != "" {
				fmt.Printf("    Address: %s\n", account.Address)
			}
			if isKeychain(account.Type) {
				fmt.Printf("    Seed stored: %s\n", yesNo(vault.Exists(name)))
			}
			fmt.Println()
		}
	},
}

var showAccountCmd = &cobra.Command{
	Use:   "show [account-name]",
	Short: "Show account details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		accountName := normalizeName(args[0])
		account, exists := cfg.Accounts[accountName]
		if !exists {
			log.Fatalf("Account '%s' does not exist", accountName)
		}

		fmt.Printf("Account: %s\n", accountName)
		fmt.Printf("Type: %s\n", account.Type)
		fmt.Printf("Index: %d\n", account.Index)
		fmt.Printf("Address: %s\n", account.Address)
		if isKeychain(account.Type) {
			stored := "Not set"
			if wallet.NewVault(cfg.VaultDir()).Exists(accountName) {
				stored = "Set (encrypted)"
			}
			fmt.Printf("Seed: %s\n", stored)
		}
	},
}

var addAccountCmd = &cobra.Command{
	Use:   "add [account-name]",
	Short: "Add a new account",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var accountName string
		if len(args) > 0 {
			accountName = args[0]
		} else {
			prompt := promptui.Prompt{
				Label:    "Account name",
				Validate: requireValue,
			}
			accountName, err = prompt.Run()
			if err != nil {
				log.Fatalf("Prompt failed: %v", err)
			}
		}
		accountName = normalizeName(accountName)

		if _, exists := cfg.Accounts[accountName]; exists {
			log.Fatalf("Account '%s' already exists", accountName)
		}

		typePrompt := promptui.Select{
			Label: "Account type",
			Items: wallet.AccountTypes(),
		}
		_, typeName, err := typePrompt.Run()
		if err != nil {
			log.Fatalf("Selection failed: %v", err)
		}
		accountType, err := wallet.ParseAccountType(typeName)
		if err != nil {
			log.Fatalf("Invalid account type: %v", err)
		}

		account := config.Account{Type: string(accountType)}
		account.Index, err = promptIndex(0)
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
		account.Address, err = promptAddress("")
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		if accountType == wallet.Keychain {
			if err := storeSeed(wallet.NewVault(cfg.VaultDir()), accountName); err != nil {
				log.Fatalf("Failed to store seed: %v", err)
			}
		}

		// Add account to config
		cfg.Accounts[accountName] = account

		// Save config
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Account '%s' added successfully!\n", accountName)
	},
}

var editAccountCmd = &cobra.Command{
	Use:   "edit [account-name]",
	Short: "Edit the index and address of an account",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		accountName, err := selectAccount(cfg, args, "Select account to edit", false)
		if err != nil {
			log.Fatalf("Selection failed: %v", err)
		}

		account, exists := cfg.Accounts[accountName]
		if !exists {
			log.Fatalf("Account '%s' does not exist", accountName)
		}

		account.Index, err = promptIndex(account.Index)
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
		account.Address, err = promptAddress(account.Address)
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		cfg.Accounts[accountName] = account

		// Save config
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Account '%s' updated successfully!\n", accountName)
	},
}

var deleteAccountCmd = &cobra.Command{
	Use:   "delete [account-name]",
	Short: "Delete an account and its stored seed",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		accountName, err := selectAccount(cfg, args, "Select account to delete", false)
		if err != nil {
			log.Fatalf("Selection failed: %v", err)
		}

		if _, exists := cfg.Accounts[accountName]; !exists {
			log.Fatalf("Account '%s' does not exist", accountName)
		}

		// Confirm deletion
		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete account '%s' and its seed? (y/N)", accountName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		if err := wallet.NewVault(cfg.VaultDir()).Delete(accountName); err != nil {
			log.Fatalf("Failed to delete seed: %v", err)
		}
		delete(cfg.Accounts, accountName)

		// If this was the last account, create a new default one
		if len(cfg.Accounts) == 0 {
			cfg.Accounts[config.DefaultAccount] = config.Account{Type: string(wallet.Keychain)}
		}
		if cfg.ActiveAccount == accountName {
			cfg.ActiveAccount = cfg.AccountNames()[0]
		}

		// Save config
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Account '%s' deleted successfully!\n", accountName)
	},
}

var switchAccountCmd = &cobra.Command{
	Use:   "switch [account-name]",
	Short: "Switch to a different account",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		accountName, err := selectAccount(cfg, args, "Select account to switch to", true)
		if errors.Is(err, errNoAccounts) {
			fmt.Println("No other accounts available to switch to")
			return
		}
		if err != nil {
			log.Fatalf("Selection failed: %v", err)
		}

		if _, exists := cfg.Accounts[accountName]; !exists {
			log.Fatalf("Account '%s' does not exist", accountName)
		}

		cfg.ActiveAccount = accountName

		// Save config
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Switched to account '%s'\n", accountName)
	},
}

var errNoAccounts = errors.New("no accounts available")

// selectAccount returns the account named in args, or lets the user pick one.
func selectAccount(cfg *config.Config, args []string, label string, skipActive bool) (string, error) {
	if len(args) > 0 {
		return normalizeName(args[0]), nil
	}

	names := make([]string, 0, len(cfg.Accounts))
	for _, name := range cfg.AccountNames() {
		if skipActive && name == cfg.ActiveAccount {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", errNoAccounts
	}

	prompt := promptui.Select{
		Label: label,
		Items: names,
	}
	_, name, err := prompt.Run()
	return name, err
}

// storeSeed imports or generates a seed and seals it under a new password.
func storeSeed(vault *wallet.Vault, accountName string) error {
	sourcePrompt := promptui.Select{
		Label: "Seed",
		Items: []string{"Generate a new seed", "Import an existing seed"},
	}
	choice, _, err := sourcePrompt.Run()
	if err != nil {
		return err
	}

	var seed []byte
	if choice == 0 {
		seed, err = wallet.GenerateSeed()
		if err != nil {
			return err
		}
		fmt.Printf("Your new seed (write it down, it will not be shown again):\n\n  %s\n\n", seed)
	} else {
		seedPrompt := promptui.Prompt{
			Label:    "Seed",
			Mask:     '*',
			Validate: validateSeed,
		}
		raw, err := seedPrompt.Run()
		if err != nil {
			return err
		}
		seed = []byte(strings.ToUpper(strings.TrimSpace(raw)))
	}

	password, err := promptPassword("New password")
	if err != nil {
		return err
	}
	again, err := promptPassword("Repeat password")
	if err != nil {
		return err
	}
	if !bytes.Equal(password, again) {
		return errors.New("passwords do not match")
	}

	return vault.Seal(accountName, password, seed)
}

func promptIndex(current int) (int, error) {
	prompt := promptui.Prompt{
		Label:   "Key index",
		Default: strconv.Itoa(current),
		Validate: func(s string) error {
			if n, err := strconv.Atoi(s); err != nil || n < 0 {
				return errors.New("index must be a non-negative integer")
			}
			return nil
		},
	}
	value, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

func promptAddress(current string) (string, error) {
	prompt := promptui.Prompt{
		Label:   "Receive address (optional, used for the balance)",
		Default: current,
		Validate: func(s string) error {
			s = strings.TrimSpace(s)
			if s != "" && len(s) != validate.AddressLength && len(s) != validate.AddressWithChecksumLength {
				return fmt.Errorf("address must be %d or %d characters", validate.AddressLength, validate.AddressWithChecksumLength)
			}
			return nil
		},
	}
	value, err := prompt.Run()
	return strings.TrimSpace(value), err
}

func validateSeed(s string) error {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != wallet.SeedLength {
		return fmt.Errorf("seed must be %d characters", wallet.SeedLength)
	}
	for _, c := range s {
		if (c < 'A' || c > 'Z') && c != '9' {
			return errors.New("seed may only contain A-Z and 9")
		}
	}
	return nil
}

func requireValue(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value required")
	}
	return nil
}

// activateAccount makes name the active account, matching it the way the
// config layer stores account keys.
func activateAccount(cfg *config.Config, name string) error {
	name = normalizeName(name)
	if _, exists := cfg.Accounts[name]; !exists {
		return fmt.Errorf("account '%s' does not exist", name)
	}
	cfg.ActiveAccount = name
	return nil
}

// isKeychain reports whether typeName names the keychain variant, however
// it is cased in the config file.
func isKeychain(typeName string) bool {
	t, err := wallet.ParseAccountType(typeName)
	return err == nil && t == wallet.Keychain
}

// normalizeName matches how the config layer stores account keys.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func init() {
	// Add subcommands to account
	accountCmd.AddCommand(listAccountsCmd)
	accountCmd.AddCommand(showAccountCmd)
	accountCmd.AddCommand(addAccountCmd)
	accountCmd.AddCommand(editAccountCmd)
	accountCmd.AddCommand(deleteAccountCmd)
	accountCmd.AddCommand(switchAccountCmd)
}
