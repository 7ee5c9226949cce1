package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Rorical/RoriSend/internal/models"
)

const (
	homeEnv        = "RORISEND_HOME"
	envPrefix      = "RORISEND"
	dirName        = ".rorisend"
	fileName       = "config.json"
	vaultDirName   = "vault"
	DefaultAccount = "main"
)

type Account struct {
	Type    string `mapstructure:"type"`
	Index   int    `mapstructure:"index"`
	Address string `mapstructure:"address"`
}

type Settings struct {
	Currency       string  `mapstructure:"currency"`
	ConversionRate float64 `mapstructure:"conversion_rate"`
	USDPrice       float64 `mapstructure:"usd_price"`
}

type Node struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Config struct {
	Accounts      map[string]Account `mapstructure:"accounts"`
	ActiveAccount string             `mapstructure:"active_account"`
	Settings      Settings           `mapstructure:"settings"`
	Node          Node               `mapstructure:"node"`
	LogLevel      string             `mapstructure:"log_level"`
	home          string
}

// LoadConfig reads ~/.rorisend/config.json, creating a default one on first
// use. RORISEND_* environment variables override file values.
func LoadConfig() (*Config, error) {
	home, err := Home()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := os.MkdirAll(home, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(home, fileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		def := defaultConfig(home)
		if err := def.Save(); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := &Config{home: home}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.ensureActiveAccount(); err != nil {
		return nil, fmt.Errorf("failed to set active account: %w", err)
	}
	return cfg, nil
}

// Home returns the application directory: $RORISEND_HOME/.rorisend or
// ~/.rorisend.
func Home() (string, error) {
	base := os.Getenv(homeEnv)
	if base == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = userHome
	}
	return filepath.Join(base, dirName), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	v.SetDefault("active_account", DefaultAccount)
	v.SetDefault("settings.currency", "USD")
	v.SetDefault("settings.conversion_rate", 1.0)
	v.SetDefault("settings.usd_price", 0.0)
	v.SetDefault("node.url", "")
	v.SetDefault("node.timeout", "15s")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func defaultConfig(home string) *Config {
	return &Config{
		Accounts: map[string]Account{
			DefaultAccount: {Type: "keychain"},
		},
		ActiveAccount: DefaultAccount,
		Settings:      Settings{Currency: "USD", ConversionRate: 1},
		Node:          Node{Timeout: 15 * time.Second},
		LogLevel:      "info",
		home:          home,
	}
}

// Save writes the config back to its file.
func (c *Config) Save() error {
	if c.home == "" {
		home, err := Home()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		c.home = home
	}
	if err := os.MkdirAll(c.home, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	accounts := make(map[string]any, len(c.Accounts))
	for name, a := range c.Accounts {
		accounts[name] = map[string]any{
			"type":    a.Type,
			"index":   a.Index,
			"address": a.Address,
		}
	}

	v := viper.New()
	v.SetConfigType("json")
	v.Set("active_account", c.ActiveAccount)
	v.Set("accounts", accounts)
	v.Set("settings.currency", c.Settings.Currency)
	v.Set("settings.conversion_rate", c.Settings.ConversionRate)
	v.Set("settings.usd_price", c.Settings.USDPrice)
	v.Set("node.url", c.Node.URL)
	v.Set("node.timeout", c.Node.Timeout.String())
	v.Set("log_level", c.LogLevel)

	path := filepath.Join(c.home, fileName)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Chmod(path, 0o600)
}

// HomeDir is the directory holding the config, vault, log and outbox.
func (c *Config) HomeDir() string {
	return c.home
}

// VaultDir holds the encrypted keychain seeds.
func (c *Config) VaultDir() string {
	return filepath.Join(c.home, vaultDirName)
}

// AccountNames returns the configured account names, sorted.
func (c *Config) AccountNames() []string {
	names := make([]string, 0, len(c.Accounts))
	for name := range c.Accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AccountContext resolves a configured account.
func (c *Config) AccountContext(name string) (models.AccountContext, error) {
	a, ok := c.Accounts[name]
	if !ok {
		return models.AccountContext{}, fmt.Errorf("account '%s' does not exist", name)
	}
	return models.AccountContext{
		AccountName: name,
		AccountMeta: models.AccountMeta{Type: a.Type, Index: a.Index, Address: a.Address},
	}, nil
}

func (c *Config) ActiveAccountContext() (models.AccountContext, error) {
	return c.AccountContext(c.ActiveAccount)
}

func (c *Config) DisplaySettings() models.Settings {
	return models.Settings{
		Currency:       c.Settings.Currency,
		ConversionRate: c.Settings.ConversionRate,
		USDPrice:       c.Settings.USDPrice,
	}
}

func (c *Config) ensureActiveAccount() error {
	if len(c.Accounts) == 0 {
		return fmt.Errorf("no accounts defined")
	}
	if _, ok := c.Accounts[c.ActiveAccount]; ok {
		return nil
	}
	// If the active account doesn't exist, fall back to the first by name
	c.ActiveAccount = c.AccountNames()[0]
	return nil
}
