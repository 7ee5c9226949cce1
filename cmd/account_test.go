package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriSend/internal/config"
)

func TestValidateSeed(t *testing.T) {
	assert.NoError(t, validateSeed(strings.Repeat("a", 81)))
	assert.Error(t, validateSeed("SHORT"))
	assert.Error(t, validateSeed(strings.Repeat("1", 81)))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "savings", normalizeName("  Savings "))
}

func TestUnitsCommand(t *testing.T) {
	var out bytes.Buffer
	unitsCmd.SetOut(&out)
	unitsCmd.Run(unitsCmd, nil)

	require.Contains(t, out.String(), "Gi  = 1,000,000,000 i")
	assert.Equal(t, 5, strings.Count(out.String(), "\n"))
}

func TestActivateAccount_IgnoresCase(t *testing.T) {
	t.Setenv("RORISEND_HOME", t.TempDir())
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	cfg.Accounts[normalizeName("Savings")] = config.Account{Type: "keychain"}
	require.NoError(t, cfg.Save())

	reloaded, err := config.LoadConfig()
	require.NoError(t, err)

	require.NoError(t, activateAccount(reloaded, "Savings"))
	assert.Equal(t, "savings", reloaded.ActiveAccount)

	require.NoError(t, activateAccount(reloaded, " MAIN "))
	assert.Equal(t, config.DefaultAccount, reloaded.ActiveAccount)
}

func TestActivateAccount_Unknown(t *testing.T) {
	t.Setenv("RORISEND_HOME", t.TempDir())
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	err = activateAccount(cfg, "Ghost")

	assert.EqualError(t, err, "account 'ghost' does not exist")
	assert.Equal(t, config.DefaultAccount, cfg.ActiveAccount)
}

func TestIsKeychain(t *testing.T) {
	tests := []struct {
		typeName string
		want     bool
	}{
		{"keychain", true},
		{"Keychain", true},
		{" KEYCHAIN ", true},
		{"ledger", false},
		{"", false},
		{"bogus", false},
	}
	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			assert.Equal(t, tt.want, isKeychain(tt.typeName))
		})
	}
}
