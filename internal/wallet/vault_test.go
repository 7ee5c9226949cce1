package wallet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	v := NewVault(filepath.Join(t.TempDir(), "vault"))
	v.n = 1 << 10
	return v
}

func TestVault_SealOpen(t *testing.T) {
	v := newTestVault(t)
	seed := []byte("SEED9SEED")

	require.NoError(t, v.Seal("main", []byte("hunter2"), seed))
	assert.True(t, v.Exists("main"))

	got, err := v.Open("main", []byte("hunter2"))
	require.NoError(t, err)
	assert.Equal(t, seed, got)
}

func TestVault_WrongPassword(t *testing.T) {
	v := newTestVault(t)
	require.NoError(t, v.Seal("main", []byte("hunter2"), []byte("SEED")))

	_, err := v.Open("main", []byte("nope"))
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestVault_EntryBoundToAccount(t *testing.T) {
	v := newTestVault(t)
	require.NoError(t, v.Seal("main", []byte("pw"), []byte("SEED")))

	data, err := os.ReadFile(v.path("main"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(v.path("other"), data, 0o600))

	_, err = v.Open("other", []byte("pw"))
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestVault_Missing(t *testing.T) {
	v := newTestVault(t)

	_, err := v.Open("ghost", []byte("pw"))
	assert.ErrorIs(t, err, ErrVaultNotFound)
	assert.False(t, v.Exists("ghost"))
	assert.NoError(t, v.Delete("ghost"))
}

func TestVault_Delete(t *testing.T) {
	v := newTestVault(t)
	require.NoError(t, v.Seal("main", []byte("pw"), []byte("SEED")))

	require.NoError(t, v.Delete("main"))
	assert.False(t, v.Exists("main"))
}

func TestVault_FileMode(t *testing.T) {
	v := newTestVault(t)
	require.NoError(t, v.Seal("main", []byte("pw"), []byte("SEED")))

	info, err := os.Stat(v.path("main"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestVault_SealRequiresAccount(t *testing.T) {
	v := newTestVault(t)
	assert.Error(t, v.Seal(" ", []byte("pw"), []byte("SEED")))
}

func TestGenerateSeed(t *testing.T) {
	seed, err := GenerateSeed()
	require.NoError(t, err)
	require.Len(t, seed, SeedLength)
	for _, c := range seed {
		assert.Contains(t, seedAlphabet, string(c))
	}

	other, err := GenerateSeed()
	require.NoError(t, err)
	assert.NotEqual(t, seed, other)
}
