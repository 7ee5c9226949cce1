package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	vaultVersion = 1
	saltSize     = 16
	keySize      = 32
	// SeedLength is the number of characters in a generated seed.
	SeedLength   = 81
	seedAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ9"
)

// Vault stores one password-sealed seed per account, each in its own 0600 file.
type Vault struct {
	dir string
	n   int // scrypt cost
}

type vaultEntry struct {
	Version    int    `json:"version"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

func NewVault(dir string) *Vault {
	return &Vault{dir: dir, n: 1 << 15}
}

// Seal encrypts seed under password and stores it for account, replacing
// any existing entry.
func (v *Vault) Seal(account string, password, seed []byte) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("account name required")
	}
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}
	gcm, err := v.cipher(password, salt)
	if err != nil {
		return err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}

	entry := vaultEntry{
		Version:    vaultVersion,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: gcm.Seal(nil, nonce, seed, []byte(account)),
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(v.dir, 0o700); err != nil {
		return fmt.Errorf("create vault dir: %w", err)
	}
	return os.WriteFile(v.path(account), data, 0o600)
}

// Open decrypts the seed of account. A wrong password yields ErrWrongPassword.
func (v *Vault) Open(account string, password []byte) ([]byte, error) {
	data, err := os.ReadFile(v.path(account))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrVaultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read vault: %w", err)
	}
	var entry vaultEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decode vault: %w", err)
	}
	if entry.Version != vaultVersion {
		return nil, fmt.Errorf("unsupported vault version %d", entry.Version)
	}

	gcm, err := v.cipher(password, entry.Salt)
	if err != nil {
		return nil, err
	}
	if len(entry.Nonce) != gcm.NonceSize() {
		return nil, errors.New("corrupt vault entry")
	}
	seed, err := gcm.Open(nil, entry.Nonce, entry.Ciphertext, []byte(account))
	if err != nil {
		return nil, ErrWrongPassword
	}
	return seed, nil
}

func (v *Vault) Exists(account string) bool {
	_, err := os.Stat(v.path(account))
	return err == nil
}

func (v *Vault) Delete(account string) error {
	err := os.Remove(v.path(account))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (v *Vault) path(account string) string {
	return filepath.Join(v.dir, filepath.Base(account)+".json")
}

func (v *Vault) cipher(password, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, v.n, 8, 1, keySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// GenerateSeed returns a random seed of SeedLength characters.
func GenerateSeed() ([]byte, error) {
	seed := make([]byte, SeedLength)
	max := big.NewInt(int64(len(seedAlphabet)))
	for i := range seed {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return nil, fmt.Errorf("generate seed: %w", err)
		}
		seed[i] = seedAlphabet[n.Int64()]
	}
	return seed, nil
}
