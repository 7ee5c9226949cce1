package wallet

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/Rorical/RoriSend/internal/models"
)

const keychainMessageAvailable = true

// KeychainProvider unlocks seeds sealed in the local vault.
type KeychainProvider struct {
	vault *Vault
}

func NewKeychainProvider(vault *Vault) *KeychainProvider {
	return &KeychainProvider{vault: vault}
}

func (p *KeychainProvider) Type() AccountType { return Keychain }

func (p *KeychainProvider) MessageAvailable() bool { return keychainMessageAvailable }

func (p *KeychainProvider) Unlock(ctx context.Context, password []byte, accountName string, meta models.AccountMeta) (Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seed, err := p.vault.Open(accountName, password)
	if err != nil {
		return nil, fmt.Errorf("unlock keychain account %s: %w", accountName, err)
	}
	defer wipe(seed)

	h := sha256.New()
	h.Write(seed)
	h.Write(binary.BigEndian.AppendUint64(nil, uint64(meta.Index)))
	return &credential{
		accountName: accountName,
		accountType: Keychain,
		keyID:       hex.EncodeToString(h.Sum(nil)[:16]),
	}, nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
