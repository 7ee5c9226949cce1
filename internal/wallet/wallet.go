// Package wallet provides the account-type variants and the credential
// providers that unlock a signing credential for an account.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rorical/RoriSend/internal/models"
)

// AccountType tags the credential backend of an account.
type AccountType string

const (
	// Keychain accounts keep their seed in the local encrypted vault.
	Keychain AccountType = "keychain"
	// Ledger accounts sign on a hardware device.
	Ledger AccountType = "ledger"
)

var (
	ErrUnknownAccountType = errors.New("unknown account type")
	ErrWrongPassword      = errors.New("wrong password")
	ErrVaultNotFound      = errors.New("no vault entry for account")
	ErrDeviceNotConnected = errors.New("hardware device not connected")
)

// AccountTypes lists every supported account type.
func AccountTypes() []AccountType {
	return []AccountType{Keychain, Ledger}
}

func ParseAccountType(s string) (AccountType, error) {
	switch t := AccountType(strings.ToLower(strings.TrimSpace(s))); t {
	case Keychain, Ledger:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAccountType, s)
}

// Credential is an unlocked signing context for one account.
type Credential interface {
	AccountName() string
	Type() AccountType
	// KeyID identifies the signing key to the broadcast backend.
	KeyID() string
}

// CredentialProvider is one account-type variant. MessageAvailable is a
// constant of the variant.
type CredentialProvider interface {
	Type() AccountType
	MessageAvailable() bool
	Unlock(ctx context.Context, password []byte, accountName string, meta models.AccountMeta) (Credential, error)
}

// Providers selects the provider for an account type.
type Providers struct {
	keychain *KeychainProvider
	ledger   *LedgerProvider
}

func NewProviders(vault *Vault, device Device) *Providers {
	return &Providers{
		keychain: NewKeychainProvider(vault),
		ledger:   NewLedgerProvider(device),
	}
}

func (p *Providers) For(t AccountType) (CredentialProvider, error) {
	switch t {
	case Keychain:
		return p.keychain, nil
	case Ledger:
		return p.ledger, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAccountType, t)
}

// ForMeta parses meta.Type and selects its provider.
func (p *Providers) ForMeta(meta models.AccountMeta) (CredentialProvider, error) {
	t, err := ParseAccountType(meta.Type)
	if err != nil {
		return nil, err
	}
	return p.For(t)
}

type credential struct {
	accountName string
	accountType AccountType
	keyID       string
}

func (c *credential) AccountName() string { return c.accountName }
func (c *credential) Type() AccountType   { return c.accountType }
func (c *credential) KeyID() string       { return c.keyID }
