package wallet

import (
	"context"
	"fmt"

	"github.com/Rorical/RoriSend/internal/models"
)

// Ledger devices cannot display arbitrary data next to a value transfer.
const ledgerMessageAvailable = false

// Device is a connected hardware signer.
type Device interface {
	PublicKey(ctx context.Context, index int) (string, error)
}

// LedgerProvider opens a session on a hardware device. The password is not
// used; the device holds the key.
type LedgerProvider struct {
	device Device
}

func NewLedgerProvider(device Device) *LedgerProvider {
	return &LedgerProvider{device: device}
}

func (p *LedgerProvider) Type() AccountType { return Ledger }

func (p *LedgerProvider) MessageAvailable() bool { return ledgerMessageAvailable }

func (p *LedgerProvider) Unlock(ctx context.Context, _ []byte, accountName string, meta models.AccountMeta) (Credential, error) {
	if p.device == nil {
		return nil, fmt.Errorf("unlock ledger account %s: %w", accountName, ErrDeviceNotConnected)
	}
	key, err := p.device.PublicKey(ctx, meta.Index)
	if err != nil {
		return nil, fmt.Errorf("unlock ledger account %s: %w", accountName, err)
	}
	return &credential{
		accountName: accountName,
		accountType: Ledger,
		keyID:       key,
	}, nil
}
