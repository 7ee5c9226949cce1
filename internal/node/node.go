// Package node talks to the broadcast backend: either a remote node over
// HTTP or a local outbox journal when no node is configured.
package node

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/Rorical/RoriSend/internal/models"
)

// ErrBalanceUnavailable is returned by backends that cannot report balances.
var ErrBalanceUnavailable = errors.New("balance unavailable")

// Transfer is the signed-off transfer handed to the backend.
type Transfer struct {
	ID          string `json:"id"`
	AccountName string `json:"account"`
	AccountType string `json:"account_type"`
	KeyID       string `json:"key_id"`
	Address     string `json:"address"`
	Value       int64  `json:"value"`
	Message     string `json:"message,omitempty"`
}

// Backend broadcasts transfers and reports balances.
type Backend interface {
	Balance(ctx context.Context, account models.AccountContext) (int64, error)
	Broadcast(ctx context.Context, t Transfer) (string, error)
}

// Options selects and configures a backend.
type Options struct {
	URL     string
	Timeout time.Duration
	Home    string // journal location when URL is empty
}

// New returns an HTTP client when a URL is configured and the outbox journal
// otherwise.
func New(opts Options) Backend {
	if opts.URL != "" {
		return NewHTTPClient(opts.URL, opts.Timeout)
	}
	return NewJournal(filepath.Join(opts.Home, OutboxFileName))
}
