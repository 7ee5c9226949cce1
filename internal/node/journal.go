package node

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Rorical/RoriSend/internal/models"
)

// OutboxFileName is the journal file used when no node is configured.
const OutboxFileName = "outbox.jsonl"

// Journal appends transfers to a local JSON-lines outbox for later
// broadcast by another tool.
type Journal struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
	open func(path string) (io.WriteCloser, error)
}

type journalEntry struct {
	Transfer
	Hash     string    `json:"hash"`
	QueuedAt time.Time `json:"queued_at"`
}

func NewJournal(path string) *Journal {
	return &Journal{path: path, now: time.Now, open: openOutbox}
}

func openOutbox(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

func (j *Journal) Balance(context.Context, models.AccountContext) (int64, error) {
	return 0, ErrBalanceUnavailable
}

// Broadcast appends t to the outbox and returns its content hash.
func (j *Journal) Broadcast(ctx context.Context, t Transfer) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	payload, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encode transfer: %w", err)
	}
	sum := sha256.Sum256(payload)
	entry := journalEntry{Transfer: t, Hash: hex.EncodeToString(sum[:]), QueuedAt: j.now().UTC()}
	line, err := json.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("encode outbox entry: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return "", fmt.Errorf("create outbox dir: %w", err)
	}
	f, err := j.open(j.path)
	if err != nil {
		return "", fmt.Errorf("open outbox: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		f.Close()
		return "", fmt.Errorf("write outbox: %w", err)
	}
	// The entry only counts as queued once the file is closed cleanly.
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close outbox: %w", err)
	}
	return entry.Hash, nil
}
