package core

import (
	"sync"

	"github.com/Rorical/RoriSend/internal/eventbus"
	"github.com/Rorical/RoriSend/internal/models"
)

// SendState manages the send pipeline state pushed to the UI
type SendState struct {
	mu           sync.RWMutex
	transferID   string
	isSending    bool
	progress     models.Progress
	settled      bool
	txHash       string
	lastError    error
	balance      int64
	balanceKnown bool
}

func NewSendState() *SendState {
	return &SendState{}
}

// Atomic operations for event ordering
func (s *SendState) StartTransfer(id, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transferID = id
	s.isSending = true
	s.settled = false
	s.txHash = ""
	s.lastError = nil
	s.progress = models.Progress{Progress: 0, Title: title}
}

func (s *SendState) SetProgress(progress float64, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = models.Progress{Progress: progress, Title: title}
}

func (s *SendState) FinishWithHash(hash, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isSending = false
	s.settled = true
	s.txHash = hash
	s.lastError = nil
	s.progress = models.Progress{Progress: 1, Title: title}
}

// FinishWithError settles transfer id as failed. A transfer that never
// reached the pipeline is settled the same way.
func (s *SendState) FinishWithError(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transferID = id
	s.isSending = false
	s.settled = true
	s.txHash = ""
	s.lastError = err
	s.progress = models.Progress{}
}

func (s *SendState) IsSending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isSending
}

func (s *SendState) SetBalance(balance int64, known bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balance = balance
	s.balanceKnown = known
}

func (s *SendState) Balance() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balance, s.balanceKnown
}

// Snapshot renders the current state as a UI event.
func (s *SendState) Snapshot() eventbus.SendStateEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return eventbus.SendStateEvent{
		TransferID: s.transferID,
		IsSending:  s.isSending,
		Progress:   s.progress,
		Settled:    s.settled,
		TxHash:     s.txHash,
		Error:      s.lastError,
	}
}
