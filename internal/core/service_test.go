package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriSend/internal/dispatcher"
	"github.com/Rorical/RoriSend/internal/eventbus"
	"github.com/Rorical/RoriSend/internal/logging"
	"github.com/Rorical/RoriSend/internal/models"
	"github.com/Rorical/RoriSend/internal/node"
	"github.com/Rorical/RoriSend/internal/wallet"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Balance(ctx context.Context, account models.AccountContext) (int64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBackend) Broadcast(ctx context.Context, t node.Transfer) (string, error) {
	args := m.Called(ctx, t)
	return args.String(0), args.Error(1)
}

type stubCredential struct{}

func (stubCredential) AccountName() string      { return "main" }
func (stubCredential) Type() wallet.AccountType { return wallet.Keychain }
func (stubCredential) KeyID() string            { return "KEY" }

var account = models.AccountContext{AccountName: "main", AccountMeta: models.AccountMeta{Type: "keychain"}}

func startService(t *testing.T, backend *MockBackend) (*SendService, *eventbus.EventBus) {
	t.Helper()
	eb := eventbus.NewEventBus()
	svc := NewSendService(backend, account, eb, logging.Discard())
	svc.Start()
	t.Cleanup(func() {
		svc.Stop()
		eb.Close()
	})
	return svc, eb
}

func nextEvent(t *testing.T, eb *eventbus.EventBus) eventbus.CoreEvent {
	t.Helper()
	select {
	case ev := <-eb.CoreToUI():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for core event")
		return nil
	}
}

func TestSendService_InitialBalance(t *testing.T) {
	backend := new(MockBackend)
	backend.On("Balance", mock.Anything, account).Return(int64(900), nil)

	_, eb := startService(t, backend)

	assert.Equal(t, eventbus.BalanceEvent{Balance: 900, Known: true}, nextEvent(t, eb))
}

func TestSendService_UnavailableBalance(t *testing.T) {
	backend := new(MockBackend)
	backend.On("Balance", mock.Anything, account).Return(int64(0), node.ErrBalanceUnavailable)

	_, eb := startService(t, backend)

	assert.Equal(t, eventbus.BalanceEvent{Balance: 0, Known: false}, nextEvent(t, eb))
}

func TestSendService_TransferSucceeds(t *testing.T) {
	backend := new(MockBackend)
	backend.On("Balance", mock.Anything, account).Return(int64(1000), nil).Once()
	backend.On("Broadcast", mock.Anything, node.Transfer{
		ID:          "t-1",
		AccountName: "main",
		AccountType: "keychain",
		KeyID:       "KEY",
		Address:     "DEST",
		Value:       500,
		Message:     "hi",
	}).Return("HASH", nil)
	backend.On("Balance", mock.Anything, account).Return(int64(500), nil).Once()

	_, eb := startService(t, backend)
	require.IsType(t, eventbus.BalanceEvent{}, nextEvent(t, eb))

	require.NoError(t, eb.SubmitTransfer(context.Background(), dispatcher.TransferRequest{
		ID:          "t-1",
		Credential:  stubCredential{},
		Address:     "DEST",
		AmountUnits: 500,
		Message:     "hi",
	}))

	preparing := nextEvent(t, eb).(eventbus.SendStateEvent)
	assert.True(t, preparing.IsSending)
	assert.Equal(t, TitlePreparing, preparing.Progress.Title)
	assert.False(t, preparing.Settled)

	broadcasting := nextEvent(t, eb).(eventbus.SendStateEvent)
	assert.Equal(t, TitleBroadcasting, broadcasting.Progress.Title)
	assert.InDelta(t, 0.5, broadcasting.Progress.Progress, 1e-9)

	done := nextEvent(t, eb).(eventbus.SendStateEvent)
	assert.False(t, done.IsSending)
	assert.True(t, done.Settled)
	assert.Equal(t, "t-1", done.TransferID)
	assert.Equal(t, "HASH", done.TxHash)
	assert.NoError(t, done.Error)

	assert.Equal(t, eventbus.BalanceEvent{Balance: 500, Known: true}, nextEvent(t, eb))
	backend.AssertExpectations(t)
}

func TestSendService_TransferBroadcastFails(t *testing.T) {
	backend := new(MockBackend)
	boom := errors.New("node unreachable")
	backend.On("Balance", mock.Anything, account).Return(int64(0), node.ErrBalanceUnavailable)
	backend.On("Broadcast", mock.Anything, mock.Anything).Return("", boom)

	_, eb := startService(t, backend)
	nextEvent(t, eb)

	require.NoError(t, eb.SubmitTransfer(context.Background(), dispatcher.TransferRequest{ID: "t-2", Credential: stubCredential{}}))
	nextEvent(t, eb)
	nextEvent(t, eb)

	failed := nextEvent(t, eb).(eventbus.SendStateEvent)
	assert.False(t, failed.IsSending)
	assert.True(t, failed.Settled)
	assert.ErrorIs(t, failed.Error, boom)
}

func TestSendService_AbortedTransfer(t *testing.T) {
	backend := new(MockBackend)
	backend.On("Balance", mock.Anything, account).Return(int64(0), node.ErrBalanceUnavailable)

	_, eb := startService(t, backend)
	nextEvent(t, eb)

	require.NoError(t, eb.SendToCore(eventbus.TransferAbortedEvent{ID: "t-3", Err: wallet.ErrWrongPassword}))

	ev := nextEvent(t, eb).(eventbus.SendStateEvent)
	assert.Equal(t, "t-3", ev.TransferID)
	assert.True(t, ev.Settled)
	assert.False(t, ev.IsSending)
	assert.ErrorIs(t, ev.Error, wallet.ErrWrongPassword)
	backend.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
}

func TestSendService_SettlementSurvivesOpenBreaker(t *testing.T) {
	backend := new(MockBackend)
	backend.On("Balance", mock.Anything, account).Return(int64(0), node.ErrBalanceUnavailable)
	backend.On("Broadcast", mock.Anything, mock.Anything).Return("HASH", nil)

	eb := eventbus.NewEventBusWithBuffer(1)
	svc := NewSendService(backend, account, eb, logging.Discard())
	svc.Start()
	t.Cleanup(func() {
		svc.Stop()
		eb.Close()
	})

	// Stall the UI until the core to UI breaker trips.
	require.Eventually(t, func() bool { return len(eb.CoreToUI()) == 1 }, 2*time.Second, 10*time.Millisecond)
	for i := 0; i < 5; i++ {
		_ = eb.SendToUI(eventbus.BalanceEvent{})
	}
	require.Equal(t, gobreaker.StateOpen, eb.UIBreakerState())

	require.NoError(t, eb.SubmitTransfer(context.Background(), dispatcher.TransferRequest{ID: "t-4", Credential: stubCredential{}}))

	nextEvent(t, eb)
	settled, ok := nextEvent(t, eb).(eventbus.SendStateEvent)
	require.True(t, ok)
	assert.Equal(t, "t-4", settled.TransferID)
	assert.True(t, settled.Settled)
	assert.Equal(t, "HASH", settled.TxHash)
}

func TestSendState_Snapshot(t *testing.T) {
	s := NewSendState()
	s.StartTransfer("t-1", TitlePreparing)
	assert.True(t, s.IsSending())

	s.FinishWithHash("H", TitleComplete)
	snap := s.Snapshot()
	assert.False(t, snap.IsSending)
	assert.Equal(t, models.Progress{Progress: 1, Title: TitleComplete}, snap.Progress)
	assert.Equal(t, "H", snap.TxHash)
}
