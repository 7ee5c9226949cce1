package eventbus

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Rorical/RoriSend/internal/dispatcher"
	"github.com/Rorical/RoriSend/internal/models"
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// SubmitTransferEvent - UI hands a confirmed, unlocked transfer to the pipeline
type SubmitTransferEvent struct {
	Request dispatcher.TransferRequest
}

func (e SubmitTransferEvent) UIEvent() {}

// TransferAbortedEvent - UI reports a transfer that failed before submission
type TransferAbortedEvent struct {
	ID  string
	Err error
}

func (e TransferAbortedEvent) UIEvent() {}

// RefreshBalanceEvent - UI asks the core to reload the account balance
type RefreshBalanceEvent struct{}

func (e RefreshBalanceEvent) UIEvent() {}

// SendStateEvent - Core pushes send pipeline state to UI
type SendStateEvent struct {
	TransferID string
	IsSending  bool
	Progress   models.Progress
	Settled    bool   // TransferID finished, successfully or not
	TxHash     string // Set on success
	Error      error
}

func (e SendStateEvent) CoreEvent() {}

// BalanceEvent - Core pushes the available balance to UI
type BalanceEvent struct {
	Balance int64
	Known   bool
}

func (e BalanceEvent) CoreEvent() {}

var (
	ErrChannelFull = errors.New("channel is full")
	ErrClosed      = errors.New("event bus is closed")
)

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

func (e EventBusError) Unwrap() error {
	return e.Err
}

const (
	defaultBuffer      = 100
	breakerMaxFailures = 5
	breakerTimeout     = 30 * time.Second
)

// EventBus handles communication between UI and Core with circuit breaker
type EventBus struct {
	uiToCore      chan UIEvent
	coreToUI      chan CoreEvent
	errorCallback func(EventBusError)
	toCore        *gobreaker.CircuitBreaker
	toUI          *gobreaker.CircuitBreaker
	mu            sync.RWMutex
	closed        bool
	closing       chan struct{}
	closeOnce     sync.Once
}

func NewEventBus() *EventBus {
	return NewEventBusWithBuffer(defaultBuffer)
}

func NewEventBusWithBuffer(size int) *EventBus {
	return &EventBus{
		uiToCore: make(chan UIEvent, size),
		coreToUI: make(chan CoreEvent, size),
		toCore:   newBreaker("eventbus-to-core"),
		toUI:     newBreaker("eventbus-to-ui"),
		closing:  make(chan struct{}),
	}
}

// Each direction trips on its own so a stalled UI cannot block submissions.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerMaxFailures
		},
	})
}

func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.errorCallback = callback
}

func (eb *EventBus) reportError(operation string, err error) {
	if eb.errorCallback != nil {
		eb.errorCallback(EventBusError{
			Operation: operation,
			Err:       err,
			Timestamp: time.Now(),
		})
	}
}

func (eb *EventBus) SendToCore(event UIEvent) error {
	err := eb.send(eb.toCore, func() bool {
		select {
		case eb.uiToCore <- event:
			return true
		default:
			return false
		}
	})
	if err != nil {
		eb.reportError("SendToCore", err)
	}
	return err
}

func (eb *EventBus) SendToUI(event CoreEvent) error {
	err := eb.send(eb.toUI, func() bool {
		select {
		case eb.coreToUI <- event:
			return true
		default:
			return false
		}
	})
	if err != nil {
		eb.reportError("SendToUI", err)
	}
	return err
}

// DeliverToUI waits for room on the UI channel instead of dropping event. It
// bypasses the breaker and is meant for events the UI cannot miss.
func (eb *EventBus) DeliverToUI(ctx context.Context, event CoreEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return ErrClosed
	}
	select {
	case eb.coreToUI <- event:
		return nil
	case <-eb.closing:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (eb *EventBus) send(breaker *gobreaker.CircuitBreaker, deliver func() bool) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return ErrClosed
	}
	_, err := breaker.Execute(func() (interface{}, error) {
		if !deliver() {
			return nil, ErrChannelFull
		}
		return nil, nil
	})
	return err
}

// SubmitTransfer hands req to the send pipeline.
func (eb *EventBus) SubmitTransfer(_ context.Context, req dispatcher.TransferRequest) error {
	return eb.SendToCore(SubmitTransferEvent{Request: req})
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

// CoreBreakerState is the breaker state of the UI to core direction.
func (eb *EventBus) CoreBreakerState() gobreaker.State {
	return eb.toCore.State()
}

// UIBreakerState is the breaker state of the core to UI direction.
func (eb *EventBus) UIBreakerState() gobreaker.State {
	return eb.toUI.State()
}

func (eb *EventBus) Close() {
	// Release DeliverToUI callers before taking the write lock.
	eb.closeOnce.Do(func() { close(eb.closing) })
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.closed {
		return
	}
	eb.closed = true
	close(eb.uiToCore)
	close(eb.coreToUI)
}
