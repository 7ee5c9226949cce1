package update

import (
	"context"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriSend/internal/dispatcher"
	"github.com/Rorical/RoriSend/internal/eventbus"
	"github.com/Rorical/RoriSend/internal/models"
)

const (
	StatusReady      = "Ready"
	StatusUnlocking  = "Unlocking account"
	StatusCancelled  = "Transfer cancelled"
	StatusRefreshing = "Refreshing balance"
)

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// ListenForCoreEvents waits for the next event pushed by the send pipeline.
// It returns nil once the bus is closed.
func ListenForCoreEvents(eb *eventbus.EventBus) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-eb.CoreToUI()
		if !ok {
			return nil
		}
		return CoreEventMsg{Event: event}
	}
}

// Settlement is a transfer the pipeline has finished with.
type Settlement struct {
	TransferID string
	TxHash     string
	Err        error
}

// HandleCoreEvent processes events from the core. It returns the settled
// transfer, if the event settled one.
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) (Settlement, bool) {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.SendStateEvent:
		appModel.IsSending = event.IsSending
		appModel.Progress = event.Progress

		switch {
		case event.Error != nil:
			appModel.Status = "Error: " + event.Error.Error()
			appModel.StatusIsError = true
		case event.IsSending:
			appModel.Status = event.Progress.Title
			appModel.StatusIsError = false
		case event.TxHash != "":
			appModel.Status = "Sent " + event.TxHash
			appModel.StatusIsError = false
		}

		if event.Settled {
			return Settlement{TransferID: event.TransferID, TxHash: event.TxHash, Err: event.Error}, true
		}
	case eventbus.BalanceEvent:
		appModel.Balance = event.Balance
		appModel.BalanceKnown = event.Known
		if appModel.Status == StatusRefreshing {
			appModel.Status = StatusReady
		}
	}
	return Settlement{}, false
}

// Dispatcher runs a confirmed transfer.
type Dispatcher interface {
	Dispatch(ctx context.Context, task dispatcher.Task) error
}

// DispatchResultMsg reports the outcome of the unlock and submit hand-off.
type DispatchResultMsg struct {
	ID  string
	Err error
}

// DispatchCmd runs task off the UI loop.
func DispatchCmd(ctx context.Context, d Dispatcher, task dispatcher.Task) tea.Cmd {
	return func() tea.Msg {
		return DispatchResultMsg{ID: task.ID, Err: d.Dispatch(ctx, task)}
	}
}

// RefreshFailedMsg reports a balance refresh the pipeline never received.
type RefreshFailedMsg struct {
	Err error
}

// RefreshBalanceCmd asks the pipeline to reload the balance. The new balance
// arrives as a core event.
func RefreshBalanceCmd(eb *eventbus.EventBus) tea.Cmd {
	return func() tea.Msg {
		if err := eb.SendToCore(eventbus.RefreshBalanceEvent{}); err != nil {
			return RefreshFailedMsg{Err: err}
		}
		return nil
	}
}

// MaxAmount is the amount field value for the whole balance.
func MaxAmount(appModel *models.AppModel) (string, bool) {
	if !appModel.BalanceKnown || appModel.Balance <= 0 {
		return "", false
	}
	return strconv.FormatInt(appModel.Balance, 10), true
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}

func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	// Only handle UI animations - loading dots
	if appModel.Unlocking || appModel.IsSending {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	}
	return TickCmd()
}
