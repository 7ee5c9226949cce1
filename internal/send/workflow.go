package send

import (
	"errors"

	"github.com/google/uuid"
)

// State of the confirmation workflow.
type State int

const (
	Idle State = iota
	PendingConfirmation
	Sending
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PendingConfirmation:
		return "pending_confirmation"
	case Sending:
		return "sending"
	default:
		return "unknown"
	}
}

var (
	ErrNotPending = errors.New("no transfer is awaiting confirmation")
	ErrNotSending = errors.New("no transfer is being sent")
)

// Workflow is the Idle -> PendingConfirmation -> Sending state machine. The
// confirmation prompt is visible exactly while the state is
// PendingConfirmation. Workflow is not safe for concurrent use; the UI loop
// owns it.
type Workflow struct {
	state      State
	transferID string
}

func NewWorkflow() *Workflow {
	return &Workflow{state: Idle}
}

func (w *Workflow) State() State {
	return w.state
}

func (w *Workflow) ConfirmVisible() bool {
	return w.state == PendingConfirmation
}

// TransferID is the id issued by the last Confirm.
func (w *Workflow) TransferID() string {
	return w.transferID
}

// Submit runs validate and opens the confirmation prompt when it passes.
// Callers must have consumed the triggering input event before calling.
// Submit is a no-op outside Idle.
func (w *Workflow) Submit(validate func() bool) bool {
	if w.state != Idle {
		return false
	}
	if !validate() {
		return false
	}
	w.state = PendingConfirmation
	return true
}

// Cancel dismisses the prompt without side effects. Fields are untouched.
func (w *Workflow) Cancel() bool {
	if w.state != PendingConfirmation {
		return false
	}
	w.state = Idle
	return true
}

// Confirm closes the prompt and enters Sending, returning a fresh transfer id.
// It must be called before any credential work starts.
func (w *Workflow) Confirm() (string, error) {
	if w.state != PendingConfirmation {
		return "", ErrNotPending
	}
	w.state = Sending
	w.transferID = uuid.NewString()
	return w.transferID, nil
}

// Finish returns to Idle once the send pipeline reports the transfer
// with the given id as settled.
func (w *Workflow) Finish(transferID string) error {
	if w.state != Sending || transferID != w.transferID {
		return ErrNotSending
	}
	w.state = Idle
	return nil
}
