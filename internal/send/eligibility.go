package send

import "github.com/Rorical/RoriSend/internal/models"

// Capability reports whether an account type can attach a message to a
// value-bearing transfer.
type Capability interface {
	MessageAvailable() bool
}

// MessageAllowed reports whether a message may accompany amount. Zero-value
// transfers always may.
func MessageAllowed(c Capability, amount string) bool {
	return c.MessageAvailable() || ParseAmount(amount) == 0
}

// EligibleMessage returns the message to display and submit for f. An
// ineligible message is suppressed entirely.
func EligibleMessage(c Capability, f models.Fields) string {
	if !MessageAllowed(c, f.Amount) {
		return ""
	}
	return f.Message
}
