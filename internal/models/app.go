package models

// ConfirmationRequest is the rendered confirmation prompt (avoiding import cycle)
type ConfirmationRequest struct {
	Contents string // "1,000,000 i (0.28 USD)" or the message-only phrase
	Address  string // Destination address
}

// FieldFocus identifies the focused form input.
type FieldFocus int

const (
	FocusAddress FieldFocus = iota
	FocusAmount
	FocusMessage
)

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Status        string   // Status bar text
	StatusIsError bool     // Render status as an error
	IsSending     bool     // Reported by the send pipeline
	Progress      Progress // Reported by the send pipeline
	Unlocking     bool     // Credential unlock in flight
	LoadingDots   int      // Animation counter while unlocking or sending
	Balance       int64    // Available balance in base units
	BalanceKnown  bool     // Whether the backend could report a balance
	UnitsVisible  bool     // Unit legend overlay
	Focus         FieldFocus
	FieldErrors   map[string]string
	Width         int // Terminal width
	Height        int // Terminal height
}
