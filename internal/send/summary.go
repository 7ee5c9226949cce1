package send

import (
	"github.com/Rorical/RoriSend/internal/models"
	"github.com/Rorical/RoriSend/internal/units"
)

// MessageOnlyContents is the prompt contents of a zero-value transfer.
const MessageOnlyContents = "a message"

// Formatters renders amounts for the confirmation prompt.
type Formatters struct {
	TokenAmount func(amount int64) string
	FiatValue   func(amount int64, price float64, currency string) string
}

// DefaultFormatters uses the units package.
func DefaultFormatters() Formatters {
	return Formatters{
		TokenAmount: units.FormatTokenAmount,
		FiatValue:   units.FormatFiatValue,
	}
}

// Summarize builds the confirmation prompt from the current fields. It is
// recomputed on every render so late edits are always reflected.
func Summarize(f models.Fields, s models.Settings, fm Formatters) models.ConfirmationRequest {
	contents := MessageOnlyContents
	if amount := ParseAmount(f.Amount); amount > 0 {
		contents = fm.TokenAmount(amount) + " (" + fm.FiatValue(amount, s.USDPrice*s.ConversionRate, s.Currency) + ")"
	}
	return models.ConfirmationRequest{
		Contents: contents,
		Address:  f.Address,
	}
}
