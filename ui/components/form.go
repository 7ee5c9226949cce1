package components

import (
	"strings"

	"github.com/Rorical/RoriSend/internal/units"
	"github.com/Rorical/RoriSend/ui/styles"
)

// Field is one rendered form row.
type Field struct {
	Label    string
	Input    string // rendered input widget
	Error    string
	Focused  bool
	Disabled bool
}

func RenderTitle(accountName, accountType string) string {
	return styles.TitleStyle().Render("Send from " + accountName + " (" + accountType + ")")
}

func RenderField(f Field, width int) string {
	var b strings.Builder
	b.WriteString(styles.LabelStyle().Render(f.Label))
	b.WriteString("\n")

	input := f.Input
	if f.Disabled {
		input = styles.DisabledStyle().Render("not available for this account")
	}
	b.WriteString(styles.InputStyle(width, f.Focused && !f.Disabled).Render(input))
	b.WriteString("\n")

	if f.Error != "" {
		b.WriteString(styles.FieldErrorStyle().Render(f.Error))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderBalance shows the available balance, or a placeholder when the
// backend cannot report one.
func RenderBalance(balance int64, known bool) string {
	if !known {
		return styles.LabelStyle().Render("Balance: unknown")
	}
	return styles.BalanceStyle().Render("Balance: " + units.FormatTokenAmount(balance) + " (" + units.FormatShort(balance) + ")")
}
