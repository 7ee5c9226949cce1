package components

import (
	"fmt"
	"strings"

	"github.com/Rorical/RoriSend/internal/units"
	"github.com/Rorical/RoriSend/ui/styles"
)

// UnitLegend renders the denomination table as plain text rows.
func UnitLegend() string {
	var b strings.Builder
	for _, d := range units.Table() {
		fmt.Fprintf(&b, "%-3s = %s\n", d.Symbol, units.FormatTokenAmount(d.Multiplier))
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderUnits() string {
	return styles.LegendStyle().Render("Units\n\n" + UnitLegend() + "\n\npress any key to close")
}
