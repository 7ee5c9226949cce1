package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/Rorical/RoriSend/ui/styles"
)

func RenderStatus(status string, isError, loading bool, loadingDots int, width int) string {
	statusStyle := styles.StatusStyle(width, isError)

	statusContent := status
	if loading {
		statusContent += strings.Repeat(".", loadingDots)
	}

	return statusStyle.Render(statusContent)
}

// RenderProgress shows the pipeline progress bar with its step title.
func RenderProgress(bar, title string) string {
	return bar + "\n" + styles.LabelStyle().Render(title)
}

func RenderHelp(h help.Model, bindings []key.Binding) string {
	return h.ShortHelpView(bindings)
}
