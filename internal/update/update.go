package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriSend/internal/models"
)

// HandleUpdate applies the messages that only touch shared UI state. It
// reports whether msg was consumed.
func HandleUpdate(appModel *models.AppModel, msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, msg)
		return nil, true
	case TickMsg:
		return HandleTickMsg(appModel), true
	}
	return nil, false
}
