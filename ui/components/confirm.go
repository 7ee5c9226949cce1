package components

import (
	"github.com/Rorical/RoriSend/internal/models"
	"github.com/Rorical/RoriSend/ui/styles"
)

func RenderConfirm(req models.ConfirmationRequest, width int) string {
	highlight := styles.HighlightStyle()
	body := "You are about to send " + highlight.Render(req.Contents) +
		"\nto " + highlight.Render(req.Address) +
		"\n\nConfirm?"
	return styles.ConfirmStyle(width).Render(body)
}
