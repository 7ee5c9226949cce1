package components

import (
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"

	"github.com/Rorical/RoriSend/internal/models"
)

func TestRenderField(t *testing.T) {
	out := RenderField(Field{Label: "Amount", Input: "42", Error: "not enough balance", Focused: true}, 60)
	assert.Contains(t, out, "Amount")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "not enough balance")
}

func TestRenderField_DisabledHidesInput(t *testing.T) {
	out := RenderField(Field{Label: "Message", Input: "secret", Disabled: true}, 60)
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "not available")
}

func TestRenderBalance(t *testing.T) {
	assert.Contains(t, RenderBalance(1_500_000, true), "1,500,000 i (1.5 Mi)")
	assert.Contains(t, RenderBalance(0, false), "unknown")
}

func TestRenderConfirm(t *testing.T) {
	out := RenderConfirm(models.ConfirmationRequest{Contents: "a message", Address: "ADDR"}, 60)
	assert.Contains(t, out, "a message")
	assert.Contains(t, out, "ADDR")
}

func TestUnitLegend(t *testing.T) {
	legend := UnitLegend()
	assert.Contains(t, legend, "Ti  = 1,000,000,000,000 i")
	assert.Contains(t, legend, "Ki  = 1,000 i")
	assert.Contains(t, legend, "i   = 1 i")
}

func TestRenderStatus(t *testing.T) {
	assert.Contains(t, RenderStatus("Sending", false, true, 3, 40), "Sending...")
	assert.NotContains(t, RenderStatus("Ready", false, false, 3, 40), "Ready.")
}

func TestRenderHelp(t *testing.T) {
	out := RenderHelp(help.New(), []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	})
	assert.Contains(t, out, "send")
}
