package send

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriSend/internal/models"
)

func TestWorkflow_SubmitValidationFails(t *testing.T) {
	w := NewWorkflow()

	opened := w.Submit(func() bool { return false })

	assert.False(t, opened)
	assert.Equal(t, Idle, w.State())
	assert.False(t, w.ConfirmVisible())
}

func TestWorkflow_SubmitOpensConfirmation(t *testing.T) {
	w := NewWorkflow()

	require.True(t, w.Submit(func() bool { return true }))

	assert.Equal(t, PendingConfirmation, w.State())
	assert.True(t, w.ConfirmVisible())
}

func TestWorkflow_SubmitIgnoredOutsideIdle(t *testing.T) {
	w := NewWorkflow()
	require.True(t, w.Submit(func() bool { return true }))

	calls := 0
	assert.False(t, w.Submit(func() bool { calls++; return true }))
	assert.Zero(t, calls)
}

func TestWorkflow_CancelReturnsToIdle(t *testing.T) {
	w := NewWorkflow()
	require.True(t, w.Submit(func() bool { return true }))

	assert.True(t, w.Cancel())
	assert.Equal(t, Idle, w.State())
	assert.False(t, w.Cancel())
}

func TestWorkflow_ConfirmEntersSending(t *testing.T) {
	w := NewWorkflow()
	require.True(t, w.Submit(func() bool { return true }))

	id, err := w.Confirm()

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, w.TransferID())
	assert.Equal(t, Sending, w.State())
	assert.False(t, w.ConfirmVisible())
}

func TestWorkflow_ConfirmRequiresPending(t *testing.T) {
	w := NewWorkflow()

	_, err := w.Confirm()
	assert.ErrorIs(t, err, ErrNotPending)

	require.True(t, w.Submit(func() bool { return true }))
	_, err = w.Confirm()
	require.NoError(t, err)

	_, err = w.Confirm()
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestWorkflow_Finish(t *testing.T) {
	w := NewWorkflow()
	require.True(t, w.Submit(func() bool { return true }))
	id, err := w.Confirm()
	require.NoError(t, err)

	assert.ErrorIs(t, w.Finish("other"), ErrNotSending)
	assert.Equal(t, Sending, w.State())

	require.NoError(t, w.Finish(id))
	assert.Equal(t, Idle, w.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "pending_confirmation", PendingConfirmation.String())
	assert.Equal(t, "sending", Sending.String())
}

func TestSummarize(t *testing.T) {
	settings := models.Settings{Currency: "USD", ConversionRate: 1, USDPrice: 0.28}
	address := "AAAA"

	t.Run("value transfer", func(t *testing.T) {
		got := Summarize(models.Fields{Address: address, Amount: "1000000", Message: "hi"}, settings, DefaultFormatters())
		assert.Equal(t, "1,000,000 i (0.28 USD)", got.Contents)
		assert.Equal(t, address, got.Address)
	})

	t.Run("message only", func(t *testing.T) {
		got := Summarize(models.Fields{Address: address, Amount: "", Message: "hi"}, settings, DefaultFormatters())
		assert.Equal(t, MessageOnlyContents, got.Contents)
	})

	t.Run("conversion rate applied", func(t *testing.T) {
		var gotPrice float64
		fm := Formatters{
			TokenAmount: func(int64) string { return "T" },
			FiatValue: func(_ int64, price float64, _ string) string {
				gotPrice = price
				return "F"
			},
		}
		got := Summarize(models.Fields{Amount: "5"}, models.Settings{USDPrice: 2, ConversionRate: 0.5}, fm)
		assert.Equal(t, "T (F)", got.Contents)
		assert.InDelta(t, 1.0, gotPrice, 1e-9)
	})
}
