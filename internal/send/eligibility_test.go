package send

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rorical/RoriSend/internal/models"
)

type capability bool

func (c capability) MessageAvailable() bool { return bool(c) }

func TestMessageAllowed_ZeroAmountAlwaysAllowed(t *testing.T) {
	for _, amount := range []string{"", "0", "-5", "abc", "   "} {
		for _, c := range []capability{true, false} {
			assert.True(t, MessageAllowed(c, amount), "amount %q capability %v", amount, c)
		}
	}
}

func TestMessageAllowed_ValueTransfer(t *testing.T) {
	assert.True(t, MessageAllowed(capability(true), "500"))
	assert.False(t, MessageAllowed(capability(false), "500"))
}

func TestEligibleMessage(t *testing.T) {
	tests := []struct {
		name       string
		capability capability
		fields     models.Fields
		want       string
	}{
		{"capable value transfer", true, models.Fields{Amount: "1000000", Message: "hi"}, "hi"},
		{"incapable message only", false, models.Fields{Amount: "", Message: "hi"}, "hi"},
		{"incapable value transfer", false, models.Fields{Amount: "500", Message: "secret"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EligibleMessage(tt.capability, tt.fields))
		})
	}
}
