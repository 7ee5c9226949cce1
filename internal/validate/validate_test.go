package validate

import (
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriSend/internal/models"
	"github.com/Rorical/RoriSend/internal/send"
)

var validAddress = strings.Repeat("A", 81)

func knownBalance(n int64) Balance {
	return func() (int64, bool) { return n, true }
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		fields  models.Fields
		balance Balance
		want    map[string]string
	}{
		{
			name:    "value transfer",
			fields:  models.Fields{Address: validAddress, Amount: "1000", Message: "hi"},
			balance: knownBalance(5000),
			want:    map[string]string{},
		},
		{
			name:   "message only",
			fields: models.Fields{Address: strings.Repeat("9", 90), Message: "hi"},
			want:   map[string]string{},
		},
		{
			name:   "missing address",
			fields: models.Fields{},
			want:   map[string]string{FieldAddress: "address is required"},
		},
		{
			name:   "short address",
			fields: models.Fields{Address: "ABC"},
			want:   map[string]string{FieldAddress: "address must be 81 or 90 characters"},
		},
		{
			name:   "lowercase address",
			fields: models.Fields{Address: strings.Repeat("a", 81)},
			want:   map[string]string{FieldAddress: "address may only contain A-Z and 9"},
		},
		{
			name:   "non numeric amount",
			fields: models.Fields{Address: validAddress, Amount: "12abc"},
			want:   map[string]string{FieldAmount: "amount must be a whole number"},
		},
		{
			name:   "negative amount",
			fields: models.Fields{Address: validAddress, Amount: "-5"},
			want:   map[string]string{FieldAmount: "amount must be a whole number"},
		},
		{
			name:   "huge amount",
			fields: models.Fields{Address: validAddress, Amount: "99999999999999999999"},
			want:   map[string]string{FieldAmount: "amount is too large"},
		},
		{
			name:    "insufficient balance",
			fields:  models.Fields{Address: validAddress, Amount: "6000"},
			balance: knownBalance(5000),
			want:    map[string]string{FieldAmount: "not enough balance"},
		},
		{
			name:    "unknown balance skips check",
			fields:  models.Fields{Address: validAddress, Amount: "6000"},
			balance: func() (int64, bool) { return 0, false },
			want:    map[string]string{},
		},
		{
			name:   "checksum address with bad character",
			fields: models.Fields{Address: strings.Repeat("A", 89) + "!"},
			want:   map[string]string{FieldAddress: "address may only contain A-Z and 9"},
		},
		{
			name:   "address of wrong length and alphabet reports length",
			fields: models.Fields{Address: "abc"},
			want:   map[string]string{FieldAddress: "address must be 81 or 90 characters"},
		},
		{
			name:   "padded address",
			fields: models.Fields{Address: " " + validAddress + " ", Amount: " 7 "},
			want:   map[string]string{},
		},
		{
			name:   "decimal amount",
			fields: models.Fields{Address: validAddress, Amount: "1.5"},
			want:   map[string]string{FieldAmount: "amount must be a whole number"},
		},
		{
			name:   "every field invalid",
			fields: models.Fields{Amount: "x", Message: strings.Repeat("x", send.MaxMessageLength+1)},
			want: map[string]string{
				FieldAddress: "address is required",
				FieldAmount:  "amount must be a whole number",
				FieldMessage: "message is too long",
			},
		},
		{
			name:   "message at the limit counts characters",
			fields: models.Fields{Address: validAddress, Message: strings.Repeat("é", send.MaxMessageLength)},
			want:   map[string]string{},
		},
		{
			name:   "long message",
			fields: models.Fields{Address: validAddress, Message: strings.Repeat("x", send.MaxMessageLength+1)},
			want:   map[string]string{FieldMessage: "message is too long"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := tt.fields
			v := New(func() models.Fields { return fields }, tt.balance)

			ok := v.Validate()

			assert.Equal(t, len(tt.want) == 0, ok)
			assert.Equal(t, tt.want, v.Errors())
		})
	}
}

func TestValidator_RevalidateClearsErrors(t *testing.T) {
	fields := models.Fields{}
	v := New(func() models.Fields { return fields }, nil)

	assert.False(t, v.Validate())
	assert.NotEmpty(t, v.Errors())

	fields.Address = validAddress
	assert.True(t, v.Validate())
	assert.Empty(t, v.Errors())
}

func TestFormMessageLimitMatchesStore(t *testing.T) {
	field, ok := reflect.TypeOf(form{}).FieldByName("Message")
	require.True(t, ok)
	assert.Equal(t, "max="+strconv.Itoa(send.MaxMessageLength), field.Tag.Get("validate"))
}

func TestValidator_Clear(t *testing.T) {
	v := New(func() models.Fields { return models.Fields{} }, nil)
	v.Validate()

	v.Clear(FieldAddress)

	assert.NotContains(t, v.Errors(), FieldAddress)
}
