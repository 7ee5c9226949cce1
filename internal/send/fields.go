// Package send implements the transfer form workflow: field coercion, message
// eligibility, the validation gate and the confirmation state machine.
package send

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Rorical/RoriSend/internal/models"
)

// MaxMessageLength is the longest message, in characters, one transfer carries.
const MaxMessageLength = 2187

// ParseAmount coerces a stored amount to base units. It reads the leading
// base-10 integer the way the form always has: "12abc" is 12, while empty,
// non-numeric, non-positive and out-of-range input all read as 0.
func ParseAmount(amount string) int64 {
	s := strings.TrimLeft(amount, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FieldSetter is the store owning the form fields.
type FieldSetter interface {
	SetAddress(string)
	SetAmount(string)
	SetMessage(string)
}

// UpdateFields applies a combined address/message/amount update, as produced
// by pasting or scanning a payment payload. The address is always set; an
// empty message or amount leaves the stored value untouched.
func UpdateFields(store FieldSetter, address, message, amount string) {
	store.SetAddress(address)
	if message != "" {
		store.SetMessage(message)
	}
	if amount != "" {
		store.SetAmount(amount)
	}
}

// Store is an in-memory FieldSetter.
type Store struct {
	fields models.Fields
}

func NewStore(initial models.Fields) *Store {
	return &Store{fields: initial}
}

func (s *Store) Fields() models.Fields {
	return s.fields
}

func (s *Store) SetAddress(v string) {
	s.fields.Address = v
}

func (s *Store) SetAmount(v string) {
	s.fields.Amount = v
}

// SetMessage stores v truncated to MaxMessageLength characters.
func (s *Store) SetMessage(v string) {
	if utf8.RuneCountInString(v) > MaxMessageLength {
		v = string([]rune(v)[:MaxMessageLength])
	}
	s.fields.Message = v
}

// Reset clears every field.
func (s *Store) Reset() {
	s.fields = models.Fields{}
}
