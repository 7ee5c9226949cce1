// Package validate checks the send form before a confirmation is requested.
package validate

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Rorical/RoriSend/internal/models"
)

const (
	FieldAddress = "address"
	FieldAmount  = "amount"
	FieldMessage = "message"
)

const (
	// AddressLength is an address without checksum; AddressWithChecksumLength with it.
	AddressLength             = 81
	AddressWithChecksumLength = 90
	addressAlphabet           = "ABCDEFGHIJKLMNOPQRSTUVWXYZ9"
	addressTag                = "trytes"
)

// form mirrors models.Fields with the rules of each field. The message limit
// matches send.MaxMessageLength.
type form struct {
	Address string `validate:"required,len=81|len=90,trytes"`
	Amount  string `validate:"omitempty,number"`
	Message string `validate:"max=2187"`
}

var (
	formValidator *validator.Validate
	validatorOnce sync.Once
)

// getValidator returns the shared validator with the address alphabet rule
// registered. Registration only fails for a malformed tag.
func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		vld := validator.New(validator.WithRequiredStructEnabled())
		if err := vld.RegisterValidation(addressTag, isTrytes); err != nil {
			panic("validate: register " + addressTag + ": " + err.Error())
		}
		formValidator = vld
	})
	return formValidator
}

func isTrytes(fl validator.FieldLevel) bool {
	for _, c := range fl.Field().String() {
		if !strings.ContainsRune(addressAlphabet, c) {
			return false
		}
	}
	return true
}

// Balance reports the spendable balance and whether it is known.
type Balance func() (int64, bool)

// Validator validates the form and keeps the per-field errors of the last run
// for the form to display.
type Validator struct {
	fields  func() models.Fields
	balance Balance
	errors  map[string]string
}

func New(fields func() models.Fields, balance Balance) *Validator {
	return &Validator{
		fields:  fields,
		balance: balance,
		errors:  map[string]string{},
	}
}

// Validate is the validateInputs collaborator of the confirmation workflow.
func (v *Validator) Validate() bool {
	f := v.fields()
	in := form{
		Address: strings.TrimSpace(f.Address),
		Amount:  strings.TrimSpace(f.Amount),
		Message: f.Message,
	}
	v.errors = map[string]string{}

	if err := getValidator().Struct(in); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			v.errors[FieldAddress] = err.Error()
			return false
		}
		for _, fe := range fieldErrors {
			field, msg := describe(fe)
			v.errors[field] = msg
		}
	}

	if _, failed := v.errors[FieldAmount]; !failed && in.Amount != "" {
		if msg := v.checkFunds(in.Amount); msg != "" {
			v.errors[FieldAmount] = msg
		}
	}
	return len(v.errors) == 0
}

// describe maps a failed rule onto the form field and its message.
func describe(fe validator.FieldError) (string, string) {
	switch fe.Field() {
	case "Address":
		switch fe.Tag() {
		case "required":
			return FieldAddress, "address is required"
		case addressTag:
			return FieldAddress, "address may only contain A-Z and 9"
		}
		return FieldAddress, "address must be 81 or 90 characters"
	case "Amount":
		return FieldAmount, "amount must be a whole number"
	case "Message":
		return FieldMessage, "message is too long"
	}
	return strings.ToLower(fe.Field()), fe.Error()
}

// checkFunds runs on a digits-only amount.
func (v *Validator) checkFunds(amount string) string {
	n, err := strconv.ParseInt(amount, 10, 64)
	if err != nil {
		return "amount is too large"
	}
	if v.balance != nil {
		if available, known := v.balance(); known && n > available {
			return "not enough balance"
		}
	}
	return ""
}

// Errors returns a copy of the errors found by the last Validate.
func (v *Validator) Errors() map[string]string {
	out := make(map[string]string, len(v.errors))
	for k, msg := range v.errors {
		out[k] = msg
	}
	return out
}

// Clear drops the errors of field, typically once the user edits it.
func (v *Validator) Clear(field string) {
	delete(v.errors, field)
}
