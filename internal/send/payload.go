package send

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// PayloadScheme is the URI scheme accepted by ParsePayload.
const PayloadScheme = "iota"

var ErrEmptyPayload = errors.New("empty payload")

// Payload is a parsed address/amount/message bundle. Amount is empty when
// the payload carries none.
type Payload struct {
	Address string
	Amount  string
	Message string
}

// ParsePayload accepts a bare address, a URI of the form
// iota://ADDRESS/?amount=N&message=TEXT, or a JSON object with address,
// amount and message keys.
func ParsePayload(raw string) (Payload, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Payload{}, ErrEmptyPayload
	}

	switch {
	case strings.HasPrefix(raw, "{"):
		return parseJSONPayload(raw)
	case strings.HasPrefix(strings.ToLower(raw), PayloadScheme+":"):
		return parseURIPayload(raw)
	}
	return Payload{Address: raw}, nil
}

// Apply hands the payload to UpdateFields.
func (p Payload) Apply(store FieldSetter) {
	UpdateFields(store, p.Address, p.Message, p.Amount)
}

func parseJSONPayload(raw string) (Payload, error) {
	var doc struct {
		Address string          `json:"address"`
		Amount  json.RawMessage `json:"amount"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return Payload{}, fmt.Errorf("decode payload: %w", err)
	}
	p := Payload{Address: strings.TrimSpace(doc.Address), Message: doc.Message}

	if len(doc.Amount) > 0 && string(doc.Amount) != "null" {
		var n json.Number
		if err := json.Unmarshal(doc.Amount, &n); err == nil {
			// a numeric zero counts as no amount
			if n.String() != "0" {
				p.Amount = n.String()
			}
		} else {
			var s string
			if err := json.Unmarshal(doc.Amount, &s); err != nil {
				return Payload{}, fmt.Errorf("decode payload amount: %w", err)
			}
			p.Amount = s
		}
	}
	if p.Address == "" {
		return Payload{}, errors.New("payload has no address")
	}
	return p, nil
}

func parseURIPayload(raw string) (Payload, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Payload{}, fmt.Errorf("parse payload uri: %w", err)
	}
	address := u.Host
	if address == "" {
		address = strings.Trim(u.Opaque, "/")
	}
	address = strings.Trim(address+strings.TrimSuffix(u.Path, "/"), "/")
	if address == "" {
		return Payload{}, errors.New("payload has no address")
	}

	q := u.Query()
	return Payload{
		Address: address,
		Amount:  q.Get("amount"),
		Message: q.Get("message"),
	}, nil
}
