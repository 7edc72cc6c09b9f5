package core

import (
	"encoding/json"
	"strings"
)

// recordJSON is the on-disk shape of a record. Payments and purchases are
// told apart by which name key is present.
type recordJSON struct {
	UID          flexString      `json:"uid,omitempty"`
	PaymentName  *flexString     `json:"payment_name,omitempty"`
	PurchaseItem *flexString     `json:"purchase_item,omitempty"`
	Amount       json.RawMessage `json:"amount,omitempty"`
	Date         flexString      `json:"date,omitempty"`
	Category     flexString      `json:"category,omitempty"`
	Method       flexString      `json:"method,omitempty"`
	Status       flexString      `json:"status,omitempty"`
	Recurrente   flexBool        `json:"recurrente,omitempty"`
	Frecuencia   flexString      `json:"frecuencia,omitempty"`
	FechaLimite  flexString      `json:"fecha_limite,omitempty"`
	Generated    flexBool        `json:"generated,omitempty"`
	ParentID     flexString      `json:"parent_id,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface.
func (r Record) MarshalJSON() ([]byte, error) {
	name := flexString(r.Name)
	out := recordJSON{
		UID:         flexString(r.UID),
		Amount:      json.RawMessage(r.Amount.String()),
		Date:        flexString(r.Date),
		Category:    flexString(r.CategoryOrDefault()),
		Method:      flexString(r.Method),
		Status:      flexString(ParseStatus(string(r.Status))),
		Recurrente:  flexBool(r.Recurring),
		Frecuencia:  flexString(r.Frequency),
		FechaLimite: flexString(r.Until),
		Generated:   flexBool(r.Generated),
		ParentID:    flexString(r.ParentID),
	}
	if r.Kind == Purchase {
		out.PurchaseItem = &name
	} else {
		out.PaymentName = &name
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements the json.Unmarshaler interface. Missing or
// malformed values fall back to defaults instead of failing the decode.
func (r *Record) UnmarshalJSON(data []byte) error {
	var in recordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*r = Record{
		UID:       string(in.UID),
		Kind:      Payment,
		Amount:    coerceJSONAmount(in.Amount),
		Date:      strings.TrimSpace(string(in.Date)),
		Category:  string(in.Category),
		Method:    string(in.Method),
		Status:    ParseStatus(string(in.Status)),
		Recurring: bool(in.Recurrente),
		Frequency: string(in.Frecuencia),
		Until:     string(in.FechaLimite),
		Generated: bool(in.Generated),
		ParentID:  string(in.ParentID),
	}
	switch {
	case in.PaymentName != nil:
		r.Name = string(*in.PaymentName)
	case in.PurchaseItem != nil:
		r.Kind = Purchase
		r.Name = string(*in.PurchaseItem)
	}
	if strings.TrimSpace(r.Category) == "" {
		r.Category = DefaultCategory
	}
	return nil
}

// flexBool decodes JSON booleans as well as the "true"/"1" strings and
// numbers hand-edited files sometimes contain.
type flexBool bool

func (b flexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch v := strings.ToLower(strings.Trim(strings.TrimSpace(string(data)), `"`)); v {
	case "true", "1", "yes":
		*b = true
	default:
		*b = false
	}
	return nil
}

// flexString decodes JSON strings as is. Any other JSON type decodes to the
// empty string, so one mistyped field does not fail the whole file.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		*s = ""
		return nil
	}
	*s = flexString(v)
	return nil
}
