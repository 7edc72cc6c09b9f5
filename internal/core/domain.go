package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	Weekly   Frequency = "WEEKLY"
	Biweekly Frequency = "BIWEEKLY"
	Monthly  Frequency = "MONTHLY"
)

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
)

const (
	Payment Kind = iota
	Purchase
)

// DefaultCategory is used for records that carry no category.
const DefaultCategory = "OTHER"

type (
	// Kind tells payments and purchases apart.
	Kind int

	Status string

	Frequency string

	// Record is a single payment or purchase. Date is kept as the raw
	// string read from storage so malformed values survive a round trip.
	Record struct {
		UID      string
		Kind     Kind
		Name     string
		Amount   Money
		Date     string
		Category string
		Method   string
		Status   Status

		// Payments only.
		Recurring bool   // template
		Frequency string // raw value, see ParseFrequency
		Until     string
		Generated bool // materialized instance
		ParentID  string
	}
)

var (
	ErrEmptyName    = errors.New("empty name")
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidKind  = errors.New("invalid record kind")
	ErrRecurringBuy = errors.New("purchases cannot recur")
)

// NewUID returns a fresh record identifier.
func NewUID() string {
	return uuid.NewString()
}

func (k Kind) String() string {
	switch k {
	case Payment:
		return "payment"
	case Purchase:
		return "purchase"
	default:
		return "unknown"
	}
}

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	return k == Payment || k == Purchase
}

// ParseStatus maps a stored status to a Status, defaulting to pending.
func ParseStatus(s string) Status {
	if strings.EqualFold(strings.TrimSpace(s), string(StatusPaid)) {
		return StatusPaid
	}
	return StatusPending
}

// ParseFrequency resolves a frequency case-insensitively. Unknown or
// empty values fall back to Monthly.
func ParseFrequency(s string) Frequency {
	switch f := Frequency(strings.ToUpper(strings.TrimSpace(s))); f {
	case Weekly, Biweekly, Monthly:
		return f
	default:
		return Monthly
	}
}

func (r Record) IsTemplate() bool { return r.Recurring }

func (r Record) IsInstance() bool { return r.Generated && r.ParentID != "" }

func (r Record) IsPaid() bool { return r.Status == StatusPaid }

// CategoryOrDefault returns the record category or DefaultCategory.
func (r Record) CategoryOrDefault() string {
	if strings.TrimSpace(r.Category) == "" {
		return DefaultCategory
	}
	return r.Category
}

// ParsedDate returns the record date and whether it could be parsed.
func (r Record) ParsedDate() (time.Time, bool) {
	return ParseDate(r.Date)
}

// ResolvedFrequency returns the stepping rule for a template.
func (r Record) ResolvedFrequency() Frequency {
	return ParseFrequency(r.Frequency)
}

// Validate checks a record entered by the user. Records read from storage
// are never validated; they are degraded gracefully instead.
func (r Record) Validate() error {
	if !r.Kind.IsValid() {
		return ErrInvalidKind
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if len(r.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if r.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if _, ok := ParseDate(r.Date); !ok {
		return ErrInvalidDate
	}
	if r.Kind == Purchase && (r.Recurring || r.Generated) {
		return ErrRecurringBuy
	}
	if r.Until != "" {
		until, ok := ParseDate(r.Until)
		if !ok {
			return errors.New("invalid end date")
		}
		start, _ := ParseDate(r.Date)
		if until.Before(start) {
			return errors.New("end date must not be before start date")
		}
	}
	return nil
}

// FieldValues lists the record's values in storage key order, skipping
// recurrence keys a record does not carry. Values are rendered the way the
// data file's original writer printed them: amounts always carry a
// fraction ("100.0") and flags read "True".
func (r Record) FieldValues() []string {
	values := []string{
		r.UID,
		r.Name,
		amountText(r.Amount),
		r.Date,
		r.CategoryOrDefault(),
		r.Method,
		string(ParseStatus(string(r.Status))),
	}
	if r.Kind != Payment {
		return values
	}
	if r.Recurring {
		values = append(values, "True", r.Frequency, r.Until)
	}
	if r.Generated {
		values = append(values, "True", r.ParentID)
	}
	return values
}

// amountText prints whole amounts with a ".0" fraction.
func amountText(m Money) string {
	if m.Equal(m.Truncate(0)) {
		return m.StringFixed(0) + ".0"
	}
	return m.String()
}
