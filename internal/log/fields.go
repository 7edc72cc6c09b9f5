package log

import "finanzas/internal/core"

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldMonth     = "month"
	FieldUID       = "uid"
	FieldKind      = "kind"
	FieldName      = "name"
	FieldAmount    = "amount"
	FieldDate      = "date"
	FieldCategory  = "category"
	FieldBackend   = "backend"
	FieldPath      = "path"
	FieldCount     = "count"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentCLI       = "cli"
	ComponentLedger    = "ledger"
	ComponentStorage   = "storage"
	ComponentBackend   = "backend"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentSheets    = "sheets"
	ComponentRecurring = "recurring"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpPay      = "pay"
	OpExpand   = "expand"
	OpExport   = "export"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithMonth adds month field
func (f LogFields) WithMonth(month core.MonthKey) LogFields {
	f[FieldMonth] = month.String()
	return f
}

// WithRecord adds the identifying fields of a record
func (f LogFields) WithRecord(r core.Record) LogFields {
	f[FieldUID] = r.UID
	f[FieldKind] = r.Kind.String()
	f[FieldName] = r.Name
	f[FieldAmount] = r.Amount.String()
	f[FieldDate] = r.Date
	f[FieldCategory] = r.CategoryOrDefault()
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
