package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzas/internal/core"
)

func TestNew_JSONComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Component: ComponentLedger, Writer: &buf})

	logger.Info("saved", FieldCount, 3)
	logger.Debug("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "saved", line["msg"])
	assert.Equal(t, ComponentLedger, line[FieldComponent])
	assert.EqualValues(t, 3, line[FieldCount])
	assert.Equal(t, ComponentLedger, logger.Component())
}

func TestWithComponent_ReplacesName(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: "json", Writer: &buf})
	assert.Equal(t, ComponentApp, logger.Component())

	logger.For(ComponentAMQP).Info("connected")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, ComponentAMQP, line[FieldComponent])
}

func TestLogFields(t *testing.T) {
	r := core.Record{UID: "u1", Kind: core.Purchase, Name: "Bread", Amount: decimal.RequireFromString("2.5"), Date: "2024-03-01"}
	f := NewFields().
		WithOperation(OpCreate).
		WithMonth(core.NewMonthKey(2024, 3)).
		WithRecord(r).
		WithError(errors.New("boom")).
		WithError(nil)

	assert.Equal(t, OpCreate, f[FieldOperation])
	assert.Equal(t, "2024-03", f[FieldMonth])
	assert.Equal(t, "purchase", f[FieldKind])
	assert.Equal(t, "2.5", f[FieldAmount])
	assert.Equal(t, core.DefaultCategory, f[FieldCategory])
	assert.Equal(t, "boom", f[FieldError])
	assert.Len(t, f.ToSlice(), len(f)*2)
}
