package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzas/internal/core"
)

func TestRecurringProcessor_PicksUpExternalEdits(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, repo := newTestLedger(t, notifier)
	ctx := context.Background()

	// Another process writes a template straight to the repository.
	tpl := template("tpl", "2024-01-31", "MONTHLY", "2024-05-31")
	require.NoError(t, repo.Save(ctx, []core.Record{tpl}, nil))

	p := NewRecurringProcessor(svc, quietLogger())
	added, err := p.ProcessDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, added)

	payments, _, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, payments, 6)
	assert.Equal(t, []string{"2024-03"}, notifier.months())

	// A second run finds nothing new and does not save.
	added, err = p.ProcessDue(ctx)
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Len(t, notifier.months(), 1)
}

func TestRecurringProcessor_NotInitialized(t *testing.T) {
	_, err := NewRecurringProcessor(nil, nil).ProcessDue(context.Background())
	assert.Error(t, err)
}
