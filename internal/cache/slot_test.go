package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotGetOrBuild(t *testing.T) {
	s := NewSlot[int]()
	builds := 0
	build := func(v int) func() int {
		return func() int {
			builds++
			return v
		}
	}

	assert.Equal(t, 1, s.GetOrBuild("2024-03", build(1)))
	assert.Equal(t, 1, s.GetOrBuild("2024-03", build(2)))
	assert.Equal(t, 1, builds)

	// A different key evicts the previous one.
	assert.Equal(t, 3, s.GetOrBuild("2024-04", build(3)))
	assert.Equal(t, 4, s.GetOrBuild("2024-03", build(4)))
	assert.Equal(t, 3, builds)
	assert.Equal(t, 1, s.Size())
}

func TestSlotInvalidate(t *testing.T) {
	s := NewSlot[string]()
	s.Set("k", "v")

	got, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)

	s.Invalidate()
	_, ok = s.Get("k")
	assert.False(t, ok)
	_, valid := s.Key()
	assert.False(t, valid)
	assert.Equal(t, 0, s.Size())
}

func TestSlotMissOnOtherKey(t *testing.T) {
	s := NewSlot[int]()
	s.Set("a", 1)
	_, ok := s.Get("b")
	assert.False(t, ok)
	key, valid := s.Key()
	assert.True(t, valid)
	assert.Equal(t, "a", key)
}

func TestSlotInvalidateDuringBuild(t *testing.T) {
	s := NewSlot[int]()

	got := s.GetOrBuild("2024-03", func() int {
		// The data changes while the view is being built.
		s.Invalidate()
		return 1
	})
	assert.Equal(t, 1, got)
	assert.Equal(t, 0, s.Size())

	// The next read rebuilds from the changed data.
	assert.Equal(t, 2, s.GetOrBuild("2024-03", func() int { return 2 }))
	assert.Equal(t, 1, s.Size())
}
