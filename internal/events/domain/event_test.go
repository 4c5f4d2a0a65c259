package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Valid(t *testing.T) {
	for _, status := range []Status{
		StatusDraft, StatusPublished, StatusSoldOut, StatusClosed,
		StatusCompleted, StatusCancelled,
	} {
		assert.True(t, status.Valid(), "expected %q to be valid", status)
	}

	assert.False(t, Status("archived").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusDraft, StatusPublished, true},
		{StatusDraft, StatusCancelled, true},
		{StatusDraft, StatusCompleted, false},
		{StatusPublished, StatusSoldOut, true},
		{StatusPublished, StatusClosed, true},
		{StatusPublished, StatusCompleted, true},
		{StatusSoldOut, StatusPublished, true},
		{StatusClosed, StatusCompleted, true},
		{StatusClosed, StatusPublished, false},
		{StatusCompleted, StatusPublished, false},
		{StatusCancelled, StatusPublished, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to),
			"transition %s -> %s", tt.from, tt.to)
	}
}

func TestEvent_AcceptsRegistrations(t *testing.T) {
	now := time.Now().UTC()
	startsAt := now.Add(48 * time.Hour)

	t.Run("published event before start accepts", func(t *testing.T) {
		event := &Event{Status: StatusPublished, StartsAt: startsAt}
		assert.True(t, event.AcceptsRegistrations(now))
	})

	t.Run("draft event rejects", func(t *testing.T) {
		event := &Event{Status: StatusDraft, StartsAt: startsAt}
		assert.False(t, event.AcceptsRegistrations(now))
	})

	t.Run("sold out event rejects", func(t *testing.T) {
		event := &Event{Status: StatusSoldOut, StartsAt: startsAt}
		assert.False(t, event.AcceptsRegistrations(now))
	})

	t.Run("past cutoff rejects", func(t *testing.T) {
		cutoff := now.Add(-time.Hour)
		event := &Event{Status: StatusPublished, StartsAt: startsAt, RegistrationCutoff: &cutoff}
		assert.False(t, event.AcceptsRegistrations(now))
	})

	t.Run("cutoff exactly now rejects", func(t *testing.T) {
		event := &Event{Status: StatusPublished, StartsAt: startsAt, RegistrationCutoff: &now}
		assert.False(t, event.AcceptsRegistrations(now))
	})

	t.Run("already started rejects", func(t *testing.T) {
		event := &Event{Status: StatusPublished, StartsAt: now.Add(-time.Minute)}
		assert.False(t, event.AcceptsRegistrations(now))
	})
}

func TestEvent_IsFree(t *testing.T) {
	assert.True(t, (&Event{PriceCents: 0}).IsFree())
	assert.False(t, (&Event{PriceCents: 2500}).IsFree())
}
