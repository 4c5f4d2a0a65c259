package domain

import (
	apperrors "github.com/courtside/registration/internal/errors"
)

var (
	// ErrEventNotFound is returned when an event doesn't exist.
	ErrEventNotFound = apperrors.Wrap(apperrors.ErrNotFound, "event not found")

	// ErrInvalidStatusTransition is returned when a status change is not
	// allowed from the event's current status.
	ErrInvalidStatusTransition = apperrors.Wrap(apperrors.ErrConflict, "invalid event status transition")

	// ErrRegistrationClosed is returned when the event does not accept new
	// registrations (not published, past cutoff, or already started).
	ErrRegistrationClosed = apperrors.Wrap(apperrors.ErrConflict, "event registration closed")
)
