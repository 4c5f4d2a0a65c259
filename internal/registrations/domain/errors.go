package domain

import (
	apperrors "github.com/courtside/registration/internal/errors"
)

var (
	// ErrRegistrationNotFound is returned when a registration doesn't exist.
	ErrRegistrationNotFound = apperrors.Wrap(apperrors.ErrNotFound, "registration not found")

	// ErrSoldOut is returned by the capacity check when the paid count has
	// reached the event capacity.
	ErrSoldOut = apperrors.Wrap(apperrors.ErrConflict, "event sold out")

	// ErrDuplicateRegistration is returned when a paid registration already
	// exists for the (event, email) pair.
	ErrDuplicateRegistration = apperrors.Wrap(apperrors.ErrConflict, "registration already exists for this email")

	// ErrEventNotFree is returned when FinalizeFree is called for a priced event.
	ErrEventNotFree = apperrors.Wrap(apperrors.ErrInvalidInput, "event requires payment")
)
