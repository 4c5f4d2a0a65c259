package domain

import (
	apperrors "github.com/courtside/registration/internal/errors"
)

var (
	// ErrPaymentNotFound indicates the requested payment does not exist.
	ErrPaymentNotFound = apperrors.Wrap(apperrors.ErrNotFound, "payment not found")

	// ErrRefundExceedsBalance indicates a refund larger than the remaining
	// refundable balance.
	ErrRefundExceedsBalance = apperrors.Wrap(apperrors.ErrInvalidInput,
		"refund amount exceeds remaining balance")

	// ErrPaymentNotRefundable indicates a refund against a payment that was
	// never confirmed.
	ErrPaymentNotRefundable = apperrors.Wrap(apperrors.ErrConflict,
		"payment is not in a refundable state")

	// ErrInvalidSignature indicates a webhook payload whose signature did not
	// verify against the shared secret.
	ErrInvalidSignature = apperrors.Wrap(apperrors.ErrUnauthorized,
		"webhook signature verification failed")
)
