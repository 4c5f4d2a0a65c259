package domain

import (
	"github.com/google/uuid"

	apperrors "github.com/courtside/registration/internal/errors"
)

// MetadataVersion is the current checkout metadata schema version. The version
// is embedded in every checkout session so webhook payloads created by older
// deployments remain recognizable.
const MetadataVersion = "1"

// CheckoutMetadata is the versioned payload attached to a provider checkout
// session. The webhook reconciler reads it back to correlate provider events
// with local rows without trusting anything else in the payload.
type CheckoutMetadata struct {
	Version        string    `json:"version"`
	RegistrationID uuid.UUID `json:"registration_id"`
	EventID        uuid.UUID `json:"event_id"`
}

// NewCheckoutMetadata builds metadata at the current version.
func NewCheckoutMetadata(registrationID, eventID uuid.UUID) CheckoutMetadata {
	return CheckoutMetadata{
		Version:        MetadataVersion,
		RegistrationID: registrationID,
		EventID:        eventID,
	}
}

// Validate checks the metadata carried back by a webhook payload.
func (m CheckoutMetadata) Validate() error {
	if m.Version != MetadataVersion {
		return apperrors.Wrapf(apperrors.ErrInvalidInput,
			"unsupported checkout metadata version %q", m.Version)
	}
	if m.RegistrationID == uuid.Nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput,
			"checkout metadata missing registration id")
	}
	if m.EventID == uuid.Nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput,
			"checkout metadata missing event id")
	}
	return nil
}
