package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/courtside/registration/internal/audit/domain"
	auditUseCase "github.com/courtside/registration/internal/audit/usecase"
	"github.com/courtside/registration/internal/database"
	eventDomain "github.com/courtside/registration/internal/events/domain"
	"github.com/courtside/registration/internal/mailer"
	registrationDomain "github.com/courtside/registration/internal/registrations/domain"
	"github.com/courtside/registration/internal/validation"
)

// registrationUseCase implements IntentUseCase and AdminUseCase.
type registrationUseCase struct {
	registrationRepository RegistrationRepository
	eventRepository        EventRepository
	auditLogUseCase        auditUseCase.AuditLogUseCase
	txManager              database.TxManager
	guard                  registrationDomain.CapacityGuard
	mailer                 mailer.Mailer
	logger                 *slog.Logger
}

// NewRegistrationUseCase creates a use case covering the public intent flows
// and the staff-facing registration operations.
func NewRegistrationUseCase(
	registrationRepository RegistrationRepository,
	eventRepository EventRepository,
	auditLogUseCase auditUseCase.AuditLogUseCase,
	txManager database.TxManager,
	mailer mailer.Mailer,
	logger *slog.Logger,
) *registrationUseCase {
	return &registrationUseCase{
		registrationRepository: registrationRepository,
		eventRepository:        eventRepository,
		auditLogUseCase:        auditLogUseCase,
		txManager:              txManager,
		mailer:                 mailer,
		logger:                 logger,
	}
}

// CreateIntent validates admission for a priced event and records a pending
// registration. The capacity check, duplicate check and insert run inside one
// transaction so two concurrent intents for the last spot cannot both pass.
func (u *registrationUseCase) CreateIntent(
	ctx context.Context,
	eventID uuid.UUID,
	contact *registrationDomain.Contact,
) (*registrationDomain.Registration, error) {
	email := validation.NormalizeEmail(contact.Email)

	var registration *registrationDomain.Registration
	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		event, err := u.eventRepository.Get(ctx, eventID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if !event.AcceptsRegistrations(now) {
			return eventDomain.ErrRegistrationClosed
		}

		if err := u.checkAdmission(ctx, event, email); err != nil {
			return err
		}

		// Replace any abandoned intent for the same participant.
		if err := u.registrationRepository.DeletePending(ctx, eventID, email); err != nil {
			return err
		}

		registration = &registrationDomain.Registration{
			ID:            uuid.Must(uuid.NewV7()),
			EventID:       eventID,
			FullName:      contact.FullName,
			Email:         email,
			Phone:         contact.Phone,
			TeamName:      contact.TeamName,
			PaymentStatus: registrationDomain.PaymentStatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return u.registrationRepository.Create(ctx, registration)
	})
	if err != nil {
		return nil, err
	}
	return registration, nil
}

// FinalizeFree completes a free RSVP, upserting straight to paid. A repeat
// call for the same (event, email) returns the existing registration without
// re-checking capacity, so retried form submissions stay idempotent.
func (u *registrationUseCase) FinalizeFree(
	ctx context.Context,
	eventID uuid.UUID,
	contact *registrationDomain.Contact,
) (*registrationDomain.Registration, error) {
	email := validation.NormalizeEmail(contact.Email)

	var registration *registrationDomain.Registration
	var replay bool
	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		event, err := u.eventRepository.Get(ctx, eventID)
		if err != nil {
			return err
		}

		if !event.IsFree() {
			return registrationDomain.ErrEventNotFree
		}

		existing, err := u.registrationRepository.GetPaidByEventAndEmail(ctx, eventID, email)
		if err == nil {
			registration = existing
			replay = true
			return nil
		}
		if !errors.Is(err, registrationDomain.ErrRegistrationNotFound) {
			return err
		}

		now := time.Now().UTC()
		if !event.AcceptsRegistrations(now) {
			return eventDomain.ErrRegistrationClosed
		}

		count, err := u.registrationRepository.CountAttending(ctx, eventID)
		if err != nil {
			return err
		}
		if err := u.guard.Admit(event.Capacity, count); err != nil {
			return err
		}

		registration, err = u.registrationRepository.UpsertPaid(ctx, &registrationDomain.Registration{
			ID:            uuid.Must(uuid.NewV7()),
			EventID:       eventID,
			FullName:      contact.FullName,
			Email:         email,
			Phone:         contact.Phone,
			TeamName:      contact.TeamName,
			PaymentStatus: registrationDomain.PaymentStatusPaid,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if !replay {
		u.sendConfirmation(ctx, registration)
	}
	return registration, nil
}

// SweepPending deletes pending registrations older than the TTL and returns
// the number of rows swept.
func (u *registrationUseCase) SweepPending(
	ctx context.Context,
	olderThan time.Duration,
) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	swept, err := u.registrationRepository.DeleteStalePending(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if swept > 0 {
		u.logger.Info("swept stale pending registrations", slog.Int64("count", swept))
	}
	return swept, nil
}

// ListByEvent retrieves registrations for an event with pagination.
func (u *registrationUseCase) ListByEvent(
	ctx context.Context,
	eventID uuid.UUID,
	offset, limit int,
) ([]*registrationDomain.Registration, error) {
	if _, err := u.eventRepository.Get(ctx, eventID); err != nil {
		return nil, err
	}
	return u.registrationRepository.ListByEvent(ctx, eventID, offset, limit)
}

// MarkWalkUp records an on-site registration. Walk-ups occupy a spot, so the
// capacity check applies, but the registration window does not: staff record
// them at the door after the cutoff has passed.
func (u *registrationUseCase) MarkWalkUp(
	ctx context.Context,
	eventID uuid.UUID,
	contact *registrationDomain.Contact,
	actor string,
) (*registrationDomain.Registration, error) {
	email := validation.NormalizeEmail(contact.Email)

	var registration *registrationDomain.Registration
	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		event, err := u.eventRepository.Get(ctx, eventID)
		if err != nil {
			return err
		}

		if err := u.checkAdmission(ctx, event, email); err != nil {
			return err
		}

		now := time.Now().UTC()
		registration = &registrationDomain.Registration{
			ID:            uuid.Must(uuid.NewV7()),
			EventID:       eventID,
			FullName:      contact.FullName,
			Email:         email,
			Phone:         contact.Phone,
			TeamName:      contact.TeamName,
			PaymentStatus: registrationDomain.PaymentStatusWalkUp,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := u.registrationRepository.Create(ctx, registration); err != nil {
			return err
		}

		return u.auditLogUseCase.Record(
			ctx,
			actor,
			auditDomain.ActionRegistrationWalkup,
			"registration",
			registration.ID,
			map[string]any{"event_id": eventID.String(), "email": email},
		)
	})
	if err != nil {
		return nil, err
	}
	return registration, nil
}

// checkAdmission runs the duplicate and capacity checks shared by intents and
// walk-ups.
func (u *registrationUseCase) checkAdmission(
	ctx context.Context,
	event *eventDomain.Event,
	email string,
) error {
	_, err := u.registrationRepository.GetPaidByEventAndEmail(ctx, event.ID, email)
	if err == nil {
		return registrationDomain.ErrDuplicateRegistration
	}
	if !errors.Is(err, registrationDomain.ErrRegistrationNotFound) {
		return err
	}

	count, err := u.registrationRepository.CountAttending(ctx, event.ID)
	if err != nil {
		return err
	}
	return u.guard.Admit(event.Capacity, count)
}

// sendConfirmation delivers the RSVP confirmation email. Delivery failures are
// logged and swallowed; the registration is already durable.
func (u *registrationUseCase) sendConfirmation(
	ctx context.Context,
	registration *registrationDomain.Registration,
) {
	msg := mailer.Message{
		To:      registration.Email,
		Subject: "Registration confirmed",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour registration is confirmed. Your confirmation code is %s.\n",
			registration.FullName,
			registration.ID,
		),
	}
	if err := u.mailer.Send(ctx, msg); err != nil {
		u.logger.Error(
			"failed to send confirmation email",
			slog.String("registration_id", registration.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

var _ IntentUseCase = (*registrationUseCase)(nil)
var _ AdminUseCase = (*registrationUseCase)(nil)
