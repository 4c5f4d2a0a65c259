package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/courtside/registration/internal/audit/domain"
	auditUseCase "github.com/courtside/registration/internal/audit/usecase"
	"github.com/courtside/registration/internal/database"
	jobDomain "github.com/courtside/registration/internal/jobs/domain"
	"github.com/courtside/registration/internal/metrics"
	paymentDomain "github.com/courtside/registration/internal/payments/domain"
	"github.com/courtside/registration/internal/payments/provider"
	registrationDomain "github.com/courtside/registration/internal/registrations/domain"
)

// systemActor names the audit actor for webhook-driven changes.
const systemActor = "system"

// Reminder offsets before the event start.
var reminderOffsets = []time.Duration{24 * time.Hour, 2 * time.Hour}

// webhookUseCase implements WebhookUseCase.
type webhookUseCase struct {
	verifier               SignatureVerifier
	webhookEventRepository WebhookEventRepository
	paymentRepository      PaymentRepository
	registrationRepository RegistrationRepository
	eventRepository        EventRepository
	auditLogUseCase        auditUseCase.AuditLogUseCase
	jobScheduler           JobScheduler
	txManager              database.TxManager
	businessMetrics        metrics.BusinessMetrics
	logger                 *slog.Logger
}

// NewWebhookUseCase creates a new webhook use case with required dependencies.
func NewWebhookUseCase(
	verifier SignatureVerifier,
	webhookEventRepository WebhookEventRepository,
	paymentRepository PaymentRepository,
	registrationRepository RegistrationRepository,
	eventRepository EventRepository,
	auditLogUseCase auditUseCase.AuditLogUseCase,
	jobScheduler JobScheduler,
	txManager database.TxManager,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) WebhookUseCase {
	return &webhookUseCase{
		verifier:               verifier,
		webhookEventRepository: webhookEventRepository,
		paymentRepository:      paymentRepository,
		registrationRepository: registrationRepository,
		eventRepository:        eventRepository,
		auditLogUseCase:        auditLogUseCase,
		jobScheduler:           jobScheduler,
		txManager:              txManager,
		businessMetrics:        businessMetrics,
		logger:                 logger,
	}
}

// Process verifies, parses and dispatches one webhook delivery. Each handler
// writes the dedupe row in the same transaction as its ledger effects, so a
// failed reconciliation rolls back completely, returns an error and the
// provider's retry counts as a first delivery again.
func (u *webhookUseCase) Process(ctx context.Context, payload []byte, signatureHeader string) (err error) {
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		u.businessMetrics.RecordOperation(ctx, "payments", "webhook_process", status)
		u.businessMetrics.RecordDuration(ctx, "payments", "webhook_process", time.Since(start), status)
	}()

	if err = u.verifier.Verify(payload, signatureHeader, time.Now().UTC()); err != nil {
		return err
	}

	event, err := provider.ParseEvent(payload)
	if err != nil {
		return err
	}

	logger := u.logger.With(
		slog.String("provider_event_id", event.ID),
		slog.String("event_type", event.Type),
	)

	switch event.Type {
	case provider.EventCheckoutSessionCompleted:
		err = u.handleCompleted(ctx, logger, event)
	case provider.EventPaymentIntentFailed:
		err = u.handleFailed(ctx, logger, event)
	case provider.EventChargeRefunded:
		err = u.handleRefunded(ctx, logger, event)
	default:
		logger.Debug("ignoring unhandled webhook event type")
		_, err = u.recordDelivery(ctx, event)
	}

	return err
}

// recordDelivery appends the delivery to the dedupe log. Called inside a
// transaction the row commits or rolls back with the ledger effects.
func (u *webhookUseCase) recordDelivery(
	ctx context.Context,
	event *provider.Event,
) (bool, error) {
	return u.webhookEventRepository.Insert(ctx, &paymentDomain.WebhookEvent{
		ID:              uuid.Must(uuid.NewV7()),
		Provider:        provider.Name,
		ProviderEventID: event.ID,
		EventType:       event.Type,
		ReceivedAt:      time.Now().UTC(),
	})
}

// handleCompleted reconciles checkout.session.completed: payment and
// registration move to paid in one transaction together with the dedupe row
// and the audit entry. On the first delivery the receipt and reminder jobs
// are scheduled afterwards.
func (u *webhookUseCase) handleCompleted(
	ctx context.Context,
	logger *slog.Logger,
	event *provider.Event,
) error {
	session, err := event.CheckoutSession()
	if err != nil {
		logger.Error("failed to parse checkout session", slog.String("error", err.Error()))
		_, err = u.recordDelivery(ctx, event)
		return err
	}

	metadata, err := provider.MetadataFromMap(session.Metadata)
	if err != nil {
		logger.Error("failed to read checkout metadata", slog.String("error", err.Error()))
		_, err = u.recordDelivery(ctx, event)
		return err
	}

	var firstDelivery bool
	var registration *registrationDomain.Registration
	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		var txErr error
		firstDelivery, txErr = u.recordDelivery(ctx, event)
		if txErr != nil {
			return txErr
		}

		payment, txErr := u.paymentRepository.MarkPaid(ctx, session.ID, session.PaymentIntent)
		if errors.Is(txErr, paymentDomain.ErrPaymentNotFound) {
			// No local row for this session; the webhook is the first thing we
			// hear about it. Insert the payment as paid from the payload.
			now := time.Now().UTC()
			payment = &paymentDomain.Payment{
				ID:                      uuid.Must(uuid.NewV7()),
				RegistrationID:          metadata.RegistrationID,
				EventID:                 metadata.EventID,
				ProviderSessionID:       session.ID,
				ProviderPaymentIntentID: session.PaymentIntent,
				AmountCents:             session.AmountTotal,
				Currency:                session.Currency,
				Status:                  paymentDomain.StatusPaid,
				CreatedAt:               now,
				UpdatedAt:               now,
			}
			txErr = u.paymentRepository.Create(ctx, payment)
		}
		if txErr != nil {
			return txErr
		}

		registration, txErr = u.markRegistrationPaid(ctx, logger, metadata.RegistrationID, payment.ID)
		if txErr != nil {
			return txErr
		}

		return u.auditLogUseCase.Record(
			ctx,
			systemActor,
			auditDomain.ActionPaymentConfirmed,
			"payment",
			payment.ID,
			map[string]any{
				"provider_session_id": session.ID,
				"registration_id":     metadata.RegistrationID.String(),
				"amount_cents":        payment.AmountCents,
			},
		)
	})
	if err != nil {
		logger.Error("failed to reconcile completed checkout", slog.String("error", err.Error()))
		return err
	}

	if firstDelivery {
		u.scheduleFollowUps(ctx, logger, metadata, registration)
	}
	return nil
}

// markRegistrationPaid transitions the registration for a confirmed payment
// to paid. The row is updated in place so its id, which the payment row
// references, stays stable. When another row already holds the paid seat for
// the (event, email) pair the payment attaches to that row instead and the
// pending row is left for the TTL sweep.
func (u *webhookUseCase) markRegistrationPaid(
	ctx context.Context,
	logger *slog.Logger,
	registrationID, paymentID uuid.UUID,
) (*registrationDomain.Registration, error) {
	registration, err := u.registrationRepository.Get(ctx, registrationID)
	if err != nil {
		if errors.Is(err, registrationDomain.ErrRegistrationNotFound) {
			// The pending row was swept before the webhook arrived. The
			// payment is still recorded; staff resolve the orphan manually.
			logger.Warn("registration missing for confirmed payment",
				slog.String("registration_id", registrationID.String()))
			return nil, nil
		}
		return nil, err
	}

	if registration.PaymentStatus == registrationDomain.PaymentStatusPaid {
		return u.attachPayment(ctx, registration, paymentID)
	}

	surviving, err := u.registrationRepository.GetPaidByEventAndEmail(
		ctx, registration.EventID, registration.Email)
	if err == nil {
		return u.attachPayment(ctx, surviving, paymentID)
	}
	if !errors.Is(err, registrationDomain.ErrRegistrationNotFound) {
		return nil, err
	}

	registration.PaymentStatus = registrationDomain.PaymentStatusPaid
	registration.PaymentID = &paymentID
	registration.UpdatedAt = time.Now().UTC()
	if err := u.registrationRepository.Update(ctx, registration); err != nil {
		return nil, err
	}
	return registration, nil
}

// attachPayment links the payment to an already-paid row, keeping replayed
// deliveries idempotent.
func (u *webhookUseCase) attachPayment(
	ctx context.Context,
	registration *registrationDomain.Registration,
	paymentID uuid.UUID,
) (*registrationDomain.Registration, error) {
	if registration.PaymentID != nil && *registration.PaymentID == paymentID {
		return registration, nil
	}

	registration.PaymentID = &paymentID
	registration.UpdatedAt = time.Now().UTC()
	if err := u.registrationRepository.Update(ctx, registration); err != nil {
		return nil, err
	}
	return registration, nil
}

// scheduleFollowUps enqueues the receipt email and the future-only reminder
// emails. Scheduling failures are logged; the payment state is already
// durable.
func (u *webhookUseCase) scheduleFollowUps(
	ctx context.Context,
	logger *slog.Logger,
	metadata paymentDomain.CheckoutMetadata,
	registration *registrationDomain.Registration,
) {
	if registration == nil {
		return
	}

	payload := map[string]any{
		"registration_id": registration.ID.String(),
		"event_id":        metadata.EventID.String(),
		"email":           registration.Email,
	}

	now := time.Now().UTC()
	if err := u.jobScheduler.Schedule(ctx, jobDomain.JobTypeReceiptEmail, payload, now); err != nil {
		logger.Error("failed to schedule receipt email", slog.String("error", err.Error()))
	}

	event, err := u.eventRepository.Get(ctx, metadata.EventID)
	if err != nil {
		logger.Error("failed to load event for reminders", slog.String("error", err.Error()))
		return
	}

	for _, offset := range reminderOffsets {
		runAt := event.StartsAt.Add(-offset)
		if !runAt.After(now) {
			continue
		}
		if err := u.jobScheduler.Schedule(ctx, jobDomain.JobTypeReminderEmail, payload, runAt); err != nil {
			logger.Error("failed to schedule reminder email", slog.String("error", err.Error()))
		}
	}
}

// handleFailed reconciles payment_intent.payment_failed.
func (u *webhookUseCase) handleFailed(
	ctx context.Context,
	logger *slog.Logger,
	event *provider.Event,
) error {
	intent, err := event.PaymentIntent()
	if err != nil {
		logger.Error("failed to parse payment intent", slog.String("error", err.Error()))
		_, err = u.recordDelivery(ctx, event)
		return err
	}

	metadata, err := provider.MetadataFromMap(intent.Metadata)
	if err != nil {
		logger.Error("failed to read checkout metadata", slog.String("error", err.Error()))
		_, err = u.recordDelivery(ctx, event)
		return err
	}

	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := u.recordDelivery(ctx, event); err != nil {
			return err
		}

		payment, err := u.paymentRepository.MarkFailed(ctx, metadata.RegistrationID, intent.ID)
		if errors.Is(err, paymentDomain.ErrPaymentNotFound) {
			logger.Debug("no open payment to fail; treating as replay")
			return nil
		}
		if err != nil {
			return err
		}

		registration, err := u.registrationRepository.Get(ctx, metadata.RegistrationID)
		if err == nil && registration.PaymentStatus == registrationDomain.PaymentStatusPending {
			registration.PaymentStatus = registrationDomain.PaymentStatusFailed
			registration.UpdatedAt = time.Now().UTC()
			if err := u.registrationRepository.Update(ctx, registration); err != nil {
				return err
			}
		}

		return u.auditLogUseCase.Record(
			ctx,
			systemActor,
			auditDomain.ActionPaymentFailed,
			"payment",
			payment.ID,
			map[string]any{
				"provider_payment_intent_id": intent.ID,
				"registration_id":            metadata.RegistrationID.String(),
			},
		)
	})
	if err != nil {
		logger.Error("failed to reconcile failed payment", slog.String("error", err.Error()))
	}
	return err
}

// handleRefunded reconciles charge.refunded. The provider reports a running
// refund total, so the monotonic SetRefundedTotal makes redeliveries no-ops.
func (u *webhookUseCase) handleRefunded(
	ctx context.Context,
	logger *slog.Logger,
	event *provider.Event,
) error {
	charge, err := event.Charge()
	if err != nil {
		logger.Error("failed to parse charge", slog.String("error", err.Error()))
		_, err = u.recordDelivery(ctx, event)
		return err
	}

	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := u.recordDelivery(ctx, event); err != nil {
			return err
		}

		payment, err := u.paymentRepository.GetByProviderPaymentIntentID(ctx, charge.PaymentIntent)
		if err != nil {
			return err
		}

		payment, applied, err := u.paymentRepository.SetRefundedTotal(ctx, payment.ID, charge.AmountRefunded)
		if err != nil {
			return err
		}
		if !applied {
			logger.Debug("refund total already applied; treating as replay")
			return nil
		}

		if payment.Status == paymentDomain.StatusRefunded {
			if err := u.downgradeRefundedRegistration(ctx, logger, payment.RegistrationID); err != nil {
				return err
			}
		}

		return u.auditLogUseCase.Record(
			ctx,
			systemActor,
			auditDomain.ActionRefundRecorded,
			"payment",
			payment.ID,
			map[string]any{
				"provider_charge_id": charge.ID,
				"refunded_cents":     payment.RefundedCents,
			},
		)
	})
	if err != nil {
		logger.Error("failed to reconcile refund", slog.String("error", err.Error()))
	}
	return err
}

// downgradeRefundedRegistration releases the spot held by a fully refunded
// payment.
func (u *webhookUseCase) downgradeRefundedRegistration(
	ctx context.Context,
	logger *slog.Logger,
	registrationID uuid.UUID,
) error {
	registration, err := u.registrationRepository.Get(ctx, registrationID)
	if err != nil {
		if errors.Is(err, registrationDomain.ErrRegistrationNotFound) {
			logger.Warn("registration missing for refunded payment",
				slog.String("registration_id", registrationID.String()))
			return nil
		}
		return err
	}

	registration.PaymentStatus = registrationDomain.PaymentStatusRefunded
	registration.UpdatedAt = time.Now().UTC()
	return u.registrationRepository.Update(ctx, registration)
}
