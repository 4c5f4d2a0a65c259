package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	paymentDomain "github.com/courtside/registration/internal/payments/domain"
	"github.com/courtside/registration/internal/payments/provider"
	registrationDomain "github.com/courtside/registration/internal/registrations/domain"
)

// CheckoutConfig holds the redirect targets embedded in checkout sessions.
type CheckoutConfig struct {
	SuccessURL string
	CancelURL  string
}

// checkoutUseCase implements CheckoutUseCase.
type checkoutUseCase struct {
	paymentRepository PaymentRepository
	eventRepository   EventRepository
	intentCreator     IntentCreator
	providerClient    provider.Client
	config            CheckoutConfig
	logger            *slog.Logger
}

// NewCheckoutUseCase creates a new checkout use case with required dependencies.
func NewCheckoutUseCase(
	paymentRepository PaymentRepository,
	eventRepository EventRepository,
	intentCreator IntentCreator,
	providerClient provider.Client,
	config CheckoutConfig,
	logger *slog.Logger,
) CheckoutUseCase {
	return &checkoutUseCase{
		paymentRepository: paymentRepository,
		eventRepository:   eventRepository,
		intentCreator:     intentCreator,
		providerClient:    providerClient,
		config:            config,
		logger:            logger,
	}
}

// CreateSession brokers a provider checkout session for a priced event. The
// admission checks run inside CreateIntent, so a sold-out or duplicate request
// never reaches the provider. The provider call happens outside any
// transaction; when it fails, no payment row exists and the pending
// registration is left for the sweep.
func (u *checkoutUseCase) CreateSession(
	ctx context.Context,
	eventID uuid.UUID,
	contact *registrationDomain.Contact,
) (*CheckoutOutput, error) {
	event, err := u.eventRepository.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsFree() {
		return nil, registrationDomain.ErrEventNotFree
	}

	registration, err := u.intentCreator.CreateIntent(ctx, eventID, contact)
	if err != nil {
		return nil, err
	}

	session, err := u.providerClient.CreateCheckoutSession(ctx, provider.CheckoutSessionInput{
		AmountCents:   event.PriceCents,
		Currency:      event.Currency,
		Description:   event.Name,
		CustomerEmail: registration.Email,
		SuccessURL:    u.config.SuccessURL,
		CancelURL:     u.config.CancelURL,
		Metadata:      paymentDomain.NewCheckoutMetadata(registration.ID, eventID),
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := &paymentDomain.Payment{
		ID:                uuid.Must(uuid.NewV7()),
		RegistrationID:    registration.ID,
		EventID:           eventID,
		ProviderSessionID: session.SessionID,
		AmountCents:       event.PriceCents,
		Currency:          event.Currency,
		Status:            paymentDomain.StatusRequiresPayment,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := u.paymentRepository.Create(ctx, payment); err != nil {
		// The provider session exists but the ledger lost the row. The session
		// expires on its own and the pending registration is swept.
		u.logger.Error(
			"failed to store payment after session creation",
			slog.String("session_id", session.SessionID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	return &CheckoutOutput{
		URL:            session.URL,
		SessionID:      session.SessionID,
		PaymentID:      payment.ID,
		RegistrationID: registration.ID,
	}, nil
}
