package provider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/courtside/registration/internal/errors"
	paymentDomain "github.com/courtside/registration/internal/payments/domain"
)

// Webhook event types the reconciler dispatches on.
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventPaymentIntentFailed      = "payment_intent.payment_failed"
	EventChargeRefunded           = "charge.refunded"
)

// signatureTolerance bounds how old a signed webhook timestamp may be.
// Replayed captures outside this window are rejected even with a valid
// signature.
const signatureTolerance = 5 * time.Minute

// SignatureVerifier checks HMAC-SHA256 webhook signatures in the
// `t=<unix>,v1=<hex>` header scheme. The signed payload is the timestamp, a
// dot, then the raw body.
type SignatureVerifier struct {
	secret string
}

// NewSignatureVerifier creates a verifier. An empty secret disables
// verification entirely; this is a development fallback and must never be
// used with a real provider account.
func NewSignatureVerifier(secret string) *SignatureVerifier {
	return &SignatureVerifier{secret: secret}
}

// Verify checks the signature header against the raw payload.
func (v *SignatureVerifier) Verify(payload []byte, header string, now time.Time) error {
	if v.secret == "" {
		return nil
	}

	var timestamp string
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			signatures = append(signatures, value)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return apperrors.Wrap(paymentDomain.ErrInvalidSignature, "malformed signature header")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return apperrors.Wrap(paymentDomain.ErrInvalidSignature, "malformed signature timestamp")
	}
	age := now.Sub(time.Unix(ts, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return apperrors.Wrap(paymentDomain.ErrInvalidSignature, "signature timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, signature := range signatures {
		if hmac.Equal([]byte(expected), []byte(signature)) {
			return nil
		}
	}
	return paymentDomain.ErrInvalidSignature
}

// Event is a parsed provider webhook envelope.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// ParseEvent decodes a webhook payload into an event envelope.
func ParseEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "failed to parse webhook payload: %v", err)
	}
	if event.ID == "" || event.Type == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "webhook payload missing id or type")
	}
	return &event, nil
}

// CheckoutSessionObject is the data object of checkout.session.completed.
type CheckoutSessionObject struct {
	ID            string            `json:"id"`
	PaymentIntent string            `json:"payment_intent"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}

// PaymentIntentObject is the data object of payment_intent.payment_failed.
type PaymentIntentObject struct {
	ID       string            `json:"id"`
	Metadata map[string]string `json:"metadata"`
}

// ChargeObject is the data object of charge.refunded. AmountRefunded is the
// provider's running total, not the delta of this event.
type ChargeObject struct {
	ID             string            `json:"id"`
	PaymentIntent  string            `json:"payment_intent"`
	AmountRefunded int64             `json:"amount_refunded"`
	Refunded       bool              `json:"refunded"`
	Metadata       map[string]string `json:"metadata"`
}

// CheckoutSession decodes the event's data object as a checkout session.
func (e *Event) CheckoutSession() (*CheckoutSessionObject, error) {
	var object CheckoutSessionObject
	if err := json.Unmarshal(e.Data.Object, &object); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "failed to parse checkout session object: %v", err)
	}
	return &object, nil
}

// PaymentIntent decodes the event's data object as a payment intent.
func (e *Event) PaymentIntent() (*PaymentIntentObject, error) {
	var object PaymentIntentObject
	if err := json.Unmarshal(e.Data.Object, &object); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "failed to parse payment intent object: %v", err)
	}
	return &object, nil
}

// Charge decodes the event's data object as a charge.
func (e *Event) Charge() (*ChargeObject, error) {
	var object ChargeObject
	if err := json.Unmarshal(e.Data.Object, &object); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "failed to parse charge object: %v", err)
	}
	return &object, nil
}

// MetadataFromMap reconstructs checkout metadata carried back on a webhook
// object.
func MetadataFromMap(values map[string]string) (paymentDomain.CheckoutMetadata, error) {
	metadata := paymentDomain.CheckoutMetadata{Version: values["version"]}

	registrationID, err := uuid.Parse(values["registration_id"])
	if err != nil {
		return metadata, apperrors.Wrap(apperrors.ErrInvalidInput,
			"checkout metadata has invalid registration id")
	}
	eventID, err := uuid.Parse(values["event_id"])
	if err != nil {
		return metadata, apperrors.Wrap(apperrors.ErrInvalidInput,
			"checkout metadata has invalid event id")
	}

	metadata.RegistrationID = registrationID
	metadata.EventID = eventID
	return metadata, metadata.Validate()
}
