package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/courtside/registration/internal/errors"
	paymentDomain "github.com/courtside/registration/internal/payments/domain"
)

func TestHTTPClient_CreateCheckoutSession(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		registrationID := uuid.Must(uuid.NewV7())
		eventID := uuid.Must(uuid.NewV7())

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
			assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "payment", r.Form.Get("mode"))
			assert.Equal(t, "2500", r.Form.Get("line_items[0][price_data][unit_amount]"))
			assert.Equal(t, registrationID.String(), r.Form.Get("metadata[registration_id]"))
			assert.Equal(t, registrationID.String(),
				r.Form.Get("payment_intent_data[metadata][registration_id]"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.example/cs_test_1"}`))
		}))
		defer server.Close()

		client := NewHTTPClient(Config{BaseURL: server.URL, APIKey: "sk_test"})
		session, err := client.CreateCheckoutSession(context.Background(), CheckoutSessionInput{
			AmountCents:   2500,
			Currency:      "eur",
			Description:   "Summer 3x3 Open",
			CustomerEmail: "dana@example.com",
			SuccessURL:    "https://site.example/success",
			CancelURL:     "https://site.example/cancel",
			Metadata:      paymentDomain.NewCheckoutMetadata(registrationID, eventID),
		})
		require.NoError(t, err)
		assert.Equal(t, "cs_test_1", session.SessionID)
		assert.Equal(t, "https://checkout.example/cs_test_1", session.URL)
	})

	t.Run("provider error maps to unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"error":{"message":"card declined"}}`))
		}))
		defer server.Close()

		client := NewHTTPClient(Config{BaseURL: server.URL, APIKey: "sk_test"})
		_, err := client.CreateCheckoutSession(context.Background(), CheckoutSessionInput{})
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})

	t.Run("unreachable provider maps to unavailable", func(t *testing.T) {
		client := NewHTTPClient(Config{BaseURL: "http://127.0.0.1:1", APIKey: "sk_test"})
		_, err := client.CreateCheckoutSession(context.Background(), CheckoutSessionInput{})
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})
}

func TestHTTPClient_CreateRefund(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/refunds", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "pi_1", r.Form.Get("payment_intent"))
		assert.Equal(t, "1000", r.Form.Get("amount"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"re_1","status":"succeeded"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(Config{BaseURL: server.URL, APIKey: "sk_test"})
	refund, err := client.CreateRefund(context.Background(), RefundInput{
		PaymentIntentID: "pi_1",
		AmountCents:     1000,
		Reason:          "duplicate registration",
	})
	require.NoError(t, err)
	assert.Equal(t, "re_1", refund.RefundID)
	assert.Equal(t, "succeeded", refund.Status)
}
