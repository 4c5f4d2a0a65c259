package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/courtside/registration/internal/errors"
)

// Config holds provider client settings.
type Config struct {
	BaseURL string
	APIKey  string
}

// httpClient implements Client against a Stripe-style REST API with
// form-encoded requests and bearer authentication.
type httpClient struct {
	config Config
	hc     *http.Client
}

// NewHTTPClient creates a provider client.
func NewHTTPClient(config Config) Client {
	return &httpClient{
		config: config,
		hc:     &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateCheckoutSession creates a hosted checkout session.
func (c *httpClient) CreateCheckoutSession(
	ctx context.Context,
	input CheckoutSessionInput,
) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", input.SuccessURL)
	form.Set("cancel_url", input.CancelURL)
	form.Set("customer_email", input.CustomerEmail)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", input.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(input.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", input.Description)
	form.Set("metadata[version]", input.Metadata.Version)
	form.Set("metadata[registration_id]", input.Metadata.RegistrationID.String())
	form.Set("metadata[event_id]", input.Metadata.EventID.String())
	// The session metadata must also reach the payment intent so that
	// payment_intent.payment_failed events carry the correlation ids.
	form.Set("payment_intent_data[metadata][version]", input.Metadata.Version)
	form.Set("payment_intent_data[metadata][registration_id]", input.Metadata.RegistrationID.String())
	form.Set("payment_intent_data[metadata][event_id]", input.Metadata.EventID.String())

	var reply struct {
		ID            string `json:"id"`
		URL           string `json:"url"`
		PaymentIntent string `json:"payment_intent"`
	}
	if err := c.post(ctx, "/v1/checkout/sessions", form, &reply); err != nil {
		return nil, err
	}

	return &CheckoutSession{SessionID: reply.ID, URL: reply.URL}, nil
}

// CreateRefund refunds part or all of a confirmed payment.
func (c *httpClient) CreateRefund(ctx context.Context, input RefundInput) (*Refund, error) {
	form := url.Values{}
	form.Set("payment_intent", input.PaymentIntentID)
	form.Set("amount", strconv.FormatInt(input.AmountCents, 10))
	if input.Reason != "" {
		form.Set("metadata[reason]", input.Reason)
	}

	var reply struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := c.post(ctx, "/v1/refunds", form, &reply); err != nil {
		return nil, err
	}

	return &Refund{RefundID: reply.ID, Status: reply.Status}, nil
}

// post sends a form-encoded request and decodes the JSON response. Transport
// errors and non-2xx responses wrap ErrUnavailable; the caller must not have
// written any local state yet.
func (c *httpClient) post(ctx context.Context, path string, form url.Values, reply any) error {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		strings.TrimRight(c.config.BaseURL, "/")+path,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to build provider request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrUnavailable, "provider request failed: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return apperrors.Wrap(apperrors.ErrUnavailable,
			fmt.Sprintf("provider returned status %d: %s", resp.StatusCode, body))
	}

	if err := json.NewDecoder(resp.Body).Decode(reply); err != nil {
		return apperrors.Wrapf(apperrors.ErrUnavailable, "failed to decode provider response: %v", err)
	}
	return nil
}
