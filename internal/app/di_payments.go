package app

import (
	"fmt"

	paymentHTTP "github.com/courtside/registration/internal/payments/http"
	"github.com/courtside/registration/internal/payments/provider"
	paymentRepository "github.com/courtside/registration/internal/payments/repository"
	paymentUseCase "github.com/courtside/registration/internal/payments/usecase"
)

// PaymentRepository returns the payment repository based on database driver.
func (c *Container) PaymentRepository() (paymentUseCase.PaymentRepository, error) {
	var err error
	c.paymentRepositoryInit.Do(func() {
		c.paymentRepository, err = c.initPaymentRepository()
		if err != nil {
			c.initErrors["paymentRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["paymentRepository"]; exists {
		return nil, storedErr
	}
	return c.paymentRepository, nil
}

// RefundRepository returns the refund repository based on database driver.
func (c *Container) RefundRepository() (paymentUseCase.RefundRepository, error) {
	var err error
	c.refundRepositoryInit.Do(func() {
		c.refundRepository, err = c.initRefundRepository()
		if err != nil {
			c.initErrors["refundRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["refundRepository"]; exists {
		return nil, storedErr
	}
	return c.refundRepository, nil
}

// WebhookEventRepository returns the webhook dedupe log repository based on
// database driver.
func (c *Container) WebhookEventRepository() (paymentUseCase.WebhookEventRepository, error) {
	var err error
	c.webhookEventRepositoryInit.Do(func() {
		c.webhookEventRepository, err = c.initWebhookEventRepository()
		if err != nil {
			c.initErrors["webhookEventRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["webhookEventRepository"]; exists {
		return nil, storedErr
	}
	return c.webhookEventRepository, nil
}

// ProviderClient returns the payment provider API client.
func (c *Container) ProviderClient() provider.Client {
	c.providerClientInit.Do(func() {
		c.providerClient = provider.NewHTTPClient(provider.Config{
			BaseURL: c.config.PaymentProviderBaseURL,
			APIKey:  c.config.PaymentProviderAPIKey,
		})
	})
	return c.providerClient
}

// CheckoutUseCase returns the checkout use case.
func (c *Container) CheckoutUseCase() (paymentUseCase.CheckoutUseCase, error) {
	var err error
	c.checkoutUseCaseInit.Do(func() {
		c.checkoutUseCase, err = c.initCheckoutUseCase()
		if err != nil {
			c.initErrors["checkoutUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["checkoutUseCase"]; exists {
		return nil, storedErr
	}
	return c.checkoutUseCase, nil
}

// WebhookUseCase returns the webhook reconciliation use case.
func (c *Container) WebhookUseCase() (paymentUseCase.WebhookUseCase, error) {
	var err error
	c.webhookUseCaseInit.Do(func() {
		c.webhookUseCase, err = c.initWebhookUseCase()
		if err != nil {
			c.initErrors["webhookUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["webhookUseCase"]; exists {
		return nil, storedErr
	}
	return c.webhookUseCase, nil
}

// RefundUseCase returns the refund use case.
func (c *Container) RefundUseCase() (paymentUseCase.RefundUseCase, error) {
	var err error
	c.refundUseCaseInit.Do(func() {
		c.refundUseCase, err = c.initRefundUseCase()
		if err != nil {
			c.initErrors["refundUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["refundUseCase"]; exists {
		return nil, storedErr
	}
	return c.refundUseCase, nil
}

// PaymentHandler returns the payment HTTP handler.
func (c *Container) PaymentHandler() (*paymentHTTP.PaymentHandler, error) {
	var err error
	c.paymentHandlerInit.Do(func() {
		c.paymentHandler, err = c.initPaymentHandler()
		if err != nil {
			c.initErrors["paymentHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["paymentHandler"]; exists {
		return nil, storedErr
	}
	return c.paymentHandler, nil
}

// initPaymentRepository creates the payment repository instance.
func (c *Container) initPaymentRepository() (paymentUseCase.PaymentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for payment repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return paymentRepository.NewMySQLPaymentRepository(db), nil
	case "postgres":
		return paymentRepository.NewPostgreSQLPaymentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRefundRepository creates the refund repository instance.
func (c *Container) initRefundRepository() (paymentUseCase.RefundRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for refund repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return paymentRepository.NewMySQLRefundRepository(db), nil
	case "postgres":
		return paymentRepository.NewPostgreSQLRefundRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initWebhookEventRepository creates the webhook event repository instance.
func (c *Container) initWebhookEventRepository() (paymentUseCase.WebhookEventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for webhook event repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return paymentRepository.NewMySQLWebhookEventRepository(db), nil
	case "postgres":
		return paymentRepository.NewPostgreSQLWebhookEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCheckoutUseCase creates the checkout use case instance.
func (c *Container) initCheckoutUseCase() (paymentUseCase.CheckoutUseCase, error) {
	paymentRepo, err := c.PaymentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get payment repository: %w", err)
	}

	eventRepo, err := c.EventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get event repository: %w", err)
	}

	intentUseCase, err := c.IntentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get intent use case: %w", err)
	}

	return paymentUseCase.NewCheckoutUseCase(
		paymentRepo,
		eventRepo,
		intentUseCase,
		c.ProviderClient(),
		paymentUseCase.CheckoutConfig{
			SuccessURL: c.config.CheckoutSuccessURL,
			CancelURL:  c.config.CheckoutCancelURL,
		},
		c.Logger(),
	), nil
}

// initWebhookUseCase creates the webhook use case instance.
func (c *Container) initWebhookUseCase() (paymentUseCase.WebhookUseCase, error) {
	webhookEventRepo, err := c.WebhookEventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook event repository: %w", err)
	}

	paymentRepo, err := c.PaymentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get payment repository: %w", err)
	}

	registrationRepo, err := c.RegistrationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get registration repository: %w", err)
	}

	eventRepo, err := c.EventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get event repository: %w", err)
	}

	auditLogUseCase, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case: %w", err)
	}

	schedulerUseCase, err := c.SchedulerUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get scheduler use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics: %w", err)
	}

	return paymentUseCase.NewWebhookUseCase(
		provider.NewSignatureVerifier(c.config.PaymentWebhookSecret),
		webhookEventRepo,
		paymentRepo,
		registrationRepo,
		eventRepo,
		auditLogUseCase,
		schedulerUseCase,
		txManager,
		businessMetrics,
		c.Logger(),
	), nil
}

// initRefundUseCase creates the refund use case instance.
func (c *Container) initRefundUseCase() (paymentUseCase.RefundUseCase, error) {
	paymentRepo, err := c.PaymentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get payment repository: %w", err)
	}

	refundRepo, err := c.RefundRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get refund repository: %w", err)
	}

	registrationRepo, err := c.RegistrationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get registration repository: %w", err)
	}

	auditLogUseCase, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics: %w", err)
	}

	return paymentUseCase.NewRefundUseCase(
		paymentRepo,
		refundRepo,
		registrationRepo,
		auditLogUseCase,
		c.ProviderClient(),
		txManager,
		businessMetrics,
		c.Logger(),
	), nil
}

// initPaymentHandler creates the payment HTTP handler instance.
func (c *Container) initPaymentHandler() (*paymentHTTP.PaymentHandler, error) {
	checkoutUseCase, err := c.CheckoutUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout use case: %w", err)
	}

	webhookUseCase, err := c.WebhookUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook use case: %w", err)
	}

	refundUseCase, err := c.RefundUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get refund use case: %w", err)
	}

	return paymentHTTP.NewPaymentHandler(
		checkoutUseCase,
		webhookUseCase,
		refundUseCase,
		c.Logger(),
	), nil
}
