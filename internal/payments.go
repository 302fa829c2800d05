package internal

import (
	"context"
	"fmt"
	"time"

	"ipay/config"
	"ipay/entity"
	"ipay/services"
)

// Payments turns checkout requests into gateway transactions, one fresh
// Cashier per request, and records gateway callbacks.
type Payments struct {
	merchant config.Merchant
	client   services.HTTPClient
	database services.Database
	logger   services.LogHandler
}

func NewPayments(conf *config.Config, client services.HTTPClient) *Payments {
	if client == nil {
		client = NewHTTPClient(conf.Merchant)
	}
	return &Payments{
		merchant: conf.Merchant,
		client:   client,
	}
}

func (p *Payments) SetDatabase(database services.Database) {
	p.database = database
}

func (p *Payments) SetLogger(logger services.LogHandler) {
	p.logger = logger
	if p.merchant.VendorId == "" || p.merchant.Secret == "" {
		p.logger.Warn("merchant not configured")
	}
	if p.merchant.InsecureSkipVerify {
		p.logger.Warn("TLS certificate verification is disabled for gateway requests")
	}
	if p.merchant.Demo {
		p.logger.Info("demo mode")
	}
}

// Checkout submits one order and returns the gateway response body.
func (p *Payments) Checkout(ctx context.Context, checkout *services.Checkout) (string, error) {
	cashier := NewCashierFromConfig(p.merchant, p.client).
		SetLogger(p.logger).
		SetDatabase(p.database).
		SetCustomer(checkout.Telephone, checkout.Email, checkout.SendReceipt)

	if len(checkout.Channels) > 0 {
		channels := make([]entity.Channel, 0, len(checkout.Channels))
		for _, name := range checkout.Channels {
			channels = append(channels, entity.Channel(name))
		}
		cashier.SetChannels(channels...)
	}
	if len(checkout.Payloads) > 0 {
		var payloads entity.Payloads
		copy(payloads[:], checkout.Payloads)
		cashier.SetExtraPayloads(payloads[0], payloads[1], payloads[2], payloads[3])
	}
	if checkout.CallbackUrl != "" || checkout.FailedUrl != "" || checkout.CallbackMode != nil {
		// fields left out of the checkout keep the merchant values
		successUrl := checkout.CallbackUrl
		if successUrl == "" {
			successUrl = p.merchant.CallbackUrl
		}
		failedUrl := checkout.FailedUrl
		if failedUrl == "" {
			failedUrl = p.merchant.FailedUrl
		}
		mode := entity.CallbackMode(p.merchant.CallbackMode)
		if checkout.CallbackMode != nil {
			mode = entity.CallbackMode(*checkout.CallbackMode)
		}
		cashier.SetCallback(successUrl, failedUrl, mode)
	}

	return cashier.Transact(ctx, checkout.Amount, checkout.OrderId, checkout.InvoiceNumber)
}

// Notify stores a gateway callback. Without a database it is only logged.
func (p *Payments) Notify(ctx context.Context, orderId string, params map[string]string, remote string) error {
	notifyCounter.Inc()
	if p.logger != nil {
		p.logger.Info(fmt.Sprintf("notification: order %s; status %s; from %s", orderId, params["status"], remote))
	}
	if p.database == nil {
		return nil
	}
	notification := &entity.Notification{
		OrderId: orderId,
		Params:  params,
		Remote:  remote,
		Time:    time.Now(),
	}
	if err := p.database.SaveNotification(ctx, notification); err != nil {
		return fmt.Errorf("save notification: %w", err)
	}
	return nil
}
