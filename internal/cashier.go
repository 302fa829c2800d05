package internal

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"ipay/config"
	"ipay/entity"
	"ipay/services"
)

const DefaultEndpoint = "https://payments.ipayafrica.com/v3/ke"

// Cashier assembles, signs and submits one gateway transaction.
//
// Configuration methods chain and never fail on their own; the first invalid
// value is kept and returned by Transact before anything is sent. A Cashier
// is single use: build a new one for every transaction, and do not share one
// between goroutines.
type Cashier struct {
	request   *entity.TransactionRequest
	client    services.HTTPClient
	endpoint  string
	algorithm string
	logger    services.LogHandler
	database  services.Database
	err       error
	used      bool
}

// NewCashier creates a cashier with the gateway defaults. A nil client falls
// back to a client built from the default merchant settings.
func NewCashier(client services.HTTPClient) *Cashier {
	if client == nil {
		client = NewHTTPClient(config.Merchant{})
	}
	return &Cashier{
		request:   entity.NewTransactionRequest(),
		client:    client,
		endpoint:  DefaultEndpoint,
		algorithm: SignatureSha1,
	}
}

// NewCashierFromConfig creates a cashier preloaded with the merchant account
// and defaults from configuration.
func NewCashierFromConfig(merchant config.Merchant, client services.HTTPClient) *Cashier {
	c := NewCashier(client)
	if merchant.RequestUrl != "" {
		c.SetEndpoint(merchant.RequestUrl)
	}
	if merchant.SignatureAlgorithm != "" {
		c.SetSignatureAlgorithm(merchant.SignatureAlgorithm)
	}
	c.SetVendorCredentials(merchant.VendorId, merchant.Secret)
	if merchant.Demo {
		c.SetDemoMode()
	}
	if merchant.Currency != "" {
		c.SetCurrency(merchant.Currency)
	}
	if len(merchant.Channels) > 0 {
		channels := make([]entity.Channel, 0, len(merchant.Channels))
		for _, name := range merchant.Channels {
			channels = append(channels, entity.Channel(strings.TrimSpace(name)))
		}
		c.SetChannels(channels...)
	}
	if merchant.CallbackUrl != "" || merchant.FailedUrl != "" || merchant.CallbackMode != 0 {
		c.SetCallback(merchant.CallbackUrl, merchant.FailedUrl, entity.CallbackMode(merchant.CallbackMode))
	}
	return c
}

func (c *Cashier) SetLogger(logger services.LogHandler) *Cashier {
	c.logger = logger
	return c
}

func (c *Cashier) SetDatabase(database services.Database) *Cashier {
	c.database = database
	return c
}

func (c *Cashier) SetEndpoint(endpoint string) *Cashier {
	if endpoint == "" {
		return c.fail(invalid("endpoint", "required"))
	}
	c.endpoint = endpoint
	return c
}

func (c *Cashier) SetSignatureAlgorithm(algorithm string) *Cashier {
	if algorithm != SignatureSha1 && algorithm != SignatureSha256 {
		return c.fail(invalid("signature_algorithm", fmt.Sprintf("unsupported %q", algorithm)))
	}
	c.algorithm = algorithm
	return c
}

// SetDemoMode sends the transaction to the demo account instead of live.
func (c *Cashier) SetDemoMode() *Cashier {
	c.request.Environment = entity.EnvironmentDemo
	return c
}

// SetCustomer sets the payer contact; email may be empty.
func (c *Cashier) SetCustomer(telephone, email string, sendReceipt bool) *Cashier {
	if telephone == "" {
		return c.fail(invalid("telephone", "required"))
	}
	c.request.Customer = entity.Customer{
		Telephone:        telephone,
		Email:            email,
		SendEmailReceipt: sendReceipt,
	}
	return c
}

func (c *Cashier) SetVendorCredentials(vendorId, secret string) *Cashier {
	if vendorId == "" {
		return c.fail(invalid("vendor_id", "required"))
	}
	if secret == "" {
		return c.fail(invalid("secret", "required"))
	}
	c.request.Vendor = entity.Vendor{Id: vendorId, Secret: secret}
	return c
}

func (c *Cashier) SetCurrency(code string) *Cashier {
	if code == "" {
		return c.fail(invalid("currency", "required"))
	}
	c.request.Currency = code
	return c
}

// SetChannels replaces the enabled channels. Unknown identifiers leave the
// current set untouched and fail the transaction.
func (c *Cashier) SetChannels(channels ...entity.Channel) *Cashier {
	set, err := entity.NewChannelSet(channels...)
	if err != nil {
		return c.fail(invalid("channels", err.Error()))
	}
	c.request.Channels = set
	return c
}

// SetExtraPayloads replaces all four payload slots.
func (c *Cashier) SetExtraPayloads(p1, p2, p3, p4 string) *Cashier {
	c.request.Payloads = entity.Payloads{p1, p2, p3, p4}
	return c
}

// SetCallback sets the success and failure urls; the zero mode is an http redirect.
func (c *Cashier) SetCallback(successUrl, failedUrl string, mode entity.CallbackMode) *Cashier {
	if !mode.Valid() {
		return c.fail(invalid("callback_mode", fmt.Sprintf("unknown mode %d", int(mode))))
	}
	c.request.CallbackUrl = successUrl
	c.request.FailedUrl = failedUrl
	c.request.CallbackMode = mode
	return c
}

// Err returns the first configuration error, if any.
func (c *Cashier) Err() error {
	return c.err
}

// Request returns a copy of the accumulated transaction; changing it does
// not affect the cashier.
func (c *Cashier) Request() entity.TransactionRequest {
	request := *c.request
	request.Channels = c.request.Channels.Clone()
	return request
}

// Transact finalizes the transaction, signs it and posts it to the gateway.
// The response body is returned verbatim. Validation problems are reported as
// *ValidationError before any request is made; network failures come back as
// *TransportError and non-2xx answers as *GatewayError.
func (c *Cashier) Transact(ctx context.Context, amount float64, orderId, invoiceNumber string) (string, error) {
	if c.used {
		return "", ErrCashierUsed
	}
	c.used = true

	if c.err != nil {
		transactCounter.WithLabelValues("validation").Inc()
		return "", c.err
	}

	c.request.Amount = amount
	c.request.OrderId = orderId
	c.request.InvoiceNumber = invoiceNumber
	if c.request.InvoiceNumber == "" {
		c.request.InvoiceNumber = orderId
	}

	if err := c.validate(); err != nil {
		transactCounter.WithLabelValues("validation").Inc()
		return "", err
	}

	signer, err := NewSigner(c.request.Vendor.Secret, c.algorithm)
	if err != nil {
		transactCounter.WithLabelValues("validation").Inc()
		return "", invalid("secret", err.Error())
	}
	hash, err := signer.Sign(c.request)
	if err != nil {
		transactCounter.WithLabelValues("validation").Inc()
		return "", err
	}
	form := NewForm(c.request, hash)

	c.debug(fmt.Sprintf("order %s: post %d fields to %s", orderId, len(form), c.endpoint))
	body, status, err := c.post(ctx, form)
	c.record(ctx, form, status, err)
	if err != nil {
		c.error(fmt.Sprintf("order %s", orderId), err)
		transactCounter.WithLabelValues(resultLabel(err)).Inc()
		return "", err
	}
	transactCounter.WithLabelValues("ok").Inc()
	c.info(fmt.Sprintf("order %s; vendor %s; amount %s %s: status %d", orderId, secret(c.request.Vendor.Id), c.request.AmountString(), c.request.Currency, status))
	return body, nil
}

func (c *Cashier) validate() error {
	r := c.request
	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) || entity.MinorUnits(r.Amount) <= 0 {
		return invalid("amount", "must be greater than zero")
	}
	if r.OrderId == "" {
		return invalid("order_id", "required")
	}
	if r.Vendor.Id == "" || r.Vendor.Secret == "" {
		return invalid("vendor", "credentials not set")
	}
	if r.Customer.Telephone == "" {
		return invalid("telephone", "required")
	}
	return nil
}

func (c *Cashier) post(ctx context.Context, form Form) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, &TransportError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := c.client.Do(req)
	if err != nil {
		return "", 0, &TransportError{Err: err}
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.error("close response body", err)
		}
	}(response.Body)

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", response.StatusCode, &TransportError{Err: fmt.Errorf("read response body: %w", err)}
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", response.StatusCode, &GatewayError{StatusCode: response.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return string(body), response.StatusCode, nil
}

// record keeps the posted form in the database; failures are only logged
func (c *Cashier) record(ctx context.Context, form Form, status int, err error) {
	if c.database == nil {
		return
	}
	record := &entity.TransactionRecord{
		OrderId:       c.request.OrderId,
		InvoiceNumber: c.request.InvoiceNumber,
		Amount:        c.request.Amount,
		Currency:      c.request.Currency,
		VendorId:      c.request.Vendor.Id,
		Live:          c.request.Environment == entity.EnvironmentLive,
		Fields:        form.Map(),
		StatusCode:    status,
		Time:          time.Now(),
	}
	if err != nil {
		record.Error = err.Error()
	}
	if e := c.database.SaveTransaction(ctx, record); e != nil {
		c.error("save transaction", e)
	}
}

func (c *Cashier) fail(err *ValidationError) *Cashier {
	if c.err == nil {
		c.err = err
	}
	return c
}

func (c *Cashier) debug(text string) {
	if c.logger != nil {
		c.logger.Debug(text)
	}
}

func (c *Cashier) info(text string) {
	if c.logger != nil {
		c.logger.Info(text)
	}
}

func (c *Cashier) error(text string, err error) {
	if c.logger != nil {
		c.logger.Error(text, err)
	}
}

func secret(some string) string {
	if len(some) > 5 {
		return fmt.Sprintf("%s***", some[0:5])
	}
	if some == "" {
		return "?"
	}
	return "***"
}
