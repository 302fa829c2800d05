package services

import "context"

// Checkout is one payment submission as received by the service.
type Checkout struct {
	Amount        float64  `json:"amount" validate:"gt=0"`
	OrderId       string   `json:"order_id" validate:"required"`
	InvoiceNumber string   `json:"invoice_number"`
	Telephone     string   `json:"telephone" validate:"required"`
	Email         string   `json:"email" validate:"omitempty,email"`
	SendReceipt   bool     `json:"send_receipt"`
	Channels      []string `json:"channels"`
	Payloads      []string `json:"payloads" validate:"max=4"`
	CallbackUrl   string   `json:"callback_url" validate:"omitempty,url"`
	FailedUrl     string   `json:"failed_url" validate:"omitempty,url"`
	CallbackMode  *int     `json:"callback_mode" validate:"omitempty,min=0,max=2"`
}

type Cashier interface {
	Checkout(ctx context.Context, checkout *Checkout) (string, error)
	Notify(ctx context.Context, orderId string, params map[string]string, remote string) error
}
