package internal

import (
	"net/url"
	"strings"

	"ipay/entity"
)

// Field is one form key/value pair.
type Field struct {
	Key   string
	Value string
}

// Form is an ordered set of form fields; Encode keeps the order.
type Form []Field

func (f Form) Get(key string) (string, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return "", false
}

// Map copies the fields into a map, for storage.
func (f Form) Map() map[string]string {
	out := make(map[string]string, len(f))
	for _, field := range f {
		out[field.Key] = field.Value
	}
	return out
}

// Encode renders the form as application/x-www-form-urlencoded.
func (f Form) Encode() string {
	var b strings.Builder
	for i, field := range f {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(field.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(field.Value))
	}
	return b.String()
}

// NewForm lays out the gateway fields followed by one 0/1 flag per catalog channel.
func NewForm(request *entity.TransactionRequest, hash string) Form {
	form := Form{
		{"live", request.Environment.Flag()},
		{"oid", request.OrderId},
		{"inv", request.InvoiceNumber},
		{"ttl", request.AmountString()},
		{"tel", request.Customer.Telephone},
		{"eml", request.Customer.Email},
		{"vid", request.Vendor.Id},
		{"curr", request.Currency},
		{"p1", request.Payloads[0]},
		{"p2", request.Payloads[1]},
		{"p3", request.Payloads[2]},
		{"p4", request.Payloads[3]},
		{"lbk", request.FailedUrl},
		{"cbk", request.CallbackUrl},
		{"cst", flag(request.Customer.SendEmailReceipt)},
		{"crl", request.CallbackMode.Code()},
		{"hsh", hash},
	}
	for _, ch := range entity.Channels() {
		form = append(form, Field{Key: ch.String(), Value: flag(request.ChannelEnabled(ch))})
	}
	return form
}
