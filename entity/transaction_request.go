// Package entity defines data models for the iPay cashier.
package entity

import (
	"math"
	"strconv"
)

// Environment selects the live or demo gateway account.
type Environment int

const (
	EnvironmentLive Environment = iota
	EnvironmentDemo
)

// Flag is the "live" form value: "1" for live, "0" for demo.
func (e Environment) Flag() string {
	if e == EnvironmentDemo {
		return "0"
	}
	return "1"
}

// CallbackMode tells the gateway how to notify the merchant of the outcome.
type CallbackMode int

const (
	// CallbackHTTP is an http/https redirect to the callback url
	CallbackHTTP CallbackMode = iota
	// CallbackCSV is a data stream of comma separated values
	CallbackCSV
	// CallbackJSONStream is a json data stream
	CallbackJSONStream
)

func (m CallbackMode) Valid() bool {
	return m >= CallbackHTTP && m <= CallbackJSONStream
}

// Code is the numeric "crl" form value.
func (m CallbackMode) Code() string {
	return strconv.Itoa(int(m))
}

// Customer is the payer contact information.
type Customer struct {
	Telephone        string `json:"telephone" bson:"telephone"`
	Email            string `json:"email,omitempty" bson:"email"`
	SendEmailReceipt bool   `json:"send_email_receipt" bson:"send_email_receipt"`
}

// Vendor holds the merchant account credentials.
// Secret signs the request and is never serialized.
type Vendor struct {
	Id     string `json:"vendor_id" bson:"vendor_id"`
	Secret string `json:"-" bson:"-"`
}

// Payloads are four opaque values echoed back by the gateway (p1..p4).
type Payloads [4]string

// TransactionRequest accumulates every field of a gateway submission.
// It is mutated by the cashier during configuration and only read while signing.
type TransactionRequest struct {
	Environment   Environment
	Amount        float64
	OrderId       string
	InvoiceNumber string
	Customer      Customer
	Vendor        Vendor
	Currency      string
	Payloads      Payloads
	CallbackUrl   string
	FailedUrl     string
	CallbackMode  CallbackMode
	Channels      ChannelSet
}

// NewTransactionRequest returns an empty request carrying the gateway defaults:
// live environment, KES, http callback mode and the default channel set.
func NewTransactionRequest() *TransactionRequest {
	channels, _ := NewChannelSet(DefaultChannels()...)
	return &TransactionRequest{
		Environment:  EnvironmentLive,
		Currency:     "KES",
		CallbackMode: CallbackHTTP,
		Channels:     channels,
	}
}

// MinorUnits rounds an amount to whole cents.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// AmountString renders the amount the way it is signed and posted: rounded
// to cents, no exponent, no trailing zeros ("10", "10.5", "0.3").
func (t *TransactionRequest) AmountString() string {
	return strconv.FormatFloat(float64(MinorUnits(t.Amount))/100, 'f', -1, 64)
}

// ChannelEnabled reports whether the channel is active for this transaction.
func (t *TransactionRequest) ChannelEnabled(ch Channel) bool {
	return t.Channels.Has(ch)
}
