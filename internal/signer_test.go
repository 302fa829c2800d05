package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ipay/entity"
)

func fixtureRequest() *entity.TransactionRequest {
	request := entity.NewTransactionRequest()
	request.OrderId = "ORD1"
	request.InvoiceNumber = "ORD1"
	request.Amount = 10
	request.Customer = entity.Customer{Telephone: "0722000000", Email: "demo@example.com"}
	request.Vendor = entity.Vendor{Id: "V", Secret: "S"}
	request.CallbackUrl = "http://cb.example"
	return request
}

func TestSigningString_FixedVector(t *testing.T) {
	got := SigningString(fixtureRequest())
	require.Equal(t, "1ORD1ORD1100722000000demo@example.comVKEShttp://cb.example00", got)
}

func TestSign_FixedVector(t *testing.T) {
	signer, err := NewSigner("S", SignatureSha1)
	require.NoError(t, err)
	hash, err := signer.Sign(fixtureRequest())
	require.NoError(t, err)
	assert.Equal(t, "8b6198d14b1c745956a9b6a5fc0849440ee6d1a9", hash)

	signer, err = NewSigner("S", SignatureSha256)
	require.NoError(t, err)
	hash, err = signer.Sign(fixtureRequest())
	require.NoError(t, err)
	assert.Equal(t, "4c2b6ed13bb4d6b42d09aaca5a194d4ac1e49e8af39448edc14827feda78284c", hash)
}

func TestSign_DefaultsToSha1(t *testing.T) {
	signer, err := NewSigner("S", "")
	require.NoError(t, err)
	hash, err := signer.Sign(fixtureRequest())
	require.NoError(t, err)
	assert.Equal(t, "8b6198d14b1c745956a9b6a5fc0849440ee6d1a9", hash)
}

func TestNewSigner_Rejects(t *testing.T) {
	_, err := NewSigner("", SignatureSha1)
	assert.Error(t, err)
	_, err = NewSigner("S", "md5")
	assert.Error(t, err)
}

func TestSign_Deterministic(t *testing.T) {
	signer, err := NewSigner("S", SignatureSha1)
	require.NoError(t, err)
	first, err := signer.Sign(fixtureRequest())
	require.NoError(t, err)
	second, err := signer.Sign(fixtureRequest())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSign_EveryFieldChangesDigest(t *testing.T) {
	signer, err := NewSigner("S", SignatureSha1)
	require.NoError(t, err)
	base, err := signer.Sign(fixtureRequest())
	require.NoError(t, err)

	mutations := map[string]func(r *entity.TransactionRequest){
		"environment":   func(r *entity.TransactionRequest) { r.Environment = entity.EnvironmentDemo },
		"order id":      func(r *entity.TransactionRequest) { r.OrderId = "ORD2" },
		"invoice":       func(r *entity.TransactionRequest) { r.InvoiceNumber = "INV9" },
		"amount":        func(r *entity.TransactionRequest) { r.Amount = 11 },
		"telephone":     func(r *entity.TransactionRequest) { r.Customer.Telephone = "0733000000" },
		"email":         func(r *entity.TransactionRequest) { r.Customer.Email = "other@example.com" },
		"vendor":        func(r *entity.TransactionRequest) { r.Vendor.Id = "W" },
		"currency":      func(r *entity.TransactionRequest) { r.Currency = "USD" },
		"payload 1":     func(r *entity.TransactionRequest) { r.Payloads[0] = "a" },
		"payload 2":     func(r *entity.TransactionRequest) { r.Payloads[1] = "b" },
		"payload 3":     func(r *entity.TransactionRequest) { r.Payloads[2] = "c" },
		"payload 4":     func(r *entity.TransactionRequest) { r.Payloads[3] = "d" },
		"callback url":  func(r *entity.TransactionRequest) { r.CallbackUrl = "http://other.example" },
		"send receipt":  func(r *entity.TransactionRequest) { r.Customer.SendEmailReceipt = true },
		"callback mode": func(r *entity.TransactionRequest) { r.CallbackMode = entity.CallbackJSONStream },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			request := fixtureRequest()
			mutate(request)
			hash, err := signer.Sign(request)
			require.NoError(t, err)
			assert.NotEqual(t, base, hash)
		})
	}

	other, err := NewSigner("T", SignatureSha1)
	require.NoError(t, err)
	hash, err := other.Sign(fixtureRequest())
	require.NoError(t, err)
	assert.NotEqual(t, base, hash, "secret")
}

func TestSigningString_FailedUrlNotSigned(t *testing.T) {
	request := fixtureRequest()
	before := SigningString(request)
	request.FailedUrl = "http://fail.example"
	assert.Equal(t, before, SigningString(request))
}
