package internal

import (
	"fmt"
	"strings"

	"gitee.com/golang-module/dongle"
	"ipay/entity"
)

const (
	SignatureSha1   = "sha1"
	SignatureSha256 = "sha256"
)

// Signer computes the "hsh" field of a transaction.
type Signer struct {
	secret    string
	algorithm string
}

func NewSigner(secret string, algorithm string) (*Signer, error) {
	if secret == "" {
		return nil, fmt.Errorf("empty signing secret")
	}
	switch algorithm {
	case "":
		algorithm = SignatureSha1
	case SignatureSha1, SignatureSha256:
	default:
		return nil, fmt.Errorf("unsupported signature algorithm %q", algorithm)
	}
	return &Signer{secret: secret, algorithm: algorithm}, nil
}

// SigningString concatenates the signed fields without separators, in the
// order the gateway verifies them. The invoice number must already be resolved.
func SigningString(request *entity.TransactionRequest) string {
	var b strings.Builder
	b.WriteString(request.Environment.Flag())
	b.WriteString(request.OrderId)
	b.WriteString(request.InvoiceNumber)
	b.WriteString(request.AmountString())
	b.WriteString(request.Customer.Telephone)
	b.WriteString(request.Customer.Email)
	b.WriteString(request.Vendor.Id)
	b.WriteString(request.Currency)
	for _, payload := range request.Payloads {
		b.WriteString(payload)
	}
	b.WriteString(request.CallbackUrl)
	b.WriteString(flag(request.Customer.SendEmailReceipt))
	b.WriteString(request.CallbackMode.Code())
	return b.String()
}

// Sign returns the hex encoded HMAC of the signing string.
func (s *Signer) Sign(request *entity.TransactionRequest) (string, error) {
	return s.mac(SigningString(request))
}

func (s *Signer) mac(message string) (string, error) {
	encrypter := dongle.Encrypt.FromString(message)
	if s.algorithm == SignatureSha256 {
		encrypter = encrypter.ByHmacSha256(s.secret)
	} else {
		encrypter = encrypter.ByHmacSha1(s.secret)
	}
	if encrypter.Error != nil {
		return "", fmt.Errorf("hmac %s: %v", s.algorithm, encrypter.Error)
	}
	return encrypter.ToHexString(), nil
}

func flag(value bool) string {
	if value {
		return "1"
	}
	return "0"
}
