package internal

import (
	"crypto/tls"
	"net/http"
	"time"

	"ipay/config"
)

const defaultTimeout = 60 * time.Second

// NewHTTPClient creates the gateway client with a bounded timeout and pooled
// connections. Redirects are followed; certificate verification stays on
// unless the merchant configuration turns it off explicitly.
func NewHTTPClient(merchant config.Merchant) *http.Client {
	timeout := defaultTimeout
	if merchant.TimeoutSeconds > 0 {
		timeout = time.Duration(merchant.TimeoutSeconds) * time.Second
	}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	if merchant.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
