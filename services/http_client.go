package services

import "net/http"

// HTTPClient sends gateway requests; *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
