// Package network provides the HTTP client shared by every API call.
package network

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Client retries connection failures, 429 and 5xx responses with backoff.
var Client = NewClient(3)

// NewClient returns a client that retries at most retryMax times.
func NewClient(retryMax int) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = retryMax
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.Logger = nil
	retryClient.HTTPClient = &http.Client{
		Timeout:   time.Minute,
		Transport: newTransport(),
	}

	return retryClient.StandardClient()
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 20
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 5 * time.Second
	return t
}
