// Package httpc builds the HTTP clients used for model inference.
// Use it instead of http.DefaultClient so every request carries timeouts.
package httpc

import (
	"net"
	"net/http"
	"time"
)

// Connection timeouts. A loaded local model can stall for seconds before
// the first byte, so only connection setup is bounded here; the overall
// request deadline comes from the caller.
const (
	connectTimeout  = 10 * time.Second
	keepAlive       = 30 * time.Second
	idleConnTimeout = 90 * time.Second
)

// NewClient creates an HTTP client with the given overall request timeout.
// The transport keeps connections to the inference server alive between
// turns so consecutive exchanges skip the TCP handshake.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   connectTimeout,
				KeepAlive: keepAlive,
			}).DialContext,
			MaxIdleConns:          8,
			MaxIdleConnsPerHost:   4,
			IdleConnTimeout:       idleConnTimeout,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}
