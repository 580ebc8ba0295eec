// Package httpclient arma los *http.Client salientes de los adapters (S3).
package httpclient

import (
	"net"
	"net/http"
	"time"
)

const DefaultTimeout = 30 * time.Second

// New crea un cliente con timeout total y un transport propio; no comparte
// el pool de http.DefaultTransport.
func New(timeout time.Duration) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.DialContext = (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext
	tr.MaxIdleConnsPerHost = 16
	tr.ResponseHeaderTimeout = 15 * time.Second
	return NewWithTransport(timeout, tr)
}

// NewWithTransport permite inyectar un Transport (p.ej. para tests).
func NewWithTransport(timeout time.Duration, tr http.RoundTripper) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tr == nil {
		tr = http.DefaultTransport
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}
