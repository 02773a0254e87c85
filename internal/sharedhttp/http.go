package sharedhttp

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"mangadex/internal/domain"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

var Transport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ForceAttemptHTTP2:     true,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ReadBufferSize:        65536,
	WriteBufferSize:       65536,
	TLSClientConfig: &tls.Config{
		MinVersion: tls.VersionTLS12,
	},
}

// StatusError is an unexpected HTTP status. It matches domain.ErrTransport.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return domain.ErrTransport
}

// Temporary reports whether the same request may succeed later.
func (e *StatusError) Temporary() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func CheckStatusCode(statusCode int) error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil

	case statusCode == http.StatusUnavailableForLegalReasons:
		return errors.Wrap(domain.ErrAccessDenied, "error 451: log in to view manga; contact MangaDex if error persists")

	default:
		return &StatusError{StatusCode: statusCode}
	}
}

// ExecRequest sends the request and checks the status. The caller owns the
// body of a successful response; failed responses are closed here.
func ExecRequest(client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, TransportError(err)
	}

	if err := CheckStatusCode(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return resp, nil
}

// TransportError marks a network failure. Context errors are kept as they are.
func TransportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &networkError{err: err}
}

type networkError struct {
	err error
}

func (e *networkError) Error() string { return "transport error: " + e.err.Error() }

func (e *networkError) Unwrap() error { return e.err }

func (e *networkError) Is(target error) bool { return target == domain.ErrTransport }

// Do runs fn once per attempt until it succeeds or fails permanently. Only
// network errors and temporary status codes are retried. attempts below 2
// means a single try.
func Do(attempts int, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	return retry.Do(fn,
		retry.Attempts(uint(attempts)),
		retry.Delay(time.Second*3),
		retry.MaxJitter(time.Second*1),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
	)
}

func retryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}

	var netErr *networkError
	return errors.As(err, &netErr)
}

// rateLimited blocks every request until the shared limiter admits it.
type rateLimited struct {
	next    http.RoundTripper
	limiter *rate.Limiter
}

// RateLimit allows at most n requests per period through next, across every
// client sharing the returned round tripper.
func RateLimit(next http.RoundTripper, n int, period time.Duration) http.RoundTripper {
	if next == nil {
		next = Transport
	}
	if n < 1 {
		n = 1
	}
	if period <= 0 {
		period = time.Second
	}

	return &rateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(period/time.Duration(n)), n),
	}
}

func (rt *rateLimited) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := rt.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return rt.next.RoundTrip(req)
}

func NewClient(timeout time.Duration, transport http.RoundTripper) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
