// Package httpsession implements C1: a single cookie-bearing HTTP
// client shared by every fetch the engine makes, with a jittered
// capped-exponential retry policy and an outer read-timeout recovery
// layer.
package httpsession

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lbmaian/chatdl/internal/chatdl/cookies"
	"github.com/lbmaian/chatdl/internal/log"
	"github.com/lbmaian/chatdl/internal/metrics"
	"github.com/lbmaian/chatdl/internal/platform/httpx"
	"github.com/lbmaian/chatdl/internal/resilience"
)

// retryableStatus is the status-code set that triggers a retry, per
// the session's retry policy.
var retryableStatus = map[int]bool{
	413: true, 429: true, 500: true, 502: true, 503: true, 504: true,
}

const (
	// MaxRetries bounds both the inner (status/network) retry layer
	// and the outer (read-timeout) retry layer.
	MaxRetries = 10
	// PerRequestTimeout is the client-level timeout applied to every
	// attempt, inner or outer.
	PerRequestTimeout = 10 * time.Second
)

// Session is the engine's single HTTP client instance: one cookie jar,
// one connection pool, shared across every request the engine issues.
// It is not safe to share across concurrent invocations targeting
// different URLs; callers wanting concurrency instantiate one Session
// per URL.
type Session struct {
	client    *http.Client
	jar       *cookies.Jar
	SessionID string
	log       zerolog.Logger

	maxRetries     int
	backoffInitial time.Duration
	backoffMax     time.Duration

	metrics *metrics.Recorder
}

// SetMetrics attaches a Recorder so every request/retry is counted; a
// nil Session metrics field (the default) is a silent no-op.
func (s *Session) SetMetrics(r *metrics.Recorder) { s.metrics = r }

// New builds a Session around the given cookie jar (see the cookies
// package for loading one from a netscape-format file, or
// cookies.New() for an empty jar) and a hardened transport, using the
// package's default timeout/retry/backoff policy.
func New(jar *cookies.Jar) (*Session, error) {
	return NewWithTunables(jar, PerRequestTimeout, MaxRetries, resilience.DefaultBackoffInitial, resilience.DefaultBackoffMax)
}

// NewWithTunables is New with an internal/config-sourced timeout/retry
// cap/backoff range instead of the package defaults; a zero value for
// any parameter falls back to the corresponding default.
func NewWithTunables(jar *cookies.Jar, timeout time.Duration, maxRetries int, backoffInitial, backoffMax time.Duration) (*Session, error) {
	if jar == nil {
		var err error
		jar, err = cookies.New()
		if err != nil {
			return nil, err
		}
	}
	if timeout == 0 {
		timeout = PerRequestTimeout
	}
	if maxRetries == 0 {
		maxRetries = MaxRetries
	}
	if backoffInitial == 0 {
		backoffInitial = resilience.DefaultBackoffInitial
	}
	if backoffMax == 0 {
		backoffMax = resilience.DefaultBackoffMax
	}

	client := httpx.NewClient(timeout)
	client.Jar = jar

	return &Session{
		client:         client,
		jar:            jar,
		SessionID:      uuid.New().String(),
		log:            log.WithComponent("httpsession"),
		maxRetries:     maxRetries,
		backoffInitial: backoffInitial,
		backoffMax:     backoffMax,
	}, nil
}

// Jar exposes the underlying cookie jar so the caller can persist it
// with --save_cookies after the run completes.
func (s *Session) Jar() *cookies.Jar { return s.jar }

// Do executes req, applying the inner retry policy (status codes and
// network errors, jittered capped-exponential backoff) and the outer
// read-timeout recovery layer on top.
//
// req.Body, if any, must be re-playable: build it with
// http.NewRequestWithContext and a bytes.Reader so the standard
// library populates req.GetBody automatically.
func (s *Session) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return s.doOuter(ctx, req, 0)
}

func (s *Session) doOuter(ctx context.Context, req *http.Request, outerAttempt int) (*http.Response, error) {
	resp, err := s.doInner(ctx, req)
	if err == nil {
		// Read the body here so a timeout after the headers arrived
		// reaches the outer retry below.
		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			resp, err = nil, fmt.Errorf("reading response body: %w", readErr)
		} else {
			resp.Body = io.NopCloser(bytes.NewReader(data))
		}
	}
	if err != nil && isReadTimeout(err) && outerAttempt < s.maxRetries {
		if s.metrics != nil {
			s.metrics.IncRetry("read_timeout")
		}
		s.log.Warn().
			Int("attempt", outerAttempt+1).
			Str("url", req.URL.String()).
			Err(err).
			Msg("outer retry: read timed out after headers received")
		clone, cloneErr := cloneRequest(req)
		if cloneErr != nil {
			return nil, fmt.Errorf("outer retry: cloning request: %w", cloneErr)
		}
		return s.doOuter(ctx, clone, outerAttempt+1)
	}
	return resp, err
}

func (s *Session) doInner(ctx context.Context, req *http.Request) (*http.Response, error) {
	policy := s.newInnerBackOff()

	return backoff.Retry(ctx, func() (*http.Response, error) {
		attemptReq, err := cloneRequest(req)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		resp, err := s.client.Do(attemptReq)
		if s.metrics != nil {
			s.metrics.IncRequest(attemptReq.URL.Host)
		}
		if err != nil {
			if isRetryableNetErr(err) {
				if s.metrics != nil {
					s.metrics.IncRetry("network")
				}
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		if retryableStatus[resp.StatusCode] {
			if s.metrics != nil {
				s.metrics.IncRetry("retryable_status")
			}
			resp.Body.Close()
			return nil, fmt.Errorf("retryable status %d", resp.StatusCode)
		}
		return resp, nil
	}, backoff.WithBackOff(policy), backoff.WithMaxTries(s.maxRetries+1))
}

func (s *Session) newInnerBackOff() *resilience.JitteredBackOff {
	return &resilience.JitteredBackOff{Initial: s.backoffInitial, MaxInterval: s.backoffMax}
}

// cloneRequest rebuilds a request for a retry attempt, rewinding the
// body via GetBody when present.
func cloneRequest(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("rewinding request body: %w", err)
		}
		clone.Body = body
	}
	return clone, nil
}

func isRetryableNetErr(err error) bool {
	if ne, ok := err.(net.Error); ok {
		return ne.Timeout()
	}
	msg := err.Error()
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "broken pipe")
}

// isReadTimeout detects the known defect: a 200-status header was
// already received but the body read then timed out, which some
// transports surface as a non-retriable error wrapping "Client.Timeout
// exceeded while reading body" rather than the ordinary
// connection-timeout shape.
func isReadTimeout(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "Client.Timeout exceeded while reading body")
}
