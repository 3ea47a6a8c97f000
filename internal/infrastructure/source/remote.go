package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-standings/internal/domain/standings"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/platform/resilience"
	"github.com/valyala/fasthttp"
)

const (
	defaultRemoteTimeout = 10 * time.Second
	defaultRetryBackoff  = time.Second
	maxResponseBytes     = 6 << 20
)

var errRemoteTransient = crerr.New("results source transient failure")

type RemoteConfig struct {
	URL            string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Client         *fasthttp.Client
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// RemoteSource fetches the results document over HTTP with retries on
// transient failures, guarded by an optional circuit breaker.
type RemoteSource struct {
	url          string
	timeout      time.Duration
	maxRetries   int
	retryBackoff time.Duration
	client       *fasthttp.Client
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
}

func NewRemoteSource(cfg RemoteConfig) *RemoteSource {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	client := cfg.Client
	if client == nil {
		client = &fasthttp.Client{
			Name:                "league-standings",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBytes,
			MaxIdleConnDuration: time.Minute,
		}
	}

	return &RemoteSource{
		url:          strings.TrimSpace(cfg.URL),
		timeout:      timeout,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		client:       client,
		logger:       logger,
		breaker:      cfg.CircuitBreaker.NewBreaker(),
	}
}

func (s *RemoteSource) Name() string {
	return "http"
}

// Breaker exposes the circuit breaker so callers can observe state changes.
// It is nil when the breaker is disabled.
func (s *RemoteSource) Breaker() *resilience.CircuitBreaker {
	return s.breaker
}

func (s *RemoteSource) Load(ctx context.Context) (standings.Document, error) {
	var raw []byte
	fetch := func() error {
		var err error
		raw, err = s.fetch(ctx)
		return err
	}

	var err error
	if s.breaker != nil {
		err = s.breaker.Execute(fetch, isTransient)
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			s.logger.WarnContext(ctx, "results source circuit breaker rejected request", "state", s.breaker.State())
		}
	} else {
		err = fetch()
	}
	if err != nil {
		return standings.Document{}, err
	}

	return DecodeDocument(raw)
}

func (s *RemoteSource) fetch(ctx context.Context) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		raw, err := s.do(ctx)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !isTransient(err) {
			return nil, err
		}

		if attempt == s.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * s.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	s.logger.WarnContext(ctx, "results source request failed", "url", s.url, "attempts", s.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (s *RemoteSource) do(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := s.client.DoTimeout(req, resp, timeout); err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errRemoteTransient, err)
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	switch {
	case status >= 200 && status < 300:
		return body, nil
	case isRetryableStatus(status):
		return nil, fmt.Errorf("%w: status=%d body=%s", errRemoteTransient, status, abbreviateBody(body))
	default:
		return nil, fmt.Errorf("results source status=%d body=%s", status, abbreviateBody(body))
	}
}

func isTransient(err error) bool {
	return crerr.Is(err, errRemoteTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
