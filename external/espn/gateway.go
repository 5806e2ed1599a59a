package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/logging"
	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	defaultCallTimeout  = 4 * time.Second
	defaultMaxBodyBytes = 8 << 20
)

var errTransient = crerr.New("espn transient failure")

// Fetcher is the fetch-and-parse contract every provider call goes through.
// Any failure is reported as *FetchError.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string) ([]byte, error)
}

// FetchError is the single failure shape of the gateway: transport error, non-2xx status,
// timeout, open circuit or a body that is not JSON.
type FetchError struct {
	URL        string
	StatusCode int
	Cause      error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: status=%d: %v", e.URL, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

func IsFetchError(err error) bool {
	var target *FetchError
	return crerr.As(err, &target)
}

type GatewayConfig struct {
	HTTPClient    *http.Client
	CallTimeout   time.Duration
	MaxRetries    int
	RatePerSecond float64
	MaxBodyBytes  int64
	Breaker       resilience.BreakerConfig
	Logger        *logging.Logger
}

// Gateway fetches JSON documents over HTTP with timeouts, retries, a shared circuit
// breaker and de-duplication of identical in-flight URLs.
type Gateway struct {
	httpClient   *http.Client
	callTimeout  time.Duration
	maxRetries   int
	maxBodyBytes int64
	limiter      *rate.Limiter
	breaker      *resilience.Breaker
	flight       resilience.Group[fetchResult]
	logger       *logging.Logger
	backoff      func(attempt int) time.Duration
}

type fetchResult struct {
	raw    []byte
	status int
}

func NewGateway(cfg GatewayConfig) *Gateway {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	callTimeout := cfg.CallTimeout
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := int(cfg.RatePerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	return &Gateway{
		httpClient:   httpClient,
		callTimeout:  callTimeout,
		maxRetries:   max(cfg.MaxRetries, 0),
		maxBodyBytes: maxBody,
		limiter:      limiter,
		breaker:      resilience.NewBreaker(cfg.Breaker),
		logger:       logger.Named("espn.gateway"),
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * 250 * time.Millisecond
		},
	}
}

func (g *Gateway) FetchJSON(ctx context.Context, rawURL string) ([]byte, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, &FetchError{URL: rawURL, Cause: crerr.New("empty url")}
	}

	if err := g.breaker.Allow(); err != nil {
		g.logger.WarnContext(ctx, "upstream circuit breaker rejected request", "url", rawURL, "state", g.breaker.State())
		return nil, &FetchError{URL: rawURL, Cause: err}
	}

	callCtx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	res, err, shared := g.flight.Do(rawURL, func() (fetchResult, error) {
		out, reqErr := g.execute(callCtx, rawURL)
		g.breaker.Record(reqErr != nil && crerr.Is(reqErr, errTransient))
		return out, reqErr
	})
	if err != nil {
		g.logger.DebugContext(ctx, "upstream fetch failed", "url", rawURL, "shared", shared, "error", err)
		return nil, &FetchError{URL: rawURL, StatusCode: res.status, Cause: err}
	}

	if !sonic.Valid(res.raw) {
		return nil, &FetchError{URL: rawURL, StatusCode: res.status, Cause: crerr.Newf("malformed json body=%s", abbreviateBody(res.raw))}
	}

	return res.raw, nil
}

func (g *Gateway) execute(ctx context.Context, rawURL string) (fetchResult, error) {
	var lastErr error
	lastStatus := 0
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				return fetchResult{status: lastStatus}, crerr.Wrap(err, "rate limit wait")
			}
		}

		raw, status, err := g.do(ctx, rawURL)
		if err == nil {
			return fetchResult{raw: raw, status: status}, nil
		}
		lastErr = err
		lastStatus = status
		if !crerr.Is(err, errTransient) {
			return fetchResult{status: status}, err
		}

		if attempt == g.maxRetries {
			break
		}
		timer := time.NewTimer(g.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return fetchResult{status: lastStatus}, crerr.WithSecondaryError(ctx.Err(), lastErr)
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("upstream request failed")
	}
	return fetchResult{status: lastStatus}, lastErr
}

func (g *Gateway) do(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, crerr.Wrap(ctx.Err(), "send request")
		}
		return nil, 0, crerr.Mark(crerr.Wrap(err, "send request"), errTransient)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, g.maxBodyBytes)); err != nil {
		return nil, resp.StatusCode, crerr.Mark(crerr.Wrap(err, "read response body"), errTransient)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := crerr.Newf("upstream status=%d body=%s", resp.StatusCode, abbreviateBody(buf.B))
		if isRetryableStatus(resp.StatusCode) {
			statusErr = crerr.Mark(statusErr, errTransient)
		}
		return nil, resp.StatusCode, statusErr
	}

	raw := make([]byte, len(buf.B))
	copy(raw, buf.B)
	return raw, resp.StatusCode, nil
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		return text[:200] + "..."
	}
	return text
}
