package espn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/logging"
	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/resilience"
)

func newTestGateway(srv *httptest.Server, retries int, breaker resilience.BreakerConfig) *Gateway {
	g := NewGateway(GatewayConfig{
		HTTPClient:  srv.Client(),
		CallTimeout: 2 * time.Second,
		MaxRetries:  retries,
		Breaker:     breaker,
		Logger:      logging.NewNop(),
	})
	g.backoff = func(int) time.Duration { return time.Millisecond }
	return g
}

func TestGatewayFetchJSON_ReturnsBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("accept"); got != "application/json" {
			t.Errorf("unexpected accept header: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"events":[{"id":"1"}]}`))
	}))
	defer srv.Close()

	g := newTestGateway(srv, 0, resilience.BreakerConfig{Enabled: false})
	raw, err := g.FetchJSON(context.Background(), srv.URL+"/scoreboard")
	if err != nil {
		t.Fatalf("fetch json: %v", err)
	}
	if string(raw) != `{"events":[{"id":"1"}]}` {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestGatewayFetchJSON_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := newTestGateway(srv, 1, resilience.BreakerConfig{Enabled: false})
	raw, err := g.FetchJSON(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if string(raw) != `[]` {
		t.Fatalf("unexpected body: %s", raw)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", got)
	}
}

func TestGatewayFetchJSON_CollapsesFailuresIntoFetchError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "missing", http.StatusNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"events": [`))
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			g := newTestGateway(srv, 0, resilience.BreakerConfig{Enabled: false})
			_, err := g.FetchJSON(context.Background(), srv.URL)
			if err == nil {
				t.Fatalf("expected error")
			}
			var fetchErr *FetchError
			if !crerr.As(err, &fetchErr) {
				t.Fatalf("expected *FetchError, got %T: %v", err, err)
			}
			if fetchErr.StatusCode != tc.wantStatus {
				t.Fatalf("unexpected status: got=%d want=%d", fetchErr.StatusCode, tc.wantStatus)
			}
			if !IsFetchError(err) {
				t.Fatalf("IsFetchError must report true")
			}
		})
	}
}

func TestGatewayFetchJSON_TimesOutSlowUpstream(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	g := NewGateway(GatewayConfig{
		HTTPClient:  srv.Client(),
		CallTimeout: 50 * time.Millisecond,
		Breaker:     resilience.BreakerConfig{Enabled: false},
		Logger:      logging.NewNop(),
	})

	started := time.Now()
	_, err := g.FetchJSON(context.Background(), srv.URL)
	if !IsFetchError(err) {
		t.Fatalf("expected fetch error on timeout, got %v", err)
	}
	if elapsed := time.Since(started); elapsed > time.Second {
		t.Fatalf("timeout not enforced, took %s", elapsed)
	}
}

func TestGatewayFetchJSON_OpenCircuitShortCircuits(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := newTestGateway(srv, 0, resilience.BreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 2; i++ {
		if _, err := g.FetchJSON(context.Background(), srv.URL); err == nil {
			t.Fatalf("expected failure on call %d", i)
		}
	}

	_, err := g.FetchJSON(context.Background(), srv.URL)
	if !crerr.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected breaker to stop upstream calls, got %d calls", got)
	}
}
