package app

import (
	"testing"
	"time"

	"github.com/riskibarqy/scoreboard-aggregator/internal/config"
	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/logging"
)

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	if _, err := NewHTTPServer(config.Config{}, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty HTTPAddr")
	}
}

func TestNewHTTPServer_UsesConfiguredTimeouts(t *testing.T) {
	cfg := config.Config{
		HTTPAddr:     ":0",
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 7 * time.Second,
		ESPNSports:   []string{"football"},
	}

	srv, err := NewHTTPServer(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	if srv.Addr != ":0" || srv.ReadTimeout != 3*time.Second || srv.WriteTimeout != 7*time.Second {
		t.Fatalf("unexpected server settings: addr=%q read=%s write=%s", srv.Addr, srv.ReadTimeout, srv.WriteTimeout)
	}
	if srv.Handler == nil {
		t.Fatalf("expected router to be installed")
	}
}
