package noteservice

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/MohammedPathariya/NoteNest/internal/config"
	"github.com/MohammedPathariya/NoteNest/internal/health"
)

type pingFunc func(context.Context) error

func (f pingFunc) HealthPing(ctx context.Context) error { return f(ctx) }

func TestStartupHealthTimeout(t *testing.T) {
	if got := startupHealthTimeout(5); got != 30*time.Second {
		t.Fatalf("short interval: got %s", got)
	}
	if got := startupHealthTimeout(45); got != 90*time.Second {
		t.Fatalf("long interval: got %s", got)
	}
}

func TestWaitUntilHealthy_ReturnsOnceHealthy(t *testing.T) {
	log := zerolog.New(io.Discard)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checker := health.NewPingChecker("store", pingFunc(func(context.Context) error { return nil }), log, time.Second)
	checker.Probe(ctx)
	svc := health.NewServiceHealthChecker(log, checker)
	go svc.Start(ctx, 50*time.Millisecond)

	if err := waitUntilHealthy(ctx, config.NewForTesting(), svc); err != nil {
		t.Fatalf("waitUntilHealthy: %v", err)
	}
}

func TestWaitUntilHealthy_StopsOnCancel(t *testing.T) {
	log := zerolog.New(io.Discard)
	checker := health.NewPingChecker("store", pingFunc(func(context.Context) error { return errors.New("down") }), log, time.Second)
	svc := health.NewServiceHealthChecker(log, checker)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	if err := waitUntilHealthy(ctx, config.NewForTesting(), svc); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline, got %v", err)
	}
}

func TestNewHTTPServer_UsesConfiguredPort(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.HTTPPort = 9123
	srv := newHTTPServer(context.Background(), cfg, nil)
	if srv.Addr != ":9123" {
		t.Fatalf("addr = %q", srv.Addr)
	}
}
