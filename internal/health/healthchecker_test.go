package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeChecker struct {
	name    string
	healthy atomic.Int32
}

func (f *fakeChecker) Name() string                               { return f.name }
func (f *fakeChecker) IsHealthy() bool                            { return f.healthy.Load() == 1 }
func (f *fakeChecker) Start(ctx context.Context, _ time.Duration) {}

type fakePinger struct{ fail atomic.Bool }

func (f *fakePinger) HealthPing(context.Context) error {
	if f.fail.Load() {
		return errors.New("unreachable")
	}
	return nil
}

func TestServiceHealthChecker_Transitions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := &fakeChecker{name: "store"}
	b := &fakeChecker{name: "classifier"}
	a.healthy.Store(1)
	b.healthy.Store(1)

	svc := NewServiceHealthChecker(zerolog.Nop(), a, b)
	go svc.Start(ctx, 10*time.Millisecond)

	waitTrue(t, func() bool { return svc.IsHealthy() })

	b.healthy.Store(0)
	waitTrue(t, func() bool { return !svc.IsHealthy() })
	if comps := svc.Components(); !comps["store"] || comps["classifier"] {
		t.Fatalf("unexpected component snapshot: %v", comps)
	}

	b.healthy.Store(1)
	waitTrue(t, func() bool { return svc.IsHealthy() })
}

func TestServiceHealthChecker_ReportedDoNotGate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := &fakeChecker{name: "store"}
	cls := &fakeChecker{name: "classifier"}
	st.healthy.Store(1)

	svc := NewServiceHealthChecker(zerolog.Nop(), st).WithReported(cls)
	go svc.Start(ctx, 10*time.Millisecond)

	waitTrue(t, func() bool { return svc.IsHealthy() })
	comps := svc.Components()
	if len(comps) != 2 || !comps["store"] || comps["classifier"] {
		t.Fatalf("unexpected component snapshot: %v", comps)
	}

	st.healthy.Store(0)
	waitTrue(t, func() bool { return !svc.IsHealthy() })
}

func TestPingChecker_Probe(t *testing.T) {
	p := &fakePinger{}
	c := NewPingChecker("store", p, zerolog.Nop(), 0)
	if c.IsHealthy() {
		t.Fatalf("checker should start unhealthy")
	}
	if !c.Probe(context.Background()) || !c.IsHealthy() {
		t.Fatalf("expected healthy after successful probe")
	}
	p.fail.Store(true)
	if c.Probe(context.Background()) || c.IsHealthy() {
		t.Fatalf("expected unhealthy after failed probe")
	}
}

func waitTrue(t *testing.T, pred func() bool) {
	t.Helper()
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if pred() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met before timeout")
}
