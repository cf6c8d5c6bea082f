package store

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/MohammedPathariya/NoteNest/internal/health"
	"github.com/MohammedPathariya/NoteNest/internal/model"
)

// NewHealthChecker returns a checker for st. Stores that implement
// health.HealthPinger are pinged directly; others are probed with a
// category lookup that is expected to miss.
func NewHealthChecker(st Store, log zerolog.Logger, probeTimeout time.Duration) *health.PingChecker {
	var target health.HealthPinger = lookupPinger{st: st}
	if p, ok := st.(health.HealthPinger); ok {
		target = p
	}
	return health.NewPingChecker("store", target, log, probeTimeout)
}

type lookupPinger struct{ st Store }

func (l lookupPinger) HealthPing(ctx context.Context) error {
	_, err := l.st.Categories().GetByName(ctx, "__health_check__", "__health_check__")
	if err == nil || errors.Is(err, model.ErrNotFound) {
		return nil
	}
	return err
}
