package classifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/MohammedPathariya/NoteNest/internal/model"
)

// Prediction is the outcome of Auto.Predict. Category is always usable:
// either one of the candidates or model.UncategorizedName.
type Prediction struct {
	Category string
	// Ref names the classifier that produced Category; empty on fallback.
	Ref      string
	Fallback bool
	// Err wraps model.ErrClassificationUnavailable when Fallback is set.
	Err error
}

// Auto bounds a Classifier in time and absorbs its failures.
type Auto struct {
	c           Classifier
	timeout     time.Duration
	maxAttempts int
	log         zerolog.Logger
}

func NewAuto(c Classifier, timeout time.Duration, maxAttempts int, log zerolog.Logger) *Auto {
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &Auto{c: c, timeout: timeout, maxAttempts: maxAttempts, log: log}
}

func (a *Auto) Classifier() Classifier { return a.c }

// Predict never blocks longer than the configured timeout, even when the
// underlying classifier ignores its context.
func (a *Auto) Predict(ctx context.Context, text string, candidates []string) Prediction {
	ref := a.c.Ref()
	start := time.Now()
	defer func() { predictionSeconds.WithLabelValues(ref).Observe(time.Since(start).Seconds()) }()

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	type result struct {
		raw string
		err error
	}
	done := make(chan result, 1)
	go func() {
		raw, err := a.classifyWithRetry(ctx, text, candidates)
		done <- result{raw: raw, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		res = result{err: ctx.Err()}
	}

	if res.err != nil {
		outcome := "error"
		switch {
		case errors.Is(res.err, context.DeadlineExceeded):
			outcome = "timeout"
		case errors.Is(res.err, ErrNoMatch):
			outcome = "no_match"
		}
		return a.fallback(outcome, res.err)
	}

	name, ok := Match(res.raw, candidates)
	if !ok {
		return a.fallback("no_match", fmt.Errorf("%w: %q not among candidates", ErrNoMatch, res.raw))
	}
	predictionsTotal.WithLabelValues(ref, "matched").Inc()
	return Prediction{Category: name, Ref: ref}
}

func (a *Auto) classifyWithRetry(ctx context.Context, text string, candidates []string) (string, error) {
	var raw string
	op := func() error {
		out, err := a.c.Classify(ctx, text, candidates)
		if err != nil {
			if errors.Is(err, ErrNoMatch) {
				return backoff.Permanent(err)
			}
			return err
		}
		raw = out
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.Multiplier = 2
	b.MaxInterval = time.Second
	b.MaxElapsedTime = a.timeout
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(a.maxAttempts-1)), ctx)

	if err := backoff.Retry(op, policy); err != nil {
		return "", err
	}
	return raw, nil
}

func (a *Auto) fallback(outcome string, cause error) Prediction {
	ref := a.c.Ref()
	predictionsTotal.WithLabelValues(ref, outcome).Inc()
	a.log.Warn().Err(cause).Str("classifier", ref).Str("outcome", outcome).
		Msg("classification unavailable; using Uncategorized")
	return Prediction{
		Category: model.UncategorizedName,
		Fallback: true,
		Err:      fmt.Errorf("%w: %v", model.ErrClassificationUnavailable, cause),
	}
}
