package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/MohammedPathariya/NoteNest/internal/classifier"
	"github.com/MohammedPathariya/NoteNest/internal/classifier/ollama"
	"github.com/MohammedPathariya/NoteNest/internal/config"
)

// NewClassifier builds the classifier named by cfg.Classifier wrapped in
// the bounded Auto runner. For ollama a warmup ping runs in the background
// so a missing model is logged without delaying startup.
func NewClassifier(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*classifier.Auto, error) {
	var c classifier.Classifier
	switch cfg.Classifier {
	case "", "keyword":
		c = classifier.NewKeyword()
	case "ollama":
		oc := ollama.New(cfg.OllamaURL, cfg.ClassifierModel)
		c = oc
		go func() {
			warmupCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.BootstrapTimeoutSeconds)*time.Second)
			defer cancel()
			if err := oc.HealthPing(warmupCtx); err != nil {
				log.Warn().Err(err).Str("url", cfg.OllamaURL).Str("model", cfg.ClassifierModel).
					Msg("classifier warmup failed")
			} else {
				log.Debug().Str("model", cfg.ClassifierModel).Msg("classifier warmup completed")
			}
		}()
	default:
		return nil, fmt.Errorf("unknown CLASSIFIER: %s", cfg.Classifier)
	}

	timeout := time.Duration(cfg.ClassifierTimeoutMs) * time.Millisecond
	return classifier.NewAuto(c, timeout, cfg.ClassifierMaxAttempts, log), nil
}
