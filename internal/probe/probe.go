// Package probe implements batched idempotent validation against the
// content service. An artifact is "probed" by writing it under its own
// identifier (update, falling back to create when the identifier is
// unknown) and immediately deleting it again, so a validation pass leaves
// no state behind in the service.
package probe

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bjornpagen/qtiforge/internal/config"
	"github.com/bjornpagen/qtiforge/internal/contentsvc"
	"github.com/bjornpagen/qtiforge/internal/retry"
)

// Artifact is one piece of content to probe.
type Artifact struct {
	ID      string
	Content string
}

// Outcome is the pass/fail verdict for exactly one artifact.
type Outcome struct {
	Artifact Artifact
	Passed   bool

	// Reason carries the service's rejection on failure.
	Reason string
}

// Validator probes artifacts in fixed-size chunks: all probes within a
// chunk run concurrently, chunks run strictly one after another with a
// configured delay between them. The delay is the system's only
// intentional serialization point, there to respect the service's rate
// limits.
type Validator struct {
	svc    contentsvc.Service
	runner *retry.Runner
	cfg    config.ProbeConfig
	log    *zap.Logger
}

// New creates a Validator.
func New(svc contentsvc.Service, runner *retry.Runner, cfg config.ProbeConfig, log *zap.Logger) *Validator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{svc: svc, runner: runner, cfg: cfg, log: log}
}

// ValidateAll probes every artifact and returns one outcome per input, in
// input order. A failed probe is recorded, never raised: the batch always
// completes and len(outcomes) == len(artifacts).
func (v *Validator) ValidateAll(ctx context.Context, artifacts []Artifact) []Outcome {
	outcomes := make([]Outcome, len(artifacts))

	for start := 0; start < len(artifacts); start += v.cfg.BatchSize {
		end := start + v.cfg.BatchSize
		if end > len(artifacts) {
			end = len(artifacts)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			idx := i
			g.Go(func() error {
				outcomes[idx] = v.probe(gctx, artifacts[idx])
				return nil
			})
		}
		// Workers never return errors; the join is an all-complete barrier.
		_ = g.Wait()

		v.log.Info("probe chunk complete",
			zap.Int("from", start),
			zap.Int("to", end),
			zap.Int("total", len(artifacts)))

		if end < len(artifacts) && v.cfg.BatchDelay > 0 {
			select {
			case <-ctx.Done():
				// Mark the remaining artifacts as failed rather than
				// dropping them: every input gets an outcome.
				for i := end; i < len(artifacts); i++ {
					outcomes[i] = Outcome{
						Artifact: artifacts[i],
						Passed:   false,
						Reason:   ctx.Err().Error(),
					}
				}
				return outcomes
			case <-time.After(v.cfg.BatchDelay):
			}
		}
	}

	return outcomes
}

// probe runs the upsert-then-delete round trip for one artifact.
func (v *Validator) probe(ctx context.Context, a Artifact) Outcome {
	_, err := retry.Do(ctx, v.runner, "probe "+a.ID, v.cfg.MaxAttempts,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, v.upsert(ctx, a)
		})
	if err != nil {
		v.log.Debug("probe failed",
			zap.String("artifact", a.ID),
			zap.Error(err))
		return Outcome{Artifact: a, Passed: false, Reason: err.Error()}
	}

	// Cleanup is best-effort: a failed delete is a warning, not a
	// validation failure.
	if err := v.svc.Delete(ctx, a.ID); err != nil {
		v.log.Warn("probe cleanup failed, artifact left registered",
			zap.String("artifact", a.ID),
			zap.Error(err))
	}

	return Outcome{Artifact: a, Passed: true}
}

// upsert tries an update by identifier and falls back to create when the
// service has never seen the identifier.
func (v *Validator) upsert(ctx context.Context, a Artifact) error {
	err := v.svc.Update(ctx, a.ID, a.Content)
	if contentsvc.IsNotFound(err) {
		err = v.svc.Create(ctx, a.ID, a.Content)
	}
	return err
}

// Split partitions outcomes into passed and failed, preserving order.
func Split(outcomes []Outcome) (passed, failed []Outcome) {
	for _, o := range outcomes {
		if o.Passed {
			passed = append(passed, o)
		} else {
			failed = append(failed, o)
		}
	}
	return passed, failed
}
