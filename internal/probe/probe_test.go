package probe

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bjornpagen/qtiforge/internal/config"
	"github.com/bjornpagen/qtiforge/internal/contentsvc"
	"github.com/bjornpagen/qtiforge/internal/retry"
)

func testValidator(svc contentsvc.Service, batchSize int) *Validator {
	runner := retry.NewRunner(retry.Config{
		Base: 1 * time.Millisecond,
		Cap:  5 * time.Millisecond,
	}, nil)
	return New(svc, runner, config.ProbeConfig{
		BatchSize:   batchSize,
		BatchDelay:  1 * time.Millisecond,
		MaxAttempts: 2,
	}, nil)
}

func artifacts(n int) []Artifact {
	out := make([]Artifact, n)
	for i := range out {
		out[i] = Artifact{
			ID:      fmt.Sprintf("item-%03d", i),
			Content: fmt.Sprintf("<assessmentItem identifier=%q/>", fmt.Sprintf("item-%03d", i)),
		}
	}
	return out
}

func TestValidateAll_EveryInputGetsOneOutcome(t *testing.T) {
	fake := contentsvc.NewFake()
	v := testValidator(fake, 3)

	in := artifacts(10)
	out := v.ValidateAll(context.Background(), in)

	if len(out) != len(in) {
		t.Fatalf("expected %d outcomes, got %d", len(in), len(out))
	}
	passed, failed := Split(out)
	if len(passed)+len(failed) != len(in) {
		t.Fatalf("split lost outcomes: %d + %d != %d", len(passed), len(failed), len(in))
	}
	// Order-preserving relative to input.
	for i, o := range out {
		if o.Artifact.ID != in[i].ID {
			t.Fatalf("outcome %d is for %s, want %s", i, o.Artifact.ID, in[i].ID)
		}
	}
}

func TestValidateAll_RejectionRecordedNotRaised(t *testing.T) {
	fake := contentsvc.NewFake()
	fake.RejectContent = "item-004"
	v := testValidator(fake, 4)

	out := v.ValidateAll(context.Background(), artifacts(8))

	passed, failed := Split(out)
	if len(passed) != 7 || len(failed) != 1 {
		t.Fatalf("expected 7 passed / 1 failed, got %d / %d", len(passed), len(failed))
	}
	if failed[0].Artifact.ID != "item-004" {
		t.Fatalf("wrong artifact failed: %s", failed[0].Artifact.ID)
	}
	if !strings.Contains(failed[0].Reason, "content rejected") {
		t.Fatalf("failure reason missing service message: %q", failed[0].Reason)
	}
}

func TestValidateAll_LeavesNoStateBehind(t *testing.T) {
	fake := contentsvc.NewFake()
	v := testValidator(fake, 5)

	v.ValidateAll(context.Background(), artifacts(12))

	if fake.Count() != 0 {
		t.Fatalf("expected empty service after probes, %d items remain", fake.Count())
	}
}

func TestValidateAll_Idempotent(t *testing.T) {
	fake := contentsvc.NewFake()
	fake.RejectContent = "item-002"
	v := testValidator(fake, 4)

	in := artifacts(6)
	first := v.ValidateAll(context.Background(), in)
	second := v.ValidateAll(context.Background(), in)

	for i := range first {
		if first[i].Passed != second[i].Passed {
			t.Fatalf("outcome for %s changed between runs: %v then %v",
				in[i].ID, first[i].Passed, second[i].Passed)
		}
	}
}

func TestValidateAll_DeleteFailureDoesNotFailArtifact(t *testing.T) {
	fake := contentsvc.NewFake()
	fake.FailDeletes = true
	v := testValidator(fake, 4)

	out := v.ValidateAll(context.Background(), artifacts(4))

	passed, failed := Split(out)
	if len(passed) != 4 || len(failed) != 0 {
		t.Fatalf("delete failures must not fail artifacts: %d passed, %d failed",
			len(passed), len(failed))
	}
}

func TestValidateAll_UpdateFallsBackToCreate(t *testing.T) {
	fake := contentsvc.NewFake()
	v := testValidator(fake, 2)

	v.ValidateAll(context.Background(), artifacts(1))

	// Unknown identifier: update probes first, then create, then delete.
	want := []string{"update:item-000", "create:item-000", "delete:item-000"}
	if len(fake.Ops) != len(want) {
		t.Fatalf("expected ops %v, got %v", want, fake.Ops)
	}
	for i, op := range want {
		if fake.Ops[i] != op {
			t.Fatalf("op %d: expected %s, got %s", i, op, fake.Ops[i])
		}
	}
}

func TestValidateAll_EmptyInput(t *testing.T) {
	v := testValidator(contentsvc.NewFake(), 3)
	if out := v.ValidateAll(context.Background(), nil); len(out) != 0 {
		t.Fatalf("expected no outcomes for empty input, got %d", len(out))
	}
}
