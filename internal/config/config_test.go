package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Generation.VariantsPerQuestion != 5 {
		t.Errorf("expected 5 variants per question, got %d", cfg.Generation.VariantsPerQuestion)
	}
	if cfg.Assembly.CourseChallengeTarget != 30 {
		t.Errorf("expected course challenge target 30, got %d", cfg.Assembly.CourseChallengeTarget)
	}
	if cfg.Assembly.UnitTestTarget != 12 {
		t.Errorf("expected unit test target 12, got %d", cfg.Assembly.UnitTestTarget)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qtiforge.yaml")
	data := `
generation:
  variants_per_question: 3
item_probe:
  batch_size: 10
  batch_delay: 2s
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Generation.VariantsPerQuestion != 3 {
		t.Errorf("expected 3, got %d", cfg.Generation.VariantsPerQuestion)
	}
	if cfg.ItemProbe.BatchSize != 10 {
		t.Errorf("expected batch size 10, got %d", cfg.ItemProbe.BatchSize)
	}
	if cfg.ItemProbe.BatchDelay != 2*time.Second {
		t.Errorf("expected 2s delay, got %s", cfg.ItemProbe.BatchDelay)
	}
	// Untouched sections keep defaults.
	if cfg.DocumentProbe.BatchSize != 5 {
		t.Errorf("expected document batch size 5, got %d", cfg.DocumentProbe.BatchSize)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("QTIFORGE_VARIANTS_PER_QUESTION", "7")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Generation.VariantsPerQuestion != 7 {
		t.Errorf("expected 7, got %d", cfg.Generation.VariantsPerQuestion)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("generation:\n  variants_per_question: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for zero variants")
	}
}
