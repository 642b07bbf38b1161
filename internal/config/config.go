// Package config loads pipeline settings from an optional YAML file with
// environment variable overrides. Every tunable is threaded explicitly
// through component constructors; nothing here is a mutable global.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable for a pipeline run.
type Config struct {
	// Catalog is the base URL of the catalog/roster service.
	Catalog ServiceConfig `yaml:"catalog"`

	// ContentService is the authoritative content-validation service.
	ContentService ServiceConfig `yaml:"content_service"`

	// Generation controls the variant/paraphrase fan-out.
	Generation GenerationConfig `yaml:"generation"`

	// ItemProbe batches the per-item validation probes.
	ItemProbe ProbeConfig `yaml:"item_probe"`

	// DocumentProbe batches the document-level probes during assembly.
	// Tuned independently of ItemProbe: document payloads are larger and
	// hit the same rate limits.
	DocumentProbe ProbeConfig `yaml:"document_probe"`

	// Assembly controls test document construction.
	Assembly AssemblyConfig `yaml:"assembly"`

	// OutputDir is where per-unit artifact files are written.
	OutputDir string `yaml:"output_dir"`
}

// ServiceConfig locates an external HTTP collaborator.
type ServiceConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// GenerationConfig controls the variant and paraphrase adapters.
type GenerationConfig struct {
	// VariantsPerQuestion is how many AI variants to request per source
	// question.
	VariantsPerQuestion int `yaml:"variants_per_question"`

	// MaxAttempts bounds retries for one generation call.
	MaxAttempts int `yaml:"max_attempts"`

	// MaxTokens is the token budget for one LLM response.
	MaxTokens int `yaml:"max_tokens"`

	// Temperature for variant generation. Paraphrases use the same value.
	Temperature float64 `yaml:"temperature"`
}

// ProbeConfig controls one batched probe pass.
type ProbeConfig struct {
	// BatchSize is how many probes run concurrently in one chunk.
	BatchSize int `yaml:"batch_size"`

	// BatchDelay is the sleep between chunks.
	BatchDelay time.Duration `yaml:"batch_delay"`

	// MaxAttempts bounds retries for a single probe call.
	MaxAttempts int `yaml:"max_attempts"`
}

// AssemblyConfig controls test section selection.
type AssemblyConfig struct {
	// CourseChallengeTarget is the item count for a course challenge.
	CourseChallengeTarget int `yaml:"course_challenge_target"`

	// UnitTestTarget is the item count for a unit test.
	UnitTestTarget int `yaml:"unit_test_target"`
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		Catalog: ServiceConfig{
			Timeout: 30 * time.Second,
		},
		ContentService: ServiceConfig{
			Timeout: 60 * time.Second,
		},
		Generation: GenerationConfig{
			VariantsPerQuestion: 5,
			MaxAttempts:         3,
			MaxTokens:           8192,
			Temperature:         0.7,
		},
		ItemProbe: ProbeConfig{
			BatchSize:   20,
			BatchDelay:  5 * time.Second,
			MaxAttempts: 3,
		},
		DocumentProbe: ProbeConfig{
			BatchSize:   5,
			BatchDelay:  10 * time.Second,
			MaxAttempts: 3,
		},
		Assembly: AssemblyConfig{
			CourseChallengeTarget: 30,
			UnitTestTarget:        12,
		},
		OutputDir: "out",
	}
}

// Load reads the YAML file at path (when non-empty) on top of defaults,
// then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("QTIFORGE_CATALOG_URL"); v != "" {
		cfg.Catalog.BaseURL = v
	}
	if v := os.Getenv("QTIFORGE_CATALOG_TOKEN"); v != "" {
		cfg.Catalog.Token = v
	}
	if v := os.Getenv("QTIFORGE_CONTENT_URL"); v != "" {
		cfg.ContentService.BaseURL = v
	}
	if v := os.Getenv("QTIFORGE_CONTENT_TOKEN"); v != "" {
		cfg.ContentService.Token = v
	}
	if v := os.Getenv("QTIFORGE_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("QTIFORGE_VARIANTS_PER_QUESTION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Generation.VariantsPerQuestion = n
		}
	}
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if c.Generation.VariantsPerQuestion < 1 {
		return fmt.Errorf("variants_per_question must be >= 1, got %d", c.Generation.VariantsPerQuestion)
	}
	if c.ItemProbe.BatchSize < 1 {
		return fmt.Errorf("item_probe.batch_size must be >= 1, got %d", c.ItemProbe.BatchSize)
	}
	if c.DocumentProbe.BatchSize < 1 {
		return fmt.Errorf("document_probe.batch_size must be >= 1, got %d", c.DocumentProbe.BatchSize)
	}
	if c.Assembly.CourseChallengeTarget < 1 || c.Assembly.UnitTestTarget < 1 {
		return fmt.Errorf("assembly targets must be >= 1")
	}
	return nil
}
