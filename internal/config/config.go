// Package config holds rigwatch configuration: rule thresholds, the
// chat-completion service, the classifier artifact and export targets.
// Config is read from a YAML file with environment overrides applied on top.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all rigwatch configuration.
type Config struct {
	// Rule thresholds (domain calibration, SME-owned)
	Thresholds ThresholdsConfig `yaml:"thresholds"`

	// Chat-completion narrative service
	LLM LLMConfig `yaml:"llm"`

	// Pre-trained screen-overload classifier
	Classifier ClassifierConfig `yaml:"classifier"`

	// Export settings
	Export ExportConfig `yaml:"export"`
}

// ThresholdsConfig calibrates the anomaly rule battery.
type ThresholdsConfig struct {
	ROPVolatility    float64 `yaml:"rop_volatility"`    // ratio, 0.5 = 50%
	VolatilityWindow string  `yaml:"volatility_window"` // Go duration string
	HookLoad         float64 `yaml:"hook_load"`         // klbs
	ROPFloor         float64 `yaml:"rop_floor"`         // ft/hr
	LateralVibe      float64 `yaml:"lateral_vibe"`      // g
}

// LLMConfig configures the narrative generator.
type LLMConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
}

// ClassifierConfig locates the pre-trained model artifact.
type ClassifierConfig struct {
	ModelPath string `yaml:"model_path"`
}

// ExportConfig configures artifact output.
type ExportConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// Default returns the rig-standard configuration.
func Default() *Config {
	return &Config{
		Thresholds: ThresholdsConfig{
			ROPVolatility:    0.5,
			VolatilityWindow: "10m",
			HookLoad:         60,
			ROPFloor:         1,
			LateralVibe:      25,
		},
		LLM: LLMConfig{
			Model:   "gemini-2.0-flash",
			Timeout: "2m",
		},
		Classifier: ClassifierConfig{
			ModelPath: "model.gob",
		},
		Export: ExportConfig{
			OutputDir: ".",
		},
	}
}

// Load reads configuration from path, layered over defaults, then applies
// environment overrides. A missing file is not an error: defaults plus
// environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets the environment supply or replace secrets and
// paths. GEMINI_API_KEY wins over GOOGLE_API_KEY, matching the SDK's own
// precedence.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("RIGWATCH_MODEL_PATH"); v != "" {
		c.Classifier.ModelPath = v
	}
	if v := os.Getenv("RIGWATCH_OUTPUT_DIR"); v != "" {
		c.Export.OutputDir = v
	}
}

// VolatilityWindow parses the configured window, falling back to 10 minutes
// on a malformed duration.
func (c *Config) VolatilityWindow() time.Duration {
	d, err := time.ParseDuration(c.Thresholds.VolatilityWindow)
	if err != nil || d <= 0 {
		return 10 * time.Minute
	}
	return d
}

// LLMTimeout parses the narrative call timeout, falling back to 2 minutes.
func (c *Config) LLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}
