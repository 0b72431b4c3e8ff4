package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"idextract/constants"
)

// Config holds all application configuration
type Config struct {
	Run RunConfig
	VLM VLMConfig
}

// RunConfig holds batch-run configuration
type RunConfig struct {
	InputDir     string
	OutputPath   string
	OutputFormat string
	MaxWorkers   int
	FaceDir      string
	DBPath       string
}

// VLMConfig holds inference-service configuration
type VLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// LoadConfig loads configuration from environment variables. CLI flags are
// applied on top by the caller and take precedence.
func LoadConfig() *Config {
	return &Config{
		Run: RunConfig{
			OutputPath:   getEnv("IDEXTRACT_OUTPUT", "identity_outputs.json"),
			OutputFormat: getEnv("IDEXTRACT_FORMAT", "json"),
			MaxWorkers:   getEnvAsInt("IDEXTRACT_WORKERS", 4),
		},
		VLM: VLMConfig{
			APIKey:      getEnv("FIREWORKS_API_KEY", ""),
			BaseURL:     getEnv("FIREWORKS_BASE_URL", "https://api.fireworks.ai/inference/v1"),
			Model:       getEnv("FIREWORKS_MODEL", "accounts/fireworks/models/qwen2p5-vl-32b-instruct"),
			Temperature: getEnvAsFloat32("VLM_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("FIREWORKS_TIMEOUT", 2*time.Minute),
		},
	}
}

// Validate validates the loaded configuration. Any failure here is fatal
// and must be reported before the first job is scheduled.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Run.InputDir) == "" {
		return NewAppError("CONFIG_ERROR", "input_dir is required", ErrConfig)
	}
	if st, err := os.Stat(c.Run.InputDir); err != nil || !st.IsDir() {
		return NewAppError("CONFIG_ERROR", "input_dir is not a readable directory", ErrConfig)
	}
	if c.Run.MaxWorkers < 1 {
		return NewAppError("CONFIG_ERROR", "max_workers must be a positive integer", ErrConfig)
	}
	format := strings.ToLower(strings.TrimSpace(c.Run.OutputFormat))
	ok := false
	for _, f := range constants.OutputFormats {
		if format == f {
			ok = true
			break
		}
	}
	if !ok {
		return NewAppError("CONFIG_ERROR", "output_format must be one of json, txt, csv, xlsx", ErrConfig)
	}
	c.Run.OutputFormat = format
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
