package fireworks

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the Fireworks client.
type Config struct {
	APIKey      string        // if empty, falls back to env FIREWORKS_API_KEY
	BaseURL     string        // default https://api.fireworks.ai/inference/v1
	Model       string        // e.g., "accounts/fireworks/models/qwen2p5-vl-32b-instruct"
	Temperature float32       // 0..2
	Timeout     time.Duration // http client timeout
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("FIREWORKS_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.fireworks.ai/inference/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "accounts/fireworks/models/qwen2p5-vl-32b-instruct"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}
