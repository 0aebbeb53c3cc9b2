package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Exchange struct {
		BaseURL       string `yaml:"base_url"`
		KlineInterval string `yaml:"kline_interval"`
		KlineLimit    int    `yaml:"kline_limit"`
	} `yaml:"exchange"`
	Scan struct {
		Cron        string `yaml:"cron"`
		PairDelayMs int    `yaml:"pair_delay_ms"`
	} `yaml:"scan"`
	AlertLog struct {
		Path string `yaml:"path"`
	} `yaml:"alert_log"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is fine; everything has a default.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("BINANCE_BASE_URL"); v != "" {
		cfg.Exchange.BaseURL = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Scan.Cron = v
	}
	if v := os.Getenv("PAIR_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.PairDelayMs = n
		}
	}
	if v := os.Getenv("ALERT_LOG_PATH"); v != "" {
		cfg.AlertLog.Path = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}

	// Defaults
	if cfg.Exchange.BaseURL == "" {
		cfg.Exchange.BaseURL = "https://api.binance.com"
	}
	if cfg.Exchange.KlineInterval == "" {
		cfg.Exchange.KlineInterval = "4h"
	}
	if cfg.Exchange.KlineLimit == 0 {
		cfg.Exchange.KlineLimit = 30
	}
	if cfg.Scan.Cron == "" {
		cfg.Scan.Cron = "@every 15m"
	}
	if cfg.Scan.PairDelayMs == 0 {
		cfg.Scan.PairDelayMs = 100
	}
	if cfg.AlertLog.Path == "" {
		cfg.AlertLog.Path = "data/alert_log.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/breakout_sentinel.db"
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":10000"
	}

	return cfg, nil
}

// Validate checks the fields the scan loop cannot run without. Missing
// Telegram credentials are deliberately not an error: alerting degrades to
// a logged no-op instead of halting the scanner.
func (c *Config) Validate() error {
	if c.Exchange.KlineLimit < 25 {
		return fmt.Errorf("exchange.kline_limit must be at least 25, got %d", c.Exchange.KlineLimit)
	}
	if c.Scan.PairDelayMs < 0 {
		return fmt.Errorf("scan.pair_delay_ms must not be negative")
	}
	if c.AlertLog.Path == "" {
		return fmt.Errorf("alert_log.path is required")
	}
	return nil
}
