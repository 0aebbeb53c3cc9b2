package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Exchange.BaseURL != "https://api.binance.com" {
		t.Errorf("unexpected default base URL: %s", cfg.Exchange.BaseURL)
	}
	if cfg.Exchange.KlineInterval != "4h" || cfg.Exchange.KlineLimit != 30 {
		t.Errorf("unexpected kline defaults: %s x%d", cfg.Exchange.KlineInterval, cfg.Exchange.KlineLimit)
	}
	if cfg.Scan.Cron != "@every 15m" {
		t.Errorf("unexpected scan cron default: %s", cfg.Scan.Cron)
	}
	if cfg.Server.ListenAddr != ":10000" {
		t.Errorf("unexpected listen addr default: %s", cfg.Server.ListenAddr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
telegram:
  bot_token: file-token
  chat_id: "123"
scan:
  cron: "@every 5m"
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TELEGRAM_TOKEN", "env-token")
	t.Setenv("LISTEN_ADDR", ":8080")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Telegram.BotToken != "env-token" {
		t.Errorf("env should override file, got %s", cfg.Telegram.BotToken)
	}
	if cfg.Telegram.ChatID != "123" {
		t.Errorf("file value should survive, got %s", cfg.Telegram.ChatID)
	}
	if cfg.Scan.Cron != "@every 5m" {
		t.Errorf("file cron should survive, got %s", cfg.Scan.Cron)
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("env listen addr should apply, got %s", cfg.Server.ListenAddr)
	}
}

func TestValidate_MissingTelegramIsFine(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Telegram.BotToken = ""
	cfg.Telegram.ChatID = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("missing telegram credentials must not fail validation, got %v", err)
	}
}

func TestValidate_KlineLimitTooSmall(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Exchange.KlineLimit = 20
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for kline limit below 25")
	}
}
