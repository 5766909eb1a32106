package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("default port %q", cfg.Server.Port)
	}
	if cfg.ImgBB.APIKey == "" {
		t.Errorf("imgbb key must fall back to the embedded default")
	}
	if cfg.SerpApi.APIKey == "" {
		t.Errorf("serpapi key must fall back to the embedded default")
	}
	if cfg.History.Dir != "scan_history" {
		t.Errorf("default history dir %q", cfg.History.Dir)
	}
	if cfg.Storage.MaxFileSize != 10*1024*1024 {
		t.Errorf("default max file size %d", cfg.Storage.MaxFileSize)
	}
	if cfg.Redis.CacheTTL != 24*time.Hour {
		t.Errorf("default cache ttl %v", cfg.Redis.CacheTTL)
	}
	// Optional services stay off until configured.
	if cfg.Redis.Addr != "" || cfg.RabbitMQ.URL != "" || cfg.Supabase.URL != "" {
		t.Errorf("optional services should default to unconfigured")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("IMGBB_API_KEY", "real-key")
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("CACHE_TTL", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port override %q", cfg.Server.Port)
	}
	if cfg.ImgBB.APIKey != "real-key" {
		t.Errorf("imgbb key override %q", cfg.ImgBB.APIKey)
	}
	if cfg.Storage.MaxFileSize != 1024 {
		t.Errorf("max file size override %d", cfg.Storage.MaxFileSize)
	}
	if cfg.Redis.CacheTTL != time.Hour {
		t.Errorf("cache ttl override %v", cfg.Redis.CacheTTL)
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE", "not-a-number")
	t.Setenv("REDIS_DB", "also-not")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.MaxFileSize != 10*1024*1024 {
		t.Errorf("expected fallback max file size, got %d", cfg.Storage.MaxFileSize)
	}
	if cfg.Redis.DB != 0 {
		t.Errorf("expected fallback redis db, got %d", cfg.Redis.DB)
	}
}
