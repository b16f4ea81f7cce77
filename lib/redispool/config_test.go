package redispool

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Redis.URL != DefaultURL {
		t.Errorf("default URL = %q, want %q", cfg.Redis.URL, DefaultURL)
	}
	if cfg.Pool.MaxSize != DefaultMaxSize {
		t.Errorf("default max size = %d, want %d", cfg.Pool.MaxSize, DefaultMaxSize)
	}
	if !cfg.Pool.CheckOnRecycle {
		t.Error("default config should check connections on recycle")
	}
	if cfg.Pool.TTL != 0 {
		t.Errorf("default config should have no TTL, got %v", cfg.Pool.TTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty URL",
			modify:  func(c *Config) { c.Redis.URL = "" },
			wantErr: true,
		},
		{
			name:    "zero max size",
			modify:  func(c *Config) { c.Pool.MaxSize = 0 },
			wantErr: true,
		},
		{
			name:    "negative ttl",
			modify:  func(c *Config) { c.Pool.TTL = -time.Second },
			wantErr: true,
		},
		{
			name:    "fuzz without ttl",
			modify:  func(c *Config) { c.Pool.TTLFuzz = time.Second },
			wantErr: true,
		},
		{
			name: "fuzz with ttl",
			modify: func(c *Config) {
				c.Pool.TTL = time.Minute
				c.Pool.TTLFuzz = time.Second
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestLoadConfig_DefaultsWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nonexistent.toml")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig should not error on missing file: %v", err)
	}
	if cfg.Redis.URL != DefaultURL {
		t.Error("LoadConfig should return default config when file is missing")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "redispool.toml")

	original := DefaultConfig()
	original.Redis.URL = "redis://cache.internal:6380/2"
	original.Pool.MaxSize = 20
	original.Pool.CheckOnRecycle = false
	original.Pool.TTL = 10 * time.Minute
	original.Pool.TTLFuzz = time.Minute

	if err := SaveConfig(original, configPath); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Redis.URL != original.Redis.URL {
		t.Errorf("URL mismatch: got %q, want %q", loaded.Redis.URL, original.Redis.URL)
	}
	if loaded.Pool.MaxSize != original.Pool.MaxSize {
		t.Errorf("max size mismatch: got %d, want %d", loaded.Pool.MaxSize, original.Pool.MaxSize)
	}
	if loaded.Pool.CheckOnRecycle != original.Pool.CheckOnRecycle {
		t.Error("check_on_recycle mismatch")
	}
	if loaded.Pool.TTL != original.Pool.TTL {
		t.Errorf("ttl mismatch: got %v, want %v", loaded.Pool.TTL, original.Pool.TTL)
	}
	if loaded.Pool.TTLFuzz != original.Pool.TTLFuzz {
		t.Errorf("ttl_fuzz mismatch: got %v, want %v", loaded.Pool.TTLFuzz, original.Pool.TTLFuzz)
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.toml")

	if err := os.WriteFile(configPath, []byte("this is not [valid toml"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("LoadConfig should reject invalid TOML")
	}
}

func TestLoadConfig_PlainFields(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "redispool.toml")

	content := `
[redis]
url = "redis://example.com:6379"

[pool]
max_size = 8
check_on_recycle = false
`
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Redis.URL != "redis://example.com:6379" {
		t.Errorf("URL = %q", cfg.Redis.URL)
	}
	if cfg.Pool.MaxSize != 8 {
		t.Errorf("max_size = %d, want 8", cfg.Pool.MaxSize)
	}
	if cfg.Pool.CheckOnRecycle {
		t.Error("check_on_recycle should be false")
	}
	// Fields absent from the file keep their defaults.
	if cfg.Redis.ConnectTimeout != DefaultConnectTimeout {
		t.Errorf("connect timeout = %v, want default %v", cfg.Redis.ConnectTimeout, DefaultConnectTimeout)
	}
}

func TestConfigTTLPolicy(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TTL() != nil {
		t.Error("no ttl configured should yield a nil policy")
	}

	cfg.Pool.TTL = time.Minute
	ttl := cfg.TTL()
	if ttl == nil || ttl.mode != ttlSimple {
		t.Errorf("expected simple ttl, got %+v", ttl)
	}

	cfg.Pool.TTLFuzz = time.Second
	ttl = cfg.TTL()
	if ttl == nil || ttl.mode != ttlFuzzy {
		t.Errorf("expected fuzzy ttl, got %+v", ttl)
	}
}
