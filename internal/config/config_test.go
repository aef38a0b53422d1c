package config

import (
	"os"
	"testing"
	"time"
)

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Fatalf("restoring working directory failed: %v", err)
		}
	})
}

func validConfig() Config {
	return Config{
		HTTPPort:       "8080",
		StorageBackend: BackendMongo,
		JWTSecret:      "secret",
		SessionTTL:     time.Hour,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "mongo backend", mutate: func(c *Config) {}},
		{name: "memory backend", mutate: func(c *Config) { c.StorageBackend = BackendMemory }},
		{name: "unknown backend", mutate: func(c *Config) { c.StorageBackend = "postgres" }, wantErr: true},
		{name: "empty secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: true},
		{name: "zero session ttl", mutate: func(c *Config) { c.SessionTTL = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("STORE_TIMEOUT", "2s")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StorageBackend != BackendMemory {
		t.Errorf("Expected memory backend, got %q", cfg.StorageBackend)
	}
	if cfg.StoreTimeout != 2*time.Second {
		t.Errorf("Expected 2s store timeout, got %v", cfg.StoreTimeout)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("Expected 30m session ttl, got %v", cfg.SessionTTL)
	}
	if cfg.HTTPPort != "9090" {
		t.Errorf("Expected port 9090, got %q", cfg.HTTPPort)
	}
	if cfg.MongoDatabase != "surveyform" {
		t.Errorf("Expected default database 'surveyform', got %q", cfg.MongoDatabase)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORAGE_BACKEND", "sqlite")

	if _, err := Load(); err == nil {
		t.Error("Expected Load to reject an unknown backend")
	}
}
