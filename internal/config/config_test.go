package config

import "testing"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MINIO_ACCESS_KEY_ID", "test-access")
	t.Setenv("MINIO_SECRET_ACCESS_KEY", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("api port: got %d want 8080", cfg.API.Port)
	}
	if cfg.Export.MaxRetry != 5 {
		t.Errorf("export max retry: got %d want 5", cfg.Export.MaxRetry)
	}
	if cfg.Export.InternalAPIBaseURL != "http://api:8080" {
		t.Errorf("internal api base url: got %q", cfg.Export.InternalAPIBaseURL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EXPORT_MAX_RETRY", "2")
	t.Setenv("INTERNAL_API_BASE_URL", "http://localhost:9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Export.MaxRetry != 2 {
		t.Errorf("export max retry: got %d want 2", cfg.Export.MaxRetry)
	}
	if cfg.Export.InternalAPIBaseURL != "http://localhost:9999" {
		t.Errorf("internal api base url: got %q", cfg.Export.InternalAPIBaseURL)
	}
}
