package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	data := []byte("api_url: https://api.example.com/\npath: " + filepath.Join(dir, "db") + "\ntimeout: 5s\n")
	if err := os.WriteFile(filepath.Join(dir, ".jquest.yaml"), data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("JQUEST_CONFIG_PATH", dir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIURL() != "https://api.example.com" {
		t.Fatalf("api url = %q", cfg.APIURL())
	}
	if cfg.BasePath() != filepath.Join(dir, "db") {
		t.Fatalf("path = %q", cfg.BasePath())
	}
	if cfg.Timeout() != 5*time.Second {
		t.Fatalf("timeout = %v", cfg.Timeout())
	}

	t.Setenv("JQUEST_API_URL", "http://override:4000")
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIURL() != "http://override:4000" {
		t.Fatalf("env override ignored: %q", cfg.APIURL())
	}
}

func TestWithAPIURL(t *testing.T) {
	cfg := StaticConfig("/tmp/x", DefaultAPIURL, 0)
	if WithAPIURL(cfg, "") != cfg {
		t.Fatalf("empty override should keep config")
	}
	got := WithAPIURL(cfg, " https://x.dev/ ")
	if got.APIURL() != "https://x.dev" || got.BasePath() != "/tmp/x" || got.Timeout() != DefaultTimeout {
		t.Fatalf("unexpected config %+v", got)
	}
}
