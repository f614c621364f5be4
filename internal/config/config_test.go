package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":8000" {
		t.Fatalf("expected default addr :8000, got %q", cfg.Server.Addr)
	}
	if cfg.Model.SeqLen != 256 {
		t.Fatalf("expected default seq_len 256, got %d", cfg.Model.SeqLen)
	}
	if cfg.Cache.TTLHours != 24 {
		t.Fatalf("expected default ttl_hours 24, got %d", cfg.Cache.TTLHours)
	}
}

func TestLoadAppliesFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truthguard.yaml")
	content := `
server:
  addr: ":9000"
model:
  bundle_dir: /models/fnd
  seq_len: 512
cache:
  uri: mongodb://localhost:27017
sources:
  timeout_seconds: 3
lexicon:
  sensational: ["BREAKING"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Fatalf("addr not applied: %q", cfg.Server.Addr)
	}
	if cfg.Model.BundleDir != "/models/fnd" || cfg.Model.SeqLen != 512 {
		t.Fatalf("model config not applied: %+v", cfg.Model)
	}
	// Defaults still fill the gaps.
	if cfg.Cache.Database != "truthguard" || cfg.Cache.Collection != "detections" {
		t.Fatalf("cache defaults missing: %+v", cfg.Cache)
	}
	if len(cfg.Lexicon.Sensational) != 1 || cfg.Lexicon.Sensational[0] != "BREAKING" {
		t.Fatalf("lexicon not applied: %+v", cfg.Lexicon)
	}
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		name string
		cfg  *Config
		want string
	}{
		{
			name: "missing server addr",
			cfg:  &Config{},
			want: "server.addr",
		},
		{
			name: "missing bundle dir",
			cfg: &Config{
				Server: ServerConfig{Addr: ":8000"},
				Model:  ModelConfig{SeqLen: 256},
			},
			want: "bundle_dir",
		},
		{
			name: "bad seq len",
			cfg: &Config{
				Server: ServerConfig{Addr: ":8000"},
				Model:  ModelConfig{BundleDir: "./m", SeqLen: 0},
			},
			want: "seq_len",
		},
		{
			name: "cache uri without database",
			cfg: &Config{
				Server:  ServerConfig{Addr: ":8000"},
				Model:   ModelConfig{BundleDir: "./m", SeqLen: 256},
				Cache:   CacheConfig{URI: "mongodb://localhost", TTLHours: 24, Collection: "detections"},
				Sources: SourcesConfig{TimeoutSeconds: 5},
			},
			want: "cache.database",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.cfg)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestValidateOK(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}
