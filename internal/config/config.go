package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds TruthGuard configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Model   ModelConfig   `yaml:"model"`
	Cache   CacheConfig   `yaml:"cache"`
	Sources SourcesConfig `yaml:"sources"`
	Lexicon LexiconConfig `yaml:"lexicon"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"` // HTTP listen address, e.g. ":8000"
}

type ModelConfig struct {
	BundleDir string `yaml:"bundle_dir"` // directory with model.onnx, label_map.json, tokenizer/vocab.txt
	SeqLen    int    `yaml:"seq_len"`    // model maximum sequence length
}

type CacheConfig struct {
	URI        string `yaml:"uri"` // mongodb connection string; empty disables caching
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
	TTLHours   int    `yaml:"ttl_hours"`
}

type SourcesConfig struct {
	TimeoutSeconds int  `yaml:"timeout_seconds"` // per-lookup deadline
	ScrapeEnabled  bool `yaml:"scrape_enabled"`  // enable the live HTML scraping provider
}

type LexiconConfig struct {
	Sensational []string `yaml:"sensational"`
	Emotional   []string `yaml:"emotional"`
}

// Load reads configuration from a YAML file.
// If the file doesn't exist, it returns a default config and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
	if cfg.Model.BundleDir == "" {
		cfg.Model.BundleDir = "./fake-news-detector"
	}
	if cfg.Model.SeqLen <= 0 {
		cfg.Model.SeqLen = 256
	}
	if cfg.Cache.Database == "" {
		cfg.Cache.Database = "truthguard"
	}
	if cfg.Cache.Collection == "" {
		cfg.Cache.Collection = "detections"
	}
	if cfg.Cache.TTLHours <= 0 {
		cfg.Cache.TTLHours = 24
	}
	if cfg.Sources.TimeoutSeconds <= 0 {
		cfg.Sources.TimeoutSeconds = 5
	}
}
