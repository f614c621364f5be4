package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the loaded config for required fields and safe values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return errors.New("server.addr must be set")
	}

	if strings.TrimSpace(cfg.Model.BundleDir) == "" {
		return errors.New("model.bundle_dir must be set")
	}
	if cfg.Model.SeqLen <= 0 {
		return fmt.Errorf("model.seq_len must be positive, got %d", cfg.Model.SeqLen)
	}

	if cfg.Cache.URI != "" {
		if strings.TrimSpace(cfg.Cache.Database) == "" {
			return errors.New("cache.database must be set when cache.uri is configured")
		}
		if strings.TrimSpace(cfg.Cache.Collection) == "" {
			return errors.New("cache.collection must be set when cache.uri is configured")
		}
		if cfg.Cache.TTLHours <= 0 {
			return fmt.Errorf("cache.ttl_hours must be positive, got %d", cfg.Cache.TTLHours)
		}
	}

	if cfg.Sources.TimeoutSeconds <= 0 {
		return fmt.Errorf("sources.timeout_seconds must be positive, got %d", cfg.Sources.TimeoutSeconds)
	}

	return nil
}
