// Package config loads attmon settings from a TOML file and the
// environment.
package config

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/rigado/attmon"
	"github.com/rigado/attmon/att"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputCBOR = "cbor"
)

// Environment overrides, applied after the file.
const (
	EnvLogLevel   = "ATTMON_LOG_LEVEL"
	EnvStorageDir = "ATTMON_STORAGE_DIR"
	EnvOutput     = "ATTMON_OUTPUT"
)

type SigningKey struct {
	Address string `toml:"address"`
	CSRK    string `toml:"csrk"`
}

type Config struct {
	StorageDir      string
	MaxPendingReads int
	Output          string
	LogLevel        string
	MetricsAddr     string
	SigningKeys     []SigningKey
}

type fileConfig struct {
	StorageDir      string       `toml:"storage_dir"`
	MaxPendingReads int          `toml:"max_pending_reads"`
	Output          string       `toml:"output"`
	LogLevel        string       `toml:"log_level"`
	MetricsAddr     string       `toml:"metrics_addr"`
	SigningKeys     []SigningKey `toml:"signing_keys"`
}

func Default() Config {
	return Config{
		StorageDir:      "/var/lib/bluetooth",
		MaxPendingReads: att.DefaultMaxPendingReads,
		Output:          OutputText,
		LogLevel:        "info",
	}
}

// Load reads path over the defaults, then applies the environment. An
// empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		var raw fileConfig
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return Config{}, errors.Wrap(err, "load config")
		}
		if keys := meta.Undecoded(); len(keys) > 0 {
			attmon.GetLogger().Warnf("config %s: unknown keys %v", path, keys)
		}

		if meta.IsDefined("storage_dir") {
			cfg.StorageDir = strings.TrimSpace(raw.StorageDir)
		}
		if meta.IsDefined("max_pending_reads") {
			cfg.MaxPendingReads = raw.MaxPendingReads
		}
		if meta.IsDefined("output") {
			cfg.Output = strings.TrimSpace(raw.Output)
		}
		if meta.IsDefined("log_level") {
			cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
		}
		if meta.IsDefined("metrics_addr") {
			cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
		}
		if meta.IsDefined("signing_keys") {
			cfg.SigningKeys = raw.SigningKeys
		}
	}

	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvStorageDir); ok {
		cfg.StorageDir = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvOutput); ok {
		cfg.Output = strings.TrimSpace(v)
	}
}

func (c Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON, OutputCBOR:
	default:
		return errors.Errorf("unknown output %q", c.Output)
	}
	if c.MaxPendingReads < 0 {
		return errors.Errorf("max_pending_reads must not be negative, got %d", c.MaxPendingReads)
	}
	for _, k := range c.SigningKeys {
		if _, err := k.Key(); err != nil {
			return err
		}
	}
	return nil
}

// Key decodes the CSRK, written most significant byte first.
func (k SigningKey) Key() ([]byte, error) {
	if k.Address == "" {
		return nil, errors.New("signing key without address")
	}
	b, err := hex.DecodeString(strings.TrimSpace(k.CSRK))
	if err != nil || len(b) != 16 {
		return nil, errors.Errorf("csrk for %s must be 32 hex digits", k.Address)
	}
	return b, nil
}

// Options returns the decoder options the configuration implies. The
// GATT cache is left to the caller.
func (c Config) Options() ([]attmon.Option, error) {
	opts := []attmon.Option{attmon.OptMaxPendingReads(c.MaxPendingReads)}
	for _, k := range c.SigningKeys {
		b, err := k.Key()
		if err != nil {
			return nil, err
		}
		opts = append(opts, attmon.OptSigningKey(attmon.NewAddr(k.Address), b))
	}
	return opts, nil
}
