// Package config loads flashhal settings from an optional .env file and the
// process environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"flashhal/partition"
)

const (
	EnvPath       = "FLASHHAL_PATH"
	EnvCapacity   = "FLASHHAL_CAPACITY"
	EnvCodeEnd    = "FLASHHAL_CODE_END"
	EnvKVMulti    = "FLASHHAL_KV_MULTIPTN"
	EnvKVSize     = "FLASHHAL_KV_PTN_SIZE"
	EnvWdgTimeout = "FLASHHAL_WDG_TIMEOUT_MS"
)

// Config is the resolved configuration.
type Config struct {
	Path            string
	Capacity        partition.Capacity
	CodeEnd         uint32
	HasCodeEnd      bool
	KV              partition.KVConfig
	WatchdogTimeout time.Duration
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Path:            "flash.bin",
		Capacity:        partition.Capacity4M,
		KV:              partition.DefaultKV,
		WatchdogTimeout: 2 * time.Second,
	}
}

// Load reads envFile (ignored when empty or missing) and the environment.
func Load(envFile string) (Config, error) {
	vars := map[string]string{}
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: read %q: %w", envFile, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for _, k := range []string{EnvPath, EnvCapacity, EnvCodeEnd, EnvKVMulti, EnvKVSize, EnvWdgTimeout} {
		if v, ok := os.LookupEnv(k); ok {
			vars[k] = v
		}
	}
	return FromMap(vars)
}

// FromMap builds a Config from key/value pairs on top of Default.
func FromMap(vars map[string]string) (Config, error) {
	cfg := Default()

	if v := strings.TrimSpace(vars[EnvPath]); v != "" {
		cfg.Path = v
	}
	if v := vars[EnvCapacity]; v != "" {
		c, err := partition.ParseCapacity(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvCapacity, err)
		}
		cfg.Capacity = c
	}
	if v := vars[EnvCodeEnd]; v != "" {
		n, err := ParseUint32(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvCodeEnd, err)
		}
		cfg.CodeEnd = n
		cfg.HasCodeEnd = true
	}
	if v := vars[EnvKVMulti]; v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvKVMulti, err)
		}
		cfg.KV.Enabled = b
	}
	if v := vars[EnvKVSize]; v != "" {
		n, err := ParseUint32(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvKVSize, err)
		}
		cfg.KV.PrimarySize = n
	}
	if v := vars[EnvWdgTimeout]; v != "" {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvWdgTimeout, err)
		}
		cfg.WatchdogTimeout = time.Duration(n) * time.Millisecond
	}
	return cfg, nil
}

// ParseUint32 accepts decimal, 0x hex, 0o octal and 0b binary.
func ParseUint32(s string) (uint32, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}
