package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Domain constants for the monitored circuits.
const (
	// MaxPowerCap is the highest believable reading for these buildings (kW).
	// Anything above it is an instrumentation artifact, not a real draw.
	MaxPowerCap = 50.0

	// IntervalHours is the meter cadence: one reading every 15 minutes.
	IntervalHours = 0.25

	// ReadingsPerDay at the 15-minute cadence.
	ReadingsPerDay = 96
)

// Config holds the application configuration loaded from a JSON file.
type Config struct {
	DataDir         string   `json:"data_dir"`         // root directory of the meter export files
	CacheDir        string   `json:"cache_dir"`        // processed-series cache, empty disables it
	ListenAddr      string   `json:"listen_addr"`      // HTTP listen address
	RefreshSchedule string   `json:"refresh_schedule"` // optional cron spec for cache refresh
	Debounce        Duration `json:"debounce"`         // settle time after data-dir changes
}

var (
	once     sync.Once
	instance *Config
	loadErr  error
)

// Load reads the configuration file once per process. A missing file is not
// an error: defaults are returned so the server can start against the
// conventional directory layout.
func Load(jsonFolder, jsonFile string) (*Config, error) {
	once.Do(func() {
		instance, loadErr = loadConfig(filepath.Join(jsonFolder, jsonFile))
	})
	return instance, loadErr
}

func loadConfig(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("config %s: data_dir must not be empty", path)
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaults().ListenAddr
	}
	if cfg.Debounce == 0 {
		cfg.Debounce = defaults().Debounce
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		DataDir:    "./SINERT_DATA_CONCENTRATOR",
		CacheDir:   "./cache",
		ListenAddr: ":5000",
		Debounce:   Duration(2 * time.Second),
	}
}

// Duration wraps time.Duration so it can round-trip through JSON as a
// human-readable string such as "2s" or "5m".
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
