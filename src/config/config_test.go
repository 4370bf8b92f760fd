package config

import (
	"encoding/json"
	"testing"
	"time"
)

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := loadConfig("testdata/does-not-exist.json")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.DataDir != "./SINERT_DATA_CONCENTRATOR" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.ListenAddr != ":5000" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if time.Duration(cfg.Debounce) != 2*time.Second {
		t.Errorf("Debounce = %v", time.Duration(cfg.Debounce))
	}
}

func TestDurationRoundTrip(t *testing.T) {
	var d Duration
	if err := json.Unmarshal([]byte(`"5m"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if time.Duration(d) != 5*time.Minute {
		t.Fatalf("got %v, want 5m", time.Duration(d))
	}

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"5m0s"` {
		t.Fatalf("marshal = %s", out)
	}
}
