package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file is empty", func(t *testing.T) {
		cfg, err := loadConfigFrom(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("loadConfigFrom: %v", err)
		}
		if diff := cmp.Diff(Config{}, cfg); diff != "" {
			t.Fatalf("unexpected config (-want +got):\n%s", diff)
		}
	})

	t.Run("keys are read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		body := "save_dir: /q2/save\nmax_clients: 4\nmax_entities: 0\nlog_format: json\nserver_address: 0.0.0.0:9000\n"
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		cfg, err := loadConfigFrom(path)
		if err != nil {
			t.Fatalf("loadConfigFrom: %v", err)
		}
		four, zero := 4, 0
		want := Config{
			SaveDir:       "/q2/save",
			MaxClients:    &four,
			MaxEntities:   &zero,
			LogFormat:     "json",
			ServerAddress: "0.0.0.0:9000",
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Fatalf("unexpected config (-want +got):\n%s", diff)
		}
	})

	t.Run("bad yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("max_clients: [1\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := loadConfigFrom(path); err == nil {
			t.Fatalf("expected a parse error")
		}
	})
}
