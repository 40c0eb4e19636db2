package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Locale != "en" {
		t.Errorf("Locale = %q, want %q", cfg.Locale, "en")
	}
	if cfg.Output.Suffix != "_sorted" {
		t.Errorf("Output.Suffix = %q, want %q", cfg.Output.Suffix, "_sorted")
	}
	if !cfg.History.Enabled {
		t.Error("History should be enabled by default")
	}
	if cfg.Logging.Format != "human" || cfg.Logging.Level != "info" {
		t.Errorf("Logging = %+v, want human/info", cfg.Logging)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Output.Suffix != "_sorted" {
			t.Errorf("Output.Suffix = %q, want default", cfg.Output.Suffix)
		}
	})

	t.Run("reads config file", func(t *testing.T) {
		root := t.TempDir()
		dir := filepath.Join(root, ".wfsort")
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}
		data := `{"version":1,"locale":"de","output":{"suffix":"_canon"},"history":{"enabled":false}}`
		if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(data), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		cfg, err := LoadConfig(root)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Locale != "de" {
			t.Errorf("Locale = %q, want de", cfg.Locale)
		}
		if cfg.Output.Suffix != "_canon" {
			t.Errorf("Output.Suffix = %q, want _canon", cfg.Output.Suffix)
		}
		if cfg.History.Enabled {
			t.Error("History.Enabled should be false from config")
		}
		// Unset fields keep their defaults.
		if cfg.Logging.Level != "info" {
			t.Errorf("Logging.Level = %q, want default info", cfg.Logging.Level)
		}
	})
}

func TestSaveAndReload(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.Locale = "sv"

	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.Locale != "sv" {
		t.Errorf("Locale = %q after reload, want sv", loaded.Locale)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"bad version", func(c *Config) { c.Version = 2 }, true},
		{"negative keep", func(c *Config) { c.History.Keep = -1 }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"json log format", func(c *Config) { c.Logging.Format = "json" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
