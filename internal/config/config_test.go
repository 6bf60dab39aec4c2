package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	provider, ok := cfg.GetProvider("telekom")
	if !ok {
		t.Fatal("expected a default telekom provider")
	}
	if len(provider.Sections) == 0 {
		t.Error("expected default sections")
	}
	if provider.Sections[0].Key != "internet" {
		t.Errorf("expected first section key internet, got %s", provider.Sections[0].Key)
	}
	if provider.Layout != "auto" {
		t.Errorf("expected auto layout, got %s", provider.Layout)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
providers:
  orange:
    layout: double_sided
    sections:
      - key: internet
        title: INTERNET
      - key: discounts
        title: "ZĽAVY A AKCIE"
    overrides:
      - title: "ZĽAVY A AKCIE"
        occurrence: 2
server:
  host: 0.0.0.0
  port: "9090"
`
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cm, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	cfg := cm.Get()
	provider, ok := cfg.GetProvider("orange")
	if !ok {
		t.Fatalf("expected orange provider, got %v", cfg.ProviderNames())
	}
	if provider.Layout != "double_sided" {
		t.Errorf("expected double_sided layout, got %s", provider.Layout)
	}
	if len(provider.Sections) != 2 {
		t.Errorf("expected 2 sections, got %d", len(provider.Sections))
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}

	table := provider.OverrideTable()
	if table["ZĽAVY A AKCIE"] != 2 {
		t.Errorf("expected occurrence override 2, got %v", table)
	}
}

func TestValidate(t *testing.T) {
	t.Run("provider without sections rejected", func(t *testing.T) {
		cfg := &Config{
			Providers: map[string]ProviderCfg{
				"broken": {},
			},
		}
		if err := Validate(cfg); err == nil {
			t.Error("expected validation error for empty sections")
		}
	})

	t.Run("zero occurrence rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		p := cfg.Providers["telekom"]
		p.Overrides = []OccurrenceOverride{{Title: "INTERNET", Occurrence: 0}}
		cfg.Providers["telekom"] = p
		if err := Validate(cfg); err == nil {
			t.Error("expected validation error for occurrence 0")
		}
	})

	t.Run("unknown layout rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		p := cfg.Providers["telekom"]
		p.Layout = "sideways"
		cfg.Providers["telekom"] = p
		if err := Validate(cfg); err == nil {
			t.Error("expected validation error for unknown layout")
		}
	})
}

func TestOverrideTable(t *testing.T) {
	t.Run("empty overrides yield nil", func(t *testing.T) {
		if table := (ProviderCfg{}).OverrideTable(); table != nil {
			t.Errorf("expected nil table, got %v", table)
		}
	})

	t.Run("table keyed by title", func(t *testing.T) {
		p := ProviderCfg{Overrides: []OccurrenceOverride{
			{Title: "INTERNET", Occurrence: 2},
			{Title: "ZĽAVY", Occurrence: 3},
		}}
		table := p.OverrideTable()
		if table["INTERNET"] != 2 || table["ZĽAVY"] != 3 {
			t.Errorf("unexpected table: %v", table)
		}
	})
}

func TestWriteDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# cennik configuration") {
		t.Error("expected the comment header")
	}
	if !strings.Contains(content, "telekom") {
		t.Error("expected the default provider in the written file")
	}

	// The written file must load back through the manager.
	cm, err := NewManager(path)
	if err != nil {
		t.Fatalf("written default config failed to load: %v", err)
	}
	if _, ok := cm.Get().GetProvider("telekom"); !ok {
		t.Error("expected telekom provider after round trip")
	}
}
