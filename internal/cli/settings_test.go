package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Format != "svg" {
		t.Errorf("Format = %q, want svg", s.Format)
	}
	if s.Scale != 1.0 {
		t.Errorf("Scale = %v, want 1.0", s.Scale)
	}
	if s.NoCache || s.DepthLabels {
		t.Error("caching and depth labels should default off")
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadSettings() error for missing file: %v", err)
	}
	if s != DefaultSettings() {
		t.Errorf("missing file should yield defaults, got %+v", s)
	}
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
format = "png"
scale = 2.0
depth_labels = true

[font]
family = "Inter"
size = 12.0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if s.Format != "png" || s.Scale != 2.0 || !s.DepthLabels {
		t.Errorf("settings misparsed: %+v", s)
	}
	if s.Font.Family != "Inter" || s.Font.Size != 12 {
		t.Errorf("font section misparsed: %+v", s.Font)
	}
}

func TestLoadSettingsPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`depth_labels = true`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if s.Format != "svg" || s.Scale != 1.0 {
		t.Errorf("unset keys should keep defaults: %+v", s)
	}
	if !s.DepthLabels {
		t.Error("set key should override the default")
	}
}

func TestLoadSettingsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", `format = [`},
		{"unknown format", `format = "bmp"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			s, err := LoadSettings(path)
			if err == nil {
				t.Error("LoadSettings() should reject invalid file")
			}
			if s != DefaultSettings() {
				t.Errorf("invalid file should fall back to defaults, got %+v", s)
			}
		})
	}
}

func TestLoadSettingsNormalizesScale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`scale = -3.0`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if s.Scale != 1.0 {
		t.Errorf("non-positive scale should normalize to 1.0, got %v", s.Scale)
	}
}
