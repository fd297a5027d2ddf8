package cli

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := []string{"import", "layout", "render", "inspect", "edit", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestRootCommandSilencesUsage(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	if !root.SilenceUsage {
		t.Error("usage help should not be reprinted on command errors")
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)

	c.SetLogLevel(log.DebugLevel)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestParseVizTypes(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"plan"}},
		{"structure", []string{"structure"}},
		{"plan,structure", []string{"plan", "structure"}},
	}

	for _, tt := range tests {
		got := parseVizTypes(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseVizTypes(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseVizTypes(%q) = %v, want %v", tt.in, got, tt.want)
			}
		}
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats("", "png"); len(got) != 1 || got[0] != "png" {
		t.Errorf("parseFormats fallback = %v, want [png]", got)
	}
	if got := parseFormats("", ""); len(got) != 1 || got[0] != "svg" {
		t.Errorf("parseFormats default = %v, want [svg]", got)
	}
	if got := parseFormats("svg,pdf", "png"); len(got) != 2 || got[0] != "svg" || got[1] != "pdf" {
		t.Errorf("parseFormats explicit = %v, want [svg pdf]", got)
	}
}

func TestValidateFormats(t *testing.T) {
	if err := validateFormats([]string{"svg", "pdf", "png", "dot", "json"}); err != nil {
		t.Errorf("validateFormats() error for valid formats: %v", err)
	}
	if err := validateFormats([]string{"bmp"}); err == nil {
		t.Error("validateFormats() should reject bmp")
	}
}

func TestValidateVizTypes(t *testing.T) {
	if err := validateVizTypes([]string{"plan", "structure"}); err != nil {
		t.Errorf("validateVizTypes() error for valid types: %v", err)
	}
	if err := validateVizTypes([]string{"grid"}); err == nil {
		t.Error("validateVizTypes() should reject unknown types")
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"derive from input", "", "store.plan.json", "store.plan"},
		{"strip format extension", "out.svg", "store.plan.json", "out"},
		{"keep custom path", "exports/store", "store.plan.json", "exports/store"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/tmp/xdg-cache/shelfplan" {
		t.Errorf("cacheDir() = %q, want /tmp/xdg-cache/shelfplan", dir)
	}
}

func TestSettingsPathRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	path, err := settingsPath()
	if err != nil {
		t.Fatalf("settingsPath() error: %v", err)
	}
	if path != "/tmp/xdg-config/shelfplan/config.toml" {
		t.Errorf("settingsPath() = %q, want /tmp/xdg-config/shelfplan/config.toml", path)
	}
}
