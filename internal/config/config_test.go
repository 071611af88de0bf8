package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"milliseconds", "250ms", 250 * time.Millisecond, false},
		{"complex", "1m30s", 90 * time.Second, false},
		{"invalid", "soon", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Parser.Mode != "expression" {
		t.Errorf("Parser.Mode = %q, want expression", cfg.Parser.Mode)
	}
	if cfg.Parser.MaxDepth != 512 {
		t.Errorf("Parser.MaxDepth = %d, want 512", cfg.Parser.MaxDepth)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("Output.Format = %q, want text", cfg.Output.Format)
	}
	if cfg.Server.ReadTimeout.Duration != 60*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 60s", cfg.Server.ReadTimeout.Duration)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "whilec.toml")

	content := `
[parser]
mode = "statement"
max_depth = 64

[output]
format = "yaml"
color = true

[log]
level = "debug"
format = "json"

[server]
addr = ":9000"
read_timeout = "5s"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Parser.Mode != "statement" {
		t.Errorf("Parser.Mode = %q, want statement", cfg.Parser.Mode)
	}
	if cfg.Parser.MaxDepth != 64 {
		t.Errorf("Parser.MaxDepth = %d, want 64", cfg.Parser.MaxDepth)
	}
	if cfg.Parser.MaxInputLength != 64<<10 {
		t.Errorf("Parser.MaxInputLength default not applied: %d", cfg.Parser.MaxInputLength)
	}
	if cfg.Output.Format != "yaml" || !cfg.Output.Color {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout.Duration != 5*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout.Duration)
	}
	if cfg.Server.WriteTimeout.Duration != 10*time.Second {
		t.Errorf("Server.WriteTimeout default not applied: %v", cfg.Server.WriteTimeout.Duration)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("[parser\nmode = "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() of invalid TOML should fail")
	}
}

func TestLoadEnv(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")
	content := "WHILEC_MODE=statement\nWHILEC_FORMAT=json\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	// Register cleanup for the variables godotenv sets.
	t.Setenv("WHILEC_MODE", "")
	t.Setenv("WHILEC_FORMAT", "")
	os.Unsetenv("WHILEC_MODE")
	os.Unsetenv("WHILEC_FORMAT")
	t.Setenv("WHILEC_LOG_LEVEL", "warn")
	t.Setenv("WHILEC_ADDR", "")

	cfg := Default()
	if err := cfg.LoadEnv(envFile, filepath.Join(tmpDir, "missing.env")); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if cfg.Parser.Mode != "statement" {
		t.Errorf("Parser.Mode = %q, want statement", cfg.Parser.Mode)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want json", cfg.Output.Format)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Server.Addr != "localhost:8420" {
		t.Errorf("empty WHILEC_ADDR overrode the default: %q", cfg.Server.Addr)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Parser.Mode = "program"
	cfg.Output.Format = "xml"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() accepted invalid config")
	}
	for _, want := range []string{"parser.mode", "output.format", "log.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}
