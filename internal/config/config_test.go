package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

func TestLoadMoleCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mole.yaml")
	data := []byte(`
session:
  duration_seconds: 30
delays:
  easy_ms: 2000
boards:
  classic:
    rows: 2
    cols: 9
difficulty: EASY
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := LoadMole(path)
	if err != nil {
		t.Fatalf("LoadMole() failed: %v", err)
	}

	if cfg.Session.DurationSeconds != 30 {
		t.Errorf("DurationSeconds = %d, expected 30", cfg.Session.DurationSeconds)
	}
	if cfg.Delays.EasyMS != 2000 {
		t.Errorf("EasyMS = %d, expected 2000", cfg.Delays.EasyMS)
	}
	// Missing fields fall back to defaults
	if cfg.Delays.NormalMS != 1000 {
		t.Errorf("NormalMS = %d, expected default 1000", cfg.Delays.NormalMS)
	}
	if cfg.Delays.HardMinMS != 600 || cfg.Delays.HardMaxMS != 1200 {
		t.Errorf("hard delays = [%d, %d], expected [600, 1200]", cfg.Delays.HardMinMS, cfg.Delays.HardMaxMS)
	}
	// Columns are capped to the key layout
	if cfg.Boards.Classic.Rows != 2 || cfg.Boards.Classic.Cols != MaxBoardSide {
		t.Errorf("classic board = %dx%d, expected 2x%d", cfg.Boards.Classic.Rows, cfg.Boards.Classic.Cols, MaxBoardSide)
	}
	if cfg.Boards.Big != DefaultMoleConfig().Boards.Big {
		t.Errorf("big board = %+v, expected default", cfg.Boards.Big)
	}
	if cfg.Difficulty != "easy" {
		t.Errorf("Difficulty = %q, expected normalized %q", cfg.Difficulty, "easy")
	}
}

func TestLoadMoleMissingCustomPath(t *testing.T) {
	_, err := LoadMole(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("LoadMole() should fail for a missing custom path")
	}
}

func TestLoadMoleInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("session: [unclosed"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := LoadMole(path); err == nil {
		t.Error("LoadMole() should fail for invalid YAML")
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg MoleConfig
	if err := yaml.Unmarshal(GetDefaultYAML("mole"), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg.withDefaults() != DefaultMoleConfig() {
		t.Errorf("embedded defaults %+v differ from DefaultMoleConfig() %+v", cfg, DefaultMoleConfig())
	}
}

func TestInvertedHardRangeIsSwapped(t *testing.T) {
	cfg := MoleConfig{Delays: MoleDelays{HardMinMS: 900, HardMaxMS: 300}}.withDefaults()
	if cfg.Delays.HardMinMS != 300 || cfg.Delays.HardMaxMS != 900 {
		t.Errorf("hard delays = [%d, %d], expected [300, 900]", cfg.Delays.HardMinMS, cfg.Delays.HardMaxMS)
	}
}

func TestParseDifficultyPreset(t *testing.T) {
	tests := []struct {
		input    string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"easy", DifficultyEasy, false},
		{"Normal", DifficultyNormal, false},
		{" hard ", DifficultyHard, false},
		{"", "", false},
		{"fixed", "", true},
		{"insane", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseDifficultyPreset(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidDifficulty) {
					t.Errorf("ParseDifficultyPreset(%q) error = %v, expected ErrInvalidDifficulty", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDifficultyPreset(%q) failed: %v", tc.input, err)
			}
			if got != tc.expected {
				t.Errorf("ParseDifficultyPreset(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestDifficultyPresetNext(t *testing.T) {
	if DifficultyEasy.Next() != DifficultyNormal {
		t.Error("easy should cycle to normal")
	}
	if DifficultyNormal.Next() != DifficultyHard {
		t.Error("normal should cycle to hard")
	}
	if DifficultyHard.Next() != DifficultyEasy {
		t.Error("hard should cycle to easy")
	}
	if DifficultyPreset("bogus").Next() != DifficultyEasy {
		t.Error("unknown preset should cycle to easy")
	}
}

func TestApplyMolePreset(t *testing.T) {
	cfg := DefaultMoleConfig()
	ApplyMolePreset(&cfg, DifficultyEasy)
	if cfg.Difficulty != "easy" {
		t.Errorf("Difficulty = %q, expected easy", cfg.Difficulty)
	}

	ApplyMolePreset(&cfg, "")
	if cfg.Difficulty != "easy" {
		t.Errorf("empty preset should keep %q, got %q", "easy", cfg.Difficulty)
	}
}

func TestLoadSettingsLayers(t *testing.T) {
	dir := t.TempDir()
	settingsFile := filepath.Join(dir, "settings.yaml")
	data := []byte("db: /tmp/from-file.db\nssh: \":2222\"\nidle-timeout: 5\n")
	if err := os.WriteFile(settingsFile, data, 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	t.Setenv("WHACK_SSH", ":3333")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("fps", 60, "")
	flags.String("db", "~/.whack/scores.db", "")
	if err := flags.Parse([]string{"--fps", "30"}); err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	s, err := LoadSettings(flags, settingsFile)
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}

	if s.TickRate != 30 {
		t.Errorf("TickRate = %d, expected flag value 30", s.TickRate)
	}
	if s.DBPath != "/tmp/from-file.db" {
		t.Errorf("DBPath = %q, expected file value", s.DBPath)
	}
	if s.SSHAddr != ":3333" {
		t.Errorf("SSHAddr = %q, expected env value :3333", s.SSHAddr)
	}
	if s.IdleTimeout != 5*time.Minute {
		t.Errorf("IdleTimeout = %v, expected 5m", s.IdleTimeout)
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings(nil, filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if s != DefaultSettings() {
		t.Errorf("LoadSettings() = %+v, expected defaults %+v", s, DefaultSettings())
	}
}
