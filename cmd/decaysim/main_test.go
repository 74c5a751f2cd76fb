package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// parse builds a fresh command tree and parses args for the named
// subcommand, returning it with its positional args.
func parse(t *testing.T, name string, args ...string) (*cobra.Command, []string) {
	t.Helper()
	root := newRootCmd()
	for _, cmd := range root.Commands() {
		if cmd.Name() == name {
			if err := cmd.ParseFlags(args); err != nil {
				t.Fatalf("parse %v: %v", args, err)
			}
			return cmd, cmd.Flags().Args()
		}
	}
	t.Fatalf("no command %q", name)
	return nil, nil
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decaysim.yaml")
	data := `isotope: Co-60
n0: 5000
unit: days
half_life_multiple: 2
data_dir: runs-from-file
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigPrecedence(t *testing.T) {
	cfgPath := writeConfig(t)

	tests := []struct {
		name     string
		args     []string
		isotope  string
		n0       float64
		unit     string
		multiple float64
		dataDir  string
		logLevel string
	}{
		{
			name:    "defaults",
			isotope: "Carbon-14 (C-14)", n0: 1e6, unit: "years", multiple: 5,
			dataDir: ".decaysim", logLevel: "info",
		},
		{
			name:    "config file",
			args:    []string{"--config", cfgPath},
			isotope: "Co-60", n0: 5000, unit: "days", multiple: 2,
			dataDir: "runs-from-file", logLevel: "debug",
		},
		{
			name:    "preset over file",
			args:    []string{"--config", cfgPath, "--preset", "radon"},
			isotope: "Rn-222", n0: 1e6, unit: "days", multiple: 6,
			dataDir: "runs-from-file", logLevel: "debug",
		},
		{
			name:    "flags over preset",
			args:    []string{"--config", cfgPath, "--preset", "radon", "--unit", "hours", "--multiple", "3", "--n0", "42"},
			isotope: "Rn-222", n0: 42, unit: "hours", multiple: 3,
			dataDir: "runs-from-file", logLevel: "debug",
		},
		{
			name:    "positional isotope",
			args:    []string{"I-131", "--config", cfgPath},
			isotope: "I-131", n0: 5000, unit: "days", multiple: 2,
			dataDir: "runs-from-file", logLevel: "debug",
		},
		{
			name:    "data and log flags over file",
			args:    []string{"--config", cfgPath, "--data", "elsewhere", "--log-level", "warn"},
			isotope: "Co-60", n0: 5000, unit: "days", multiple: 2,
			dataDir: "elsewhere", logLevel: "warn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := parse(t, "run", tt.args...)
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				t.Fatalf("loadConfig: %v", err)
			}

			if cfg.Isotope != tt.isotope {
				t.Errorf("isotope = %q, want %q", cfg.Isotope, tt.isotope)
			}
			if cfg.Initial != tt.n0 {
				t.Errorf("n0 = %g, want %g", cfg.Initial, tt.n0)
			}
			if cfg.Unit != tt.unit {
				t.Errorf("unit = %q, want %q", cfg.Unit, tt.unit)
			}
			if cfg.Multiple != tt.multiple {
				t.Errorf("multiple = %g, want %g", cfg.Multiple, tt.multiple)
			}
			if cfg.DataDir != tt.dataDir {
				t.Errorf("data dir = %q, want %q", cfg.DataDir, tt.dataDir)
			}
			if cfg.Log.Level != tt.logLevel {
				t.Errorf("log level = %q, want %q", cfg.Log.Level, tt.logLevel)
			}
		})
	}
}

func TestLoadConfigUnknownPreset(t *testing.T) {
	cmd, args := parse(t, "run", "--preset", "nope")
	if _, err := loadConfig(cmd, args); err == nil || !strings.Contains(err.Error(), "unknown preset") {
		t.Errorf("expected unknown preset error, got %v", err)
	}
}

func TestRunStoreCommandsUseConfigDataDir(t *testing.T) {
	cfgPath := writeConfig(t)
	for _, name := range []string{"list", "plot", "export-csv", "export-json", "export-svg"} {
		cmd, _ := parse(t, name, "--config", cfgPath)
		cfg, err := loadConfig(cmd, nil)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if cfg.DataDir != "runs-from-file" {
			t.Errorf("%s: data dir = %q, want config value", name, cfg.DataDir)
		}
	}
}

func TestPreselect(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"--theme", "retro"}, false},
		{[]string{"--unit", "days", "--multiple", "2"}, true},
		{[]string{"--log"}, true},
		{[]string{"--preset", "thyroid"}, true},
		{[]string{"Co-60"}, true},
	}

	for _, tt := range tests {
		cmd, args := parse(t, "tui", tt.args...)
		if got := preselect(cmd, args); got != tt.want {
			t.Errorf("preselect(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestWriteOutputFile(t *testing.T) {
	newRootCmd()
	outFile = filepath.Join(t.TempDir(), "nested", "out.csv")
	defer func() { outFile = "" }()

	err := writeOutput(func(w io.Writer) error {
		_, err := io.WriteString(w, "t,n\n")
		return err
	})
	if err != nil {
		t.Fatalf("writeOutput: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "t,n\n" {
		t.Errorf("unexpected content %q", data)
	}
}
