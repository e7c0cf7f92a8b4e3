package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rom.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{"axis": [0, 0, 1], "max_deg": 90, "view_collision": true}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Axis != [3]float64{0, 0, 1} {
		t.Errorf("Axis = %v", cfg.Axis)
	}
	if cfg.MaxDeg != 90 || !cfg.ViewCollision {
		t.Errorf("file values not applied: %+v", cfg)
	}

	// untouched fields keep their defaults
	def := Default()
	if cfg.StepDeg != def.StepDeg || cfg.Refine != def.Refine || cfg.Workers != def.Workers {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := Load(writeConfig(t, `{"axis": `)); err == nil {
		t.Error("malformed file should fail")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		flags   Flags
		check   func(Config) bool
		wantErr bool
	}{
		{
			name:  "zero flags keep the config",
			flags: Flags{},
			check: func(c Config) bool { return c.MaxDeg == 45 && c.Workers == 3 && c.Epsilon == 0.01 },
		},
		{
			name:  "flags win",
			flags: Flags{Workers: 8, MaxDeg: 120, Epsilon: 0.5, Refine: 2},
			check: func(c Config) bool { return c.Workers == 8 && c.MaxDeg == 120 && c.Epsilon == 0.5 && c.Refine == 2 },
		},
		{
			name:  "vectors",
			flags: Flags{Axis: []float64{0, 1, 0}, Origin: []float64{1, 2, 3}},
			check: func(c Config) bool { return c.Axis == [3]float64{0, 1, 0} && c.Origin == [3]float64{1, 2, 3} },
		},
		{
			name:    "short axis",
			flags:   Flags{Axis: []float64{1, 0}},
			wantErr: true,
		},
		{
			name:    "long origin",
			flags:   Flags{Origin: []float64{1, 2, 3, 4}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.MaxDeg = 45
			cfg.Workers = 3
			cfg.Epsilon = 0.01

			err := cfg.Resolve(tt.flags)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !tt.check(cfg) {
				t.Errorf("unexpected config %+v", cfg)
			}
		})
	}
}

func TestResolve_DefaultsWorkers(t *testing.T) {
	cfg := Config{}
	if err := cfg.Resolve(Flags{}); err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want %d", cfg.Workers, runtime.NumCPU())
	}
}
