package flood

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 100*time.Millisecond, cfg.StepDuration())
}

func TestValidateRejectsOutOfRangeValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero size", func(c *Config) { c.N = 0 }, ErrInvalidSize},
		{"zero dx", func(c *Config) { c.DX = 0 }, ErrInvalidConfig},
		{"negative dy", func(c *Config) { c.DY = -1 }, ErrInvalidConfig},
		{"zero dt", func(c *Config) { c.DT = 0 }, ErrInvalidConfig},
		{"negative gravity", func(c *Config) { c.Gravity = -9.81 }, ErrInvalidConfig},
		{"friction above one", func(c *Config) { c.Friction = 1.5 }, ErrInvalidConfig},
		{"negative depth", func(c *Config) { c.InitialWaterDepth = -0.1 }, ErrInvalidConfig},
		{"unknown boundary", func(c *Config) { c.Boundary = BoundaryMode(7) }, ErrInvalidConfig},
		{"negative interval", func(c *Config) { c.StepInterval = -1 }, ErrInvalidConfig},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), tc.want)
		})
	}
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"n":                   "32",
		"dt":                  "0.05",
		"friction":            "0.1",
		"boundary":            "sink",
		"sink_elevation":      "-2",
		"initial_water_depth": "0.4",
		"step_interval":       "0.25",
	})
	require.Equal(t, 32, cfg.N)
	require.Equal(t, 0.05, cfg.DT)
	require.Equal(t, 0.1, cfg.Friction)
	require.Equal(t, BoundarySink, cfg.Boundary)
	require.Equal(t, -2.0, cfg.SinkElevation)
	require.Equal(t, 0.4, cfg.InitialWaterDepth)
	require.Equal(t, 250*time.Millisecond, cfg.StepDuration())
	require.Equal(t, 9.81, cfg.Gravity)
}

func TestFromMapKeepsDefaultsForInvalidValues(t *testing.T) {
	cfg := FromMap(map[string]string{
		"n":        "-3",
		"dx":       "abc",
		"friction": "2",
		"gravity":  "-1",
		"boundary": "periodic",
	})
	require.Equal(t, DefaultConfig(), cfg)
	require.Equal(t, DefaultConfig(), FromMap(nil))
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flood.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
n = 64
dt = 0.02
friction = 0.05
boundary = "sink"
sink_elevation = -1.5
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 64, cfg.N)
	require.Equal(t, 0.02, cfg.DT)
	require.Equal(t, 0.05, cfg.Friction)
	require.Equal(t, BoundarySink, cfg.Boundary)
	require.Equal(t, -1.5, cfg.SinkElevation)
	// Unset keys keep their defaults.
	require.Equal(t, 9.81, cfg.Gravity)
	require.Equal(t, 1.0, cfg.DX)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "n = 8\nviscosity = 3\n"))
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.Contains(t, err.Error(), "viscosity")

	_, err = LoadConfig(writeConfig(t, "n = 0\n"))
	require.ErrorIs(t, err, ErrInvalidSize)

	_, err = LoadConfig(writeConfig(t, "boundary = \"periodic\"\n"))
	require.Error(t, err)
}
