package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCombat_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadCombat(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultCombat(), cfg)
}

func TestLoadCombat_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
resolver:
  armor_constant: 50
simulation:
  tick_rate: 60
  runs: 3
database:
  host: db
`), 0o600))

	cfg, err := LoadCombat(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 50.0, cfg.Resolver.ArmorConstant)
	assert.Equal(t, 1, cfg.Resolver.MinDamage, "unset keys keep defaults")
	assert.Equal(t, 60, cfg.Simulation.TickRate)
	assert.Equal(t, 3, cfg.Simulation.Runs)
	assert.Equal(t, 120.0, cfg.Simulation.Duration)
	assert.Equal(t, "postgres://skirmish:skirmish@db:5432/skirmish?sslmode=disable", cfg.Database.DSN())
	assert.InDelta(t, 1.0/60, cfg.Simulation.Step(), 1e-12)
}

func TestLoadCombat_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed yaml", body: "simulation: [\n"},
		{name: "zero tick rate", body: "simulation:\n  tick_rate: 0\n"},
		{name: "negative runs", body: "simulation:\n  runs: -1\n"},
		{name: "bad log level", body: "log_level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "combat.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))

			_, err := LoadCombat(path)
			assert.Error(t, err)
		})
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvPath, "")
	assert.Equal(t, DefaultPath, ResolvePath(""))

	t.Setenv(EnvPath, "/etc/skirmish.yaml")
	assert.Equal(t, "/etc/skirmish.yaml", ResolvePath(""))
	assert.Equal(t, "flag.yaml", ResolvePath("flag.yaml"))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "", want: slog.LevelInfo},
		{in: " INFO ", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "trace", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
