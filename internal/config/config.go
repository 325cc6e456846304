package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "SKIRMISH_CONFIG"

// DefaultPath is used when neither a flag nor EnvPath is set.
const DefaultPath = "config/combatsim.yaml"

// Combat holds all configuration for the combat simulator.
type Combat struct {
	LogLevel string `yaml:"log_level"` // debug|info|warn|error

	// Database (save layer)
	Database DatabaseConfig `yaml:"database"`

	// Damage pipeline
	Resolver ResolverConfig `yaml:"resolver"`

	// Batch runs
	Simulation SimulationConfig `yaml:"simulation"`

	// Optional catalog file replacing the embedded one
	CatalogPath string `yaml:"catalog_path"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int32  `yaml:"max_conns"` // 0 keeps the pgx default
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// ResolverConfig tunes the damage resolver.
type ResolverConfig struct {
	ArmorConstant float64 `yaml:"armor_constant"` // K in armor/(armor+K)
	MinDamage     int     `yaml:"min_damage"`     // floor for landed hits
}

// SimulationConfig drives batch arena runs.
type SimulationConfig struct {
	TickRate int     `yaml:"tick_rate"` // frames per second
	Duration float64 `yaml:"duration"`  // seconds per run before a draw
	Seed     uint64  `yaml:"seed"`      // base seed; run i uses Seed+i
	Runs     int     `yaml:"runs"`
	Workers  int     `yaml:"workers"` // parallel runs; 0 means GOMAXPROCS
}

// Step returns the fixed frame step in seconds.
func (s SimulationConfig) Step() float64 {
	return 1 / float64(s.TickRate)
}

// DefaultCombat returns Combat config with sensible defaults.
func DefaultCombat() Combat {
	return Combat{
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "skirmish",
			Password: "skirmish",
			DBName:   "skirmish",
			SSLMode:  "disable",
		},
		Resolver: ResolverConfig{
			ArmorConstant: 100,
			MinDamage:     1,
		},
		Simulation: SimulationConfig{
			TickRate: 30,
			Duration: 120,
			Seed:     1,
			Runs:     8,
		},
	}
}

// LoadCombat loads combat config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadCombat(path string) (Combat, error) {
	cfg := DefaultCombat()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// ResolvePath picks the config path: explicit flag value, then EnvPath,
// then DefaultPath.
func ResolvePath(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(EnvPath); env != "" {
		return env
	}
	return DefaultPath
}

// Validate checks the values a run cannot start without.
func (c Combat) Validate() error {
	var errs []error
	if c.Simulation.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("simulation.tick_rate must be positive, got %d", c.Simulation.TickRate))
	}
	if c.Simulation.Duration <= 0 {
		errs = append(errs, fmt.Errorf("simulation.duration must be positive, got %g", c.Simulation.Duration))
	}
	if c.Simulation.Runs < 0 || c.Simulation.Workers < 0 {
		errs = append(errs, errors.New("simulation.runs and simulation.workers must not be negative"))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLevel maps a log_level value to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", s)
	}
}
