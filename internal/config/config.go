package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config is the full server configuration, loaded from YAML with
// environment overrides (prefix PTCG, dots become underscores).
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

// ServerConfig holds the WebSocket listener settings.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	AllowAllOrigins bool          `mapstructure:"allow_all_origins"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	PongTimeout     time.Duration `mapstructure:"pong_timeout"`
	SendBuffer      int           `mapstructure:"send_buffer"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig holds the PostgreSQL connection settings. An empty URL
// disables persistence; the server then runs purely in memory.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// SimulationConfig bounds engine-driven games.
type SimulationConfig struct {
	MaxSteps int   `mapstructure:"max_steps"`
	Seed     int64 `mapstructure:"seed"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.allow_all_origins", false)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.pong_timeout", 60*time.Second)
	v.SetDefault("server.send_buffer", 256)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 4)

	v.SetDefault("simulation.max_steps", 5000)
	v.SetDefault("simulation.seed", 0)
}

// Load reads the configuration file at path. A missing file is not an
// error: defaults plus environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("PTCG")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A plainly absent file means defaults-only; an unreadable or
		// malformed one is fatal.
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address must not be empty")
	}
	if c.Server.SendBuffer <= 0 {
		return fmt.Errorf("server.send_buffer must be positive, got %d", c.Server.SendBuffer)
	}
	if c.Simulation.MaxSteps <= 0 {
		return fmt.Errorf("simulation.max_steps must be positive, got %d", c.Simulation.MaxSteps)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug/info/warn/error, got %q", c.Logging.Level)
	}
	return nil
}
