package config

import (
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig contains server-specific configuration
type ServerConfig struct {
	Port                     int    `mapstructure:"port"`
	SessionAPIKey            string `mapstructure:"session_api_key"`
	ReadHeaderTimeoutSeconds int    `mapstructure:"read_header_timeout_seconds"`
}

// TelemetryConfig contains telemetry configuration
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                     8000,
			ReadHeaderTimeoutSeconds: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads the configuration from the global viper instance
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom loads the configuration from v
func LoadFrom(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	setDefaults(v)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	postProcess(cfg)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	// Server defaults
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_header_timeout_seconds", d.Server.ReadHeaderTimeoutSeconds)

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)

	// Log defaults
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.json", false)

	// Environment variable mappings
	_ = v.BindEnv("server.session_api_key", "SESSION_API_KEY")
	_ = v.BindEnv("telemetry.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func postProcess(cfg *Config) {
	if cfg.Server.ReadHeaderTimeoutSeconds <= 0 {
		cfg.Server.ReadHeaderTimeoutSeconds = Default().Server.ReadHeaderTimeoutSeconds
	}
}
