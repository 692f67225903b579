package config

import (
	"time"

	"github.com/knadh/koanf/v2"
)

// Config represents the overall sqlfrag configuration.
type Config struct {
	Log      LogConfig      `koanf:"log" json:"log" yaml:"log" mapstructure:"log"`
	Database DatabaseConfig `koanf:"database" json:"database" yaml:"database" mapstructure:"database"`
	Builder  BuilderConfig  `koanf:"builder" json:"builder" yaml:"builder" mapstructure:"builder"`

	// k holds the underlying Koanf instance for flexible access to custom configurations
	k *koanf.Koanf `json:"-" yaml:"-" mapstructure:"-"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level" json:"level" yaml:"level" mapstructure:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Pretty bool   `koanf:"pretty" json:"pretty" yaml:"pretty" mapstructure:"pretty"`
}

// DatabaseConfig holds connection settings for the executor's database.
// The database is optional; it is only validated when Type, Host or ConnectionString is set.
type DatabaseConfig struct {
	Type     string `koanf:"type" json:"type" yaml:"type" mapstructure:"type"`
	Host     string `koanf:"host" json:"host" yaml:"host" mapstructure:"host"`
	Port     int    `koanf:"port" json:"port" yaml:"port" mapstructure:"port"`
	Database string `koanf:"database" json:"database" yaml:"database" mapstructure:"database"`
	Username string `koanf:"username" json:"username" yaml:"username" mapstructure:"username"`
	Password string `koanf:"password" json:"password" yaml:"password" mapstructure:"password"`

	ConnectionString string `koanf:"connectionstring" json:"connectionstring" yaml:"connectionstring" mapstructure:"connectionstring"`

	// ServiceName and SID address Oracle databases; ServiceName wins when both are set.
	ServiceName string `koanf:"servicename" json:"servicename" yaml:"servicename" mapstructure:"servicename"`
	SID         string `koanf:"sid" json:"sid" yaml:"sid" mapstructure:"sid"`

	// SSLMode is passed to PostgreSQL as sslmode.
	SSLMode string `koanf:"sslmode" json:"sslmode" yaml:"sslmode" mapstructure:"sslmode"`

	Pool PoolConfig `koanf:"pool" json:"pool" yaml:"pool" mapstructure:"pool"`
}

// PoolConfig holds connection pool settings.
// Defaults applied when the database is configured:
//   - Max.Connections: 25
//   - Idle.Connections: 2
//   - Idle.Time: 5m
//   - Lifetime.Max: 30m
type PoolConfig struct {
	Max      PoolMaxConfig  `koanf:"max" json:"max" yaml:"max" mapstructure:"max"`
	Idle     PoolIdleConfig `koanf:"idle" json:"idle" yaml:"idle" mapstructure:"idle"`
	Lifetime LifetimeConfig `koanf:"lifetime" json:"lifetime" yaml:"lifetime" mapstructure:"lifetime"`
}

// PoolMaxConfig holds maximum connections settings.
type PoolMaxConfig struct {
	Connections int32 `koanf:"connections" json:"connections" yaml:"connections" mapstructure:"connections" validate:"gte=0"`
}

// PoolIdleConfig holds idle connection settings.
type PoolIdleConfig struct {
	Connections int32         `koanf:"connections" json:"connections" yaml:"connections" mapstructure:"connections" validate:"gte=0"`
	Time        time.Duration `koanf:"time" json:"time" yaml:"time" mapstructure:"time" validate:"gte=0"`
}

// LifetimeConfig holds connection recycling settings.
type LifetimeConfig struct {
	Max time.Duration `koanf:"max" json:"max" yaml:"max" mapstructure:"max" validate:"gte=0"`
}

// BuilderConfig configures the query builder created by database.NewQueryBuilderFromConfig.
type BuilderConfig struct {
	// Vendor selects identifier quoting, LIMIT syntax and placeholder format.
	// Empty falls back to Database.Type, then mysql.
	Vendor string `koanf:"vendor" json:"vendor" yaml:"vendor" mapstructure:"vendor"`

	// Joiner is the default WHERE joiner for dynamic filters (AND or OR).
	Joiner string `koanf:"joiner" json:"joiner" yaml:"joiner" mapstructure:"joiner" validate:"omitempty,oneof=AND OR and or"`

	// Columns overlays the default filter key to column mapping.
	Columns map[string]string `koanf:"columns" json:"columns" yaml:"columns" mapstructure:"columns" validate:"dive,keys,required,endkeys,required,sqlident"`
}
