package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gaborage/go-sqlfrag/internal/sqllex"
)

// Database type constants
const (
	MySQL      = "mysql"
	PostgreSQL = "postgresql"
	Oracle     = "oracle"
)

// Pool defaults applied to a configured database.
const (
	defaultMaxConns        = 25
	defaultMaxIdleConns    = 2
	defaultConnMaxIdleTime = 5 * time.Minute
	defaultConnMaxLifetime = 30 * time.Minute
)

// SupportedDatabaseTypes lists the accepted database.type and builder.vendor values.
var SupportedDatabaseTypes = []string{MySQL, PostgreSQL, Oracle}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their koanf key so messages match config.yaml paths.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("sqlident", func(fl validator.FieldLevel) bool {
		return sqllex.IsQualifiedIdentifier(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks cfg and applies pool defaults to a configured database.
// The first problem found is returned as a *ConfigError.
func Validate(cfg *Config) error {
	if err := validateStruct(cfg); err != nil {
		return err
	}

	if err := validateDatabase(&cfg.Database); err != nil {
		return fmt.Errorf("database config: %w", err)
	}

	if err := validateBuilder(&cfg.Builder); err != nil {
		return fmt.Errorf("builder config: %w", err)
	}

	return nil
}

// validateStruct runs the validate struct tags and converts the first failure.
func validateStruct(cfg *Config) error {
	err := structValidator.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	// Namespace is "Config.database.pool.max.connections"; drop the root type name.
	_, field, _ := strings.Cut(fe.Namespace(), ".")

	var options []string
	if fe.Tag() == "oneof" {
		options = strings.Fields(fe.Param())
	}
	return NewInvalidFieldError(field, fmt.Sprintf("failed %q check with value %v", fe.Tag(), fe.Value()), options)
}

// IsDatabaseConfigured determines if the executor database is intentionally configured.
func IsDatabaseConfigured(cfg *DatabaseConfig) bool {
	if cfg.ConnectionString != "" {
		return true
	}
	return cfg.Host != "" || cfg.Type != ""
}

func validateDatabase(cfg *DatabaseConfig) error {
	if !IsDatabaseConfigured(cfg) {
		return nil
	}

	if err := validateDatabaseType(cfg.Type); err != nil {
		return err
	}

	if cfg.ConnectionString == "" {
		if err := validateDatabaseCoreFields(cfg); err != nil {
			return err
		}
	}

	applyDatabasePoolDefaults(cfg)
	return nil
}

// validateDatabaseType validates that dbType is one of SupportedDatabaseTypes.
func validateDatabaseType(dbType string) error {
	if dbType == "" {
		return NewMissingFieldError("database.type")
	}
	if !slices.Contains(SupportedDatabaseTypes, dbType) {
		return NewInvalidFieldError("database.type", fmt.Sprintf("unsupported value %q", dbType), SupportedDatabaseTypes)
	}
	return nil
}

func validateDatabaseCoreFields(cfg *DatabaseConfig) error {
	if cfg.Host == "" {
		return NewMissingFieldError("database.host")
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return NewInvalidFieldError("database.port", fmt.Sprintf("invalid port %d (must be 1-65535)", cfg.Port), nil)
	}

	// Oracle can address the database by service name or SID instead.
	if cfg.Database == "" && (cfg.Type != Oracle || (cfg.ServiceName == "" && cfg.SID == "")) {
		return NewMissingFieldError("database.database")
	}

	if cfg.Username == "" {
		return NewMissingFieldError("database.username")
	}

	return nil
}

// applyDatabasePoolDefaults fills zero pool settings in place.
func applyDatabasePoolDefaults(cfg *DatabaseConfig) {
	if cfg.Pool.Max.Connections == 0 {
		cfg.Pool.Max.Connections = defaultMaxConns
	}
	if cfg.Pool.Idle.Connections == 0 {
		cfg.Pool.Idle.Connections = defaultMaxIdleConns
	}
	if cfg.Pool.Idle.Time == 0 {
		cfg.Pool.Idle.Time = defaultConnMaxIdleTime
	}
	if cfg.Pool.Lifetime.Max == 0 {
		cfg.Pool.Lifetime.Max = defaultConnMaxLifetime
	}
}

func validateBuilder(cfg *BuilderConfig) error {
	if cfg.Vendor != "" && !slices.Contains(SupportedDatabaseTypes, cfg.Vendor) {
		return NewInvalidFieldError("builder.vendor", fmt.Sprintf("unsupported value %q", cfg.Vendor), SupportedDatabaseTypes)
	}
	return nil
}

// BuilderVendor returns the vendor the query builder should render for:
// builder.vendor, then database.type, then mysql.
func (c *Config) BuilderVendor() string {
	switch {
	case c.Builder.Vendor != "":
		return c.Builder.Vendor
	case c.Database.Type != "":
		return c.Database.Type
	default:
		return MySQL
	}
}
