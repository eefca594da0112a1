/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads dualstore settings from defaults, an optional YAML file,
// a .env file and the process environment, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/suparena/dualstore/errors"
)

// Backend selects the remote store implementation.
type Backend string

const (
	BackendNone     Backend = "none"
	BackendDynamoDB Backend = "dynamodb"
	BackendPostgres Backend = "postgres"
)

// Environment variable names.
const (
	EnvLocalPath     = "DUALSTORE_LOCAL_PATH"
	EnvRemote        = "DUALSTORE_REMOTE"
	EnvAWSAccessKey  = "AWS_ACCESS_KEY"
	EnvAWSSecretKey  = "AWS_SECRET_KEY"
	EnvAWSRegion     = "AWS_REGION"
	EnvDDBEndpoint   = "DUALSTORE_DDB_ENDPOINT"
	EnvTablePrefix   = "DUALSTORE_TABLE_PREFIX"
	EnvPostgresDSN   = "DUALSTORE_POSTGRES_DSN"
	EnvOffline       = "DUALSTORE_OFFLINE"
	EnvProbeAddr     = "DUALSTORE_PROBE_ADDR"
	EnvRemoteTimeout = "DUALSTORE_REMOTE_TIMEOUT"
	EnvLogLevel      = "DUALSTORE_LOG_LEVEL"
	EnvLogFile       = "DUALSTORE_LOG_FILE"
)

// Config holds every runtime setting.
type Config struct {
	LocalPath     string         `yaml:"local_path"`
	Remote        Backend        `yaml:"remote"`
	Offline       bool           `yaml:"offline"`
	ProbeAddr     string         `yaml:"probe_addr"`
	RemoteTimeout time.Duration  `yaml:"remote_timeout"`
	DynamoDB      DynamoDBConfig `yaml:"dynamodb"`
	Postgres      PostgresConfig `yaml:"postgres"`
	Log           LogConfig      `yaml:"log"`
}

// DynamoDBConfig configures the DynamoDB remote store.
type DynamoDBConfig struct {
	AccessKey   string `yaml:"access_key"`
	SecretKey   string `yaml:"secret_key"`
	Region      string `yaml:"region"`
	Endpoint    string `yaml:"endpoint"`
	TablePrefix string `yaml:"table_prefix"`
}

// PostgresConfig configures the PostgreSQL remote store.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	File   string `yaml:"file"`
	Pretty bool   `yaml:"pretty"`
}

// DefaultConfig returns a local-only configuration.
func DefaultConfig() Config {
	return Config{
		LocalPath:     ".dualstore/local.db",
		Remote:        BackendNone,
		RemoteTimeout: 15 * time.Second,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Loader reads configuration. The zero value reads .env from the working
// directory and the process environment.
type Loader struct {
	// DotEnvFiles are read with godotenv. Missing files are ignored.
	DotEnvFiles []string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load reads configuration with the default Loader.
func Load(path string) (*Config, error) {
	return Loader{}.Load(path)
}

// Load applies defaults, then the YAML file at path (if path is non-empty),
// then .env values, then environment variables. Real environment variables
// win over .env values. The result is validated.
func (l Loader) Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	lookup, err := l.lookup()
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (l Loader) lookup() (func(string) (string, bool), error) {
	env := l.LookupEnv
	if env == nil {
		env = os.LookupEnv
	}

	files := l.DotEnvFiles
	if files == nil {
		files = []string{".env"}
	}

	dotenv := map[string]string{}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		vals, err := godotenv.Read(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
		for k, v := range vals {
			if _, seen := dotenv[k]; !seen {
				dotenv[k] = v
			}
		}
	}

	return func(key string) (string, bool) {
		if v, ok := env(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		EnvLocalPath:    &c.LocalPath,
		EnvAWSAccessKey: &c.DynamoDB.AccessKey,
		EnvAWSSecretKey: &c.DynamoDB.SecretKey,
		EnvAWSRegion:    &c.DynamoDB.Region,
		EnvDDBEndpoint:  &c.DynamoDB.Endpoint,
		EnvTablePrefix:  &c.DynamoDB.TablePrefix,
		EnvPostgresDSN:  &c.Postgres.DSN,
		EnvProbeAddr:    &c.ProbeAddr,
		EnvLogLevel:     &c.Log.Level,
		EnvLogFile:      &c.Log.File,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	if v, ok := lookup(EnvRemote); ok {
		c.Remote = Backend(v)
	}
	if v, ok := lookup(EnvOffline); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.NewValidationError(EnvOffline, fmt.Sprintf("not a boolean: %q", v))
		}
		c.Offline = b
	}
	if v, ok := lookup(EnvRemoteTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.NewValidationError(EnvRemoteTimeout, fmt.Sprintf("not a duration: %q", v))
		}
		c.RemoteTimeout = d
	}
	return nil
}

// Validate checks the local settings and the backend name. Missing remote
// settings are reported by RemoteSettingsError instead.
func (c *Config) Validate() error {
	if c.Remote == "" {
		c.Remote = BackendNone
	}
	if c.LocalPath == "" {
		return errors.NewValidationError("local_path", "must not be empty")
	}
	if c.RemoteTimeout <= 0 {
		return errors.NewValidationError("remote_timeout", "must be positive")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return errors.NewValidationError("log.level", err.Error())
	}

	switch c.Remote {
	case BackendNone, BackendDynamoDB, BackendPostgres:
	default:
		return errors.NewValidationError("remote", fmt.Sprintf("unknown backend %q", c.Remote))
	}
	return nil
}

// RemoteSettingsError reports a remote backend that lacks the settings it
// needs to connect. Such a configuration is still valid and runs local-only.
func (c *Config) RemoteSettingsError() error {
	switch c.Remote {
	case BackendDynamoDB:
		if c.DynamoDB.Region == "" {
			return errors.NewValidationError("dynamodb.region", "required for the dynamodb backend")
		}
		if c.DynamoDB.AccessKey == "" || c.DynamoDB.SecretKey == "" {
			return errors.NewValidationError("dynamodb.access_key", "access and secret key are required for the dynamodb backend")
		}
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			return errors.NewValidationError("postgres.dsn", "required for the postgres backend")
		}
	}
	return nil
}
