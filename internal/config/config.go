// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package config

import (
	"errors"
	"net"
	"net/url"
	"strconv"
	"strings"

	bberr "github.com/bedbase-dev/bedbase/pkg/errors"
	"github.com/spf13/viper"
)

// Config is the top-level bedbase configuration. Every field has a
// documented default so a config source may omit any section.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Qdrant    QdrantConfig    `mapstructure:"qdrant"`
	S3        S3Config        `mapstructure:"s3"`
	Metadata  MetadataConfig  `mapstructure:"metadata"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Server    ServerConfig    `mapstructure:"server"`
}

// DatabaseConfig holds the relational store connection parameters.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// QdrantConfig holds the vector index connection parameters.
type QdrantConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	APIKey     string `mapstructure:"api_key"`
	Collection string `mapstructure:"collection"`
}

// S3Config holds the object store endpoint and credentials.
type S3Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// MetadataConfig addresses the external sample-metadata service.
type MetadataConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	Namespace string `mapstructure:"namespace"`
	Name      string `mapstructure:"name"`
	Tag       string `mapstructure:"tag"`
}

// EmbeddingConfig selects the text and region embedding models.
type EmbeddingConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	TextModel   string `mapstructure:"text_model"`
	RegionModel string `mapstructure:"region_model"`
	Dimensions  int    `mapstructure:"dimensions"`
}

// StorageConfig selects the relational backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
}

// ServerConfig is kept for the documented configuration surface; no
// HTTP server ships with this module.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// SetDefaults installs the documented default for every config key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "bedbasepassword")
	v.SetDefault("database.name", "bedbase")

	v.SetDefault("qdrant.host", "localhost")
	v.SetDefault("qdrant.port", 6334)
	v.SetDefault("qdrant.api_key", "")
	v.SetDefault("qdrant.collection", "bedbase")

	v.SetDefault("s3.endpoint", "localhost:9000")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.bucket", "bedbase")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.use_ssl", false)

	v.SetDefault("metadata.base_url", "https://pephub.databio.org")
	v.SetDefault("metadata.namespace", "databio")
	v.SetDefault("metadata.name", "bedbase")
	v.SetDefault("metadata.tag", "default")

	v.SetDefault("embedding.endpoint", "http://localhost:8000")
	v.SetDefault("embedding.text_model", "sentence-transformers/all-MiniLM-L6-v2")
	v.SetDefault("embedding.region_model", "databio/r2v-ChIP-atlas-hg38")
	v.SetDefault("embedding.dimensions", 100)

	v.SetDefault("storage.backend", "postgres")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 80)
}

// SetupEnv binds BEDBASE_*-prefixed environment variables.
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix("BEDBASE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads configuration from the given path (or defaults) with
// environment variable overrides (prefix BEDBASE_).
func Load(path string) (*Config, error) {
	v := viper.New()

	SetDefaults(v)
	SetupEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, bberr.Errorf(bberr.CodeConfigLoadReadFailure, "reading config %s: %w", path, err)
		}
	}

	return FromViper(v)
}

// FromViper unmarshals and validates an already-populated viper,
// typically the CLI's global instance.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, bberr.Errorf(bberr.CodeConfigParseInvalidFormat, "unmarshalling config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, bberr.Errorf(bberr.CodeConfigValidateInvalidValue, "validating config: %w", errors.Join(errs...))
	}

	return &cfg, nil
}

// Validate checks the configuration for logical errors. It returns a
// slice of all validation errors found, collecting all issues rather
// than stopping at the first one.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validateDatabase()...)
	errs = append(errs, c.validateQdrant()...)
	errs = append(errs, c.validateEmbedding()...)
	errs = append(errs, c.validateStorage()...)

	return errs
}

func (c *Config) validateDatabase() []error {
	var errs []error

	if c.Database.Host == "" {
		errs = append(errs, bberr.Errorf(bberr.CodeConfigValidateInvalidValue, "config: database.host must not be empty"))
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		errs = append(errs, bberr.Errorf(bberr.CodeConfigValidateInvalidValue,
			"config: database.port must be between 1 and 65535, got %d", c.Database.Port))
	}
	if c.Database.Name == "" {
		errs = append(errs, bberr.Errorf(bberr.CodeConfigValidateInvalidValue, "config: database.name must not be empty"))
	}

	return errs
}

func (c *Config) validateQdrant() []error {
	var errs []error

	if c.Qdrant.Port < 1 || c.Qdrant.Port > 65535 {
		errs = append(errs, bberr.Errorf(bberr.CodeConfigValidateInvalidValue,
			"config: qdrant.port must be between 1 and 65535, got %d", c.Qdrant.Port))
	}
	if c.Qdrant.Collection == "" {
		errs = append(errs, bberr.Errorf(bberr.CodeConfigValidateInvalidValue, "config: qdrant.collection must not be empty"))
	}

	return errs
}

func (c *Config) validateEmbedding() []error {
	var errs []error

	if c.Embedding.Dimensions <= 0 {
		errs = append(errs, bberr.Errorf(bberr.CodeConfigValidateInvalidValue,
			"config: embedding.dimensions must be greater than 0, got %d", c.Embedding.Dimensions))
	}
	if c.Embedding.TextModel == "" {
		errs = append(errs, bberr.Errorf(bberr.CodeConfigValidateInvalidValue, "config: embedding.text_model must not be empty"))
	}
	if c.Embedding.RegionModel == "" {
		errs = append(errs, bberr.Errorf(bberr.CodeConfigValidateInvalidValue, "config: embedding.region_model must not be empty"))
	}

	return errs
}

func (c *Config) validateStorage() []error {
	var errs []error

	validBackends := map[string]bool{"postgres": true, "memory": true}
	if !validBackends[c.Storage.Backend] {
		errs = append(errs, bberr.Errorf(bberr.CodeConfigValidateInvalidValue,
			"config: storage.backend must be one of [postgres, memory], got %q", c.Storage.Backend))
	}

	return errs
}

// DSN renders the Postgres connection URL for the relational store.
// Credentials are escaped so passwords with reserved characters survive.
func (c *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}
	return u.String()
}
