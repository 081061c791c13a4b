// Package config assembles runtime settings for the diary binaries from
// defaults, an optional JSON file, DIARY_* environment variables and
// command-line flags, applied in that order.
package config

import (
	"os"
	"time"
)

// Storage modes.
const (
	StorageLocal  = "local"
	StorageRemote = "remote"
)

// Config holds runtime settings shared by the CLI and the server.
//
// Storage selects the backend: "local" keeps the diary in a key-value store
// chosen by LocalDriver/LocalDSN, "remote" keeps one object per entry in an
// S3 compatible bucket.
type Config struct {
	HTTPAddr       string        `split_words:"true"`
	HealthAddr     string        `split_words:"true"`
	HealthInterval time.Duration `split_words:"true"`

	Storage     string `split_words:"true"`
	LocalDriver string `split_words:"true"`
	LocalDSN    string `split_words:"true"`

	S3AccessKey string `split_words:"true"`
	S3SecretKey string `split_words:"true"`
	S3Bucket    string `split_words:"true"`
	S3Region    string `split_words:"true"`
	S3Endpoint  string `split_words:"true"`
	S3Prefix    string `split_words:"true"`

	LogLevel string `split_words:"true"`
}

// LoadDefaults sets development defaults: a SQLite file in the working
// directory and a local MinIO for remote mode.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.HealthAddr = ":50052"
	c.HealthInterval = 10 * time.Second
	c.Storage = StorageLocal
	c.LocalDriver = "sqlite"
	c.LocalDSN = "gophdiary.db"
	c.S3AccessKey = "admin"
	c.S3SecretKey = "secretpassword"
	c.S3Bucket = "diary"
	c.S3Region = "us-east-1"
	c.S3Endpoint = "http://127.0.0.1:9000"
	c.LogLevel = "info"
}

// LoadConfig builds a Config from os.Args and the environment. It panics
// on an unreadable config file or malformed values.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseEnv(cfg)
	parseFlags(cfg, os.Args[1:])
	return cfg
}
