package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophdiary/internal/flagx"
	"github.com/dmitrijs2005/gophdiary/internal/timex"
)

// JsonConfig is the on-disk layout. Durations accept "10s" or nanoseconds.
type JsonConfig struct {
	HTTPAddr       string         `json:"http_addr"`
	HealthAddr     string         `json:"health_addr"`
	HealthInterval timex.Duration `json:"health_interval"`
	Storage        string         `json:"storage"`
	LocalDriver    string         `json:"local_driver"`
	LocalDSN       string         `json:"local_dsn"`
	S3AccessKey    string         `json:"s3_access_key"`
	S3SecretKey    string         `json:"s3_secret_key"`
	S3Bucket       string         `json:"s3_bucket"`
	S3Region       string         `json:"s3_region"`
	S3Endpoint     string         `json:"s3_endpoint"`
	S3Prefix       string         `json:"s3_prefix"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays the file named by -c/-config. Keys missing from the
// file keep their current value.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&config.HTTPAddr, c.HTTPAddr)
	set(&config.HealthAddr, c.HealthAddr)
	set(&config.Storage, c.Storage)
	set(&config.LocalDriver, c.LocalDriver)
	set(&config.LocalDSN, c.LocalDSN)
	set(&config.S3AccessKey, c.S3AccessKey)
	set(&config.S3SecretKey, c.S3SecretKey)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3Endpoint, c.S3Endpoint)
	set(&config.S3Prefix, c.S3Prefix)
	set(&config.LogLevel, c.LogLevel)
	if c.HealthInterval.Duration > 0 {
		config.HealthInterval = c.HealthInterval.Duration
	}
}
