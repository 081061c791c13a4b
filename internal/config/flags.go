package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/gophdiary/internal/flagx"
)

// parseFlags overlays command-line flags:
//
//	-a string   HTTP API listen address
//	-k string   gRPC health listen address
//	-i int      health probe interval, seconds
//	-m string   storage mode: local or remote
//	-l string   local driver: sqlite, postgres, redis or memory
//	-d string   local DSN (file path, postgres DSN or redis:// URL)
//	-u string   S3 access key
//	-p string   S3 secret key
//	-b string   S3 bucket
//	-r string   S3 region
//	-e string   S3 endpoint
//	-x string   S3 key prefix
//	-v string   log level
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, "-a", "-k", "-i", "-m", "-l", "-d", "-u", "-p", "-b", "-r", "-e", "-x", "-v")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP API address")
	fs.StringVar(&config.HealthAddr, "k", config.HealthAddr, "gRPC health address")
	interval := fs.Int("i", int(config.HealthInterval.Seconds()), "health probe interval (in seconds)")

	fs.StringVar(&config.Storage, "m", config.Storage, "storage mode (local|remote)")
	fs.StringVar(&config.LocalDriver, "l", config.LocalDriver, "local storage driver")
	fs.StringVar(&config.LocalDSN, "d", config.LocalDSN, "local storage DSN")

	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3Endpoint, "e", config.S3Endpoint, "S3 endpoint")
	fs.StringVar(&config.S3Prefix, "x", config.S3Prefix, "S3 key prefix")

	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			config.HealthInterval = time.Duration(*interval) * time.Second
		}
	})
}
