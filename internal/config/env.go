package config

import (
	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/kelseyhightower/envconfig"
)

// parseEnv overlays DIARY_* variables named after the fields in upper
// snake case, e.g. DIARY_STORAGE=remote or
// DIARY_HEALTH_INTERVAL=30s. Unset variables leave fields as they are.
func parseEnv(config *Config) {
	if err := envconfig.Process(common.EnvPrefix, config); err != nil {
		panic(err)
	}
}
