package common

const (
	// LocalStorageKey is the single key holding the serialized entry list
	// in key-value backends.
	LocalStorageKey = "diaries"

	// EnvelopeVersion is written into every export file.
	EnvelopeVersion = "1.0"

	// EnvPrefix prefixes every environment variable read by the config loader.
	EnvPrefix = "DIARY"
)
