package config

import (
	"os"
	"strconv"
)

// Config holds policyctl and library configuration.
type Config struct {
	LogLevel  string
	LogFormat string
	Source    SourceConfig
	OTel      OTelConfig
}

// SourceConfig selects where catalogue documents are read from.
type SourceConfig struct {
	Type       string // "fs", "s3" or "gcs"
	Dir        string
	S3Bucket   string
	S3Region   string
	S3Endpoint string
	S3Prefix   string
	GCSBucket  string
	GCSPrefix  string
}

// OTelConfig controls telemetry export.
type OTelConfig struct {
	Enabled     bool
	Endpoint    string
	Insecure    bool
	ServiceName string
}

// Load loads configuration from environment variables.
func Load() *Config {
	region := os.Getenv("CATALOGUE_S3_REGION")
	if region == "" {
		region = getenv("AWS_REGION", "eu-west-2")
	}

	return &Config{
		LogLevel:  getenv("LOG_LEVEL", "INFO"),
		LogFormat: getenv("LOG_FORMAT", "text"),
		Source: SourceConfig{
			Type:       getenv("CATALOGUE_SOURCE_TYPE", "fs"),
			Dir:        getenv("CATALOGUE_DIR", "policies"),
			S3Bucket:   os.Getenv("CATALOGUE_S3_BUCKET"),
			S3Region:   region,
			S3Endpoint: os.Getenv("CATALOGUE_S3_ENDPOINT"),
			S3Prefix:   os.Getenv("CATALOGUE_S3_PREFIX"),
			GCSBucket:  os.Getenv("CATALOGUE_GCS_BUCKET"),
			GCSPrefix:  os.Getenv("CATALOGUE_GCS_PREFIX"),
		},
		OTel: OTelConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "licence-policy"),
		},
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
