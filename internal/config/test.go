package config

import "github.com/caarlos0/env/v11"

// TestConfig configures database-backed tests. They skip when it fails to
// load. Each test gets its own schema named SchemaPrefix plus a timestamp.
type TestConfig struct {
	TestPostgresDSN string `env:"TEST_POSTGRES_DSN,required,notEmpty"`
	SchemaPrefix    string `env:"TEST_SCHEMA_PREFIX" envDefault:"gobang_test"`
}

func LoadTest() (TestConfig, error) {
	var cfg TestConfig
	err := env.Parse(&cfg)
	return cfg, err
}
