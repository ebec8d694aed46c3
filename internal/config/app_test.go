package config

import "testing"

func TestLoadApp(t *testing.T) {
	t.Setenv("TCP_ADDR", ":9100")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadApp()
	if err != nil {
		t.Fatalf("LoadApp() error = %v", err)
	}
	if cfg.Server.TCPAddr != ":9100" || cfg.Log.Level != "warn" {
		t.Fatalf("unexpected app config: %+v", cfg)
	}
}

func TestLoadTestRequiresDSN(t *testing.T) {
	t.Setenv("TEST_POSTGRES_DSN", "")

	if _, err := LoadTest(); err == nil {
		t.Fatal("LoadTest() expected error, got nil")
	}
}

func TestLoadAppValidatesLimits(t *testing.T) {
	t.Setenv("MAX_LINE_BYTES", "8")

	if _, err := LoadApp(); err == nil {
		t.Fatal("LoadApp() expected error for tiny MAX_LINE_BYTES")
	}
}

func TestLoadTestSchemaPrefix(t *testing.T) {
	t.Setenv("TEST_POSTGRES_DSN", "postgres://localhost/gobang")
	cfg, err := LoadTest()
	if err != nil {
		t.Fatalf("LoadTest() error = %v", err)
	}
	if cfg.SchemaPrefix != "gobang_test" {
		t.Fatalf("SchemaPrefix = %q, want gobang_test", cfg.SchemaPrefix)
	}
	t.Setenv("TEST_SCHEMA_PREFIX", "ci")
	if cfg, _ = LoadTest(); cfg.SchemaPrefix != "ci" {
		t.Fatalf("SchemaPrefix = %q, want ci", cfg.SchemaPrefix)
	}
}
