package config

import (
	"os"
	"testing"
)

func unsetStoreEnv() {
	for _, k := range []string{
		"NOTENEST_DB_DRIVER", "NOTENEST_SQLITE_PATH", "NOTENEST_POSTGRES_DSN",
		"NOTENEST_MONGO_URI", "NOTENEST_CLASSIFIER", "NOTENEST_CLASSIFIER_TIMEOUT_MS",
	} {
		_ = os.Unsetenv(k)
	}
}

func TestConfigLoad_Defaults(t *testing.T) {
	unsetStoreEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "sqlite" || cfg.SQLitePath != "data/notenest.db" {
		t.Fatalf("unexpected store defaults: %+v", cfg)
	}
	if cfg.Classifier != "keyword" || cfg.ClassifierTimeoutMs != 4000 {
		t.Fatalf("unexpected classifier defaults: %+v", cfg)
	}
	if cfg.GetHTTPAddr() != ":8080" {
		t.Fatalf("unexpected http addr %s", cfg.GetHTTPAddr())
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	unsetStoreEnv()
	_ = os.Setenv("NOTENEST_CLASSIFIER", "ollama")
	_ = os.Setenv("NOTENEST_CLASSIFIER_TIMEOUT_MS", "1500")
	defer unsetStoreEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.Classifier != "ollama" || cfg.ClassifierTimeoutMs != 1500 {
		t.Fatalf("env override failed: %+v", cfg)
	}
}

func TestResolveDefaults_PostgresRequiresDSN(t *testing.T) {
	unsetStoreEnv()
	_ = os.Setenv("NOTENEST_DB_DRIVER", "postgres")
	defer unsetStoreEnv()

	if _, err := New(); err == nil {
		t.Fatalf("expected error when postgres DSN missing")
	}
}

func TestResolveDefaults_RejectsUnknown(t *testing.T) {
	cfg := NewForTesting()
	cfg.DBDriver = "spanner"
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatalf("expected unsupported driver error")
	}

	cfg = NewForTesting()
	cfg.Classifier = "magic"
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatalf("expected unsupported classifier error")
	}
}

func TestResolveDefaults_Mongo(t *testing.T) {
	cfg := NewForTesting()
	cfg.DBDriver = "mongo"
	cfg.MongoURI = "mongodb://localhost:27017"
	cfg.MongoDatabase = ""
	if err := cfg.ResolveDefaults(); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.MongoDatabase != "notenest" {
		t.Fatalf("expected default database, got %q", cfg.MongoDatabase)
	}
}
