package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.ChatModel != DefaultChatModel {
		t.Errorf("ChatModel = %q, want %q", cfg.ChatModel, DefaultChatModel)
	}
	if cfg.StoreBackend != StoreSQLite {
		t.Errorf("StoreBackend = %q, want sqlite", cfg.StoreBackend)
	}
	if cfg.ExportWorkers != DefaultExportWorkers {
		t.Errorf("ExportWorkers = %d, want %d", cfg.ExportWorkers, DefaultExportWorkers)
	}
}

func TestLoadPortValidation(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Error("Load() expected error for non-numeric PORT")
	}

	t.Setenv("PORT", "70000")
	if _, err := Load(); err == nil {
		t.Error("Load() expected error for out-of-range PORT")
	}

	t.Setenv("PORT", "9090")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
}

func TestLoadSupabaseBackendRequiresCredentials(t *testing.T) {
	t.Setenv("STORE_BACKEND", "supabase")
	if _, err := Load(); err == nil {
		t.Error("Load() expected error for supabase backend without credentials")
	}

	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.StoreBackend != StoreSupabase {
		t.Errorf("StoreBackend = %q, want supabase", cfg.StoreBackend)
	}
}

func TestLoadUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mongodb")
	if _, err := Load(); err == nil {
		t.Error("Load() expected error for unknown backend")
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		UploadsDir: filepath.Join(dir, "uploads"),
		OutputsDir: filepath.Join(dir, "outputs"),
		DataDir:    filepath.Join(dir, "data"),
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories() error: %v", err)
	}

	for _, d := range []string{cfg.UploadsDir, cfg.OutputsDir, cfg.DataDir} {
		info, err := os.Stat(d)
		if err != nil {
			t.Errorf("Stat(%s) error: %v", d, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", d)
		}
	}
}
