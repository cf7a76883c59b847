package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultDateFormat != DefaultConfig().DefaultDateFormat {
		t.Fatalf("DefaultDateFormat = %q, want %q", cfg.DefaultDateFormat, DefaultConfig().DefaultDateFormat)
	}
	if cfg.DefaultLanguage != "en" {
		t.Fatalf("DefaultLanguage = %q, want %q", cfg.DefaultLanguage, "en")
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{"default_date_format": "MM/DD/YYYY"}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultDateFormat != "MM/DD/YYYY" {
		t.Fatalf("DefaultDateFormat = %q, want %q", cfg.DefaultDateFormat, "MM/DD/YYYY")
	}
	// Unset scalars keep their defaults.
	if cfg.DefaultLanguage != "en" {
		t.Fatalf("DefaultLanguage = %q, want %q", cfg.DefaultLanguage, "en")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{not json}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

func TestLoad_DisabledTools(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{"disabled_tools": ["doc_delete", "template_export"]}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.DisabledTools) != 2 {
		t.Fatalf("DisabledTools length = %d, want 2", len(cfg.DisabledTools))
	}
	if cfg.DisabledTools[0] != "doc_delete" {
		t.Errorf("DisabledTools[0] = %q, want %q", cfg.DisabledTools[0], "doc_delete")
	}
}

func TestLoadWithRepo_BothPresent(t *testing.T) {
	globalDir := t.TempDir()
	repoRoot := t.TempDir()

	globalConfig := `{"default_date_format": "MM/DD/YYYY", "allowed_paths": ["/srv/exports"]}`
	if err := os.WriteFile(filepath.Join(globalDir, "config.json"), []byte(globalConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	qdocDir := filepath.Join(repoRoot, ".qdoc")
	if err := os.MkdirAll(qdocDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	repoConfig := `{"default_date_format": "YYYY-MM-DD", "allowed_paths": ["/srv/qa-exports"]}`
	if err := os.WriteFile(filepath.Join(qdocDir, "config.json"), []byte(repoConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadWithRepo(globalDir, repoRoot)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	// Repo overrides scalar
	if cfg.DefaultDateFormat != "YYYY-MM-DD" {
		t.Errorf("DefaultDateFormat = %q, want repo override", cfg.DefaultDateFormat)
	}
	// Arrays merge
	if len(cfg.AllowedPaths) != 2 {
		t.Errorf("AllowedPaths = %v, want both entries", cfg.AllowedPaths)
	}
}

func TestLoadWithRepo_NeitherPresent(t *testing.T) {
	cfg, err := LoadWithRepo(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}
	if cfg.DefaultDateFormat != DefaultConfig().DefaultDateFormat {
		t.Errorf("DefaultDateFormat = %q, want default", cfg.DefaultDateFormat)
	}
}

func TestMerge_ScalarOverride(t *testing.T) {
	base := &Config{DefaultDateFormat: "DD/MM/YYYY", DBMaxOpenConns: 4}
	overlay := &Config{DefaultDateFormat: "YYYY-MM-DD"}

	merged := Merge(base, overlay)
	if merged.DefaultDateFormat != "YYYY-MM-DD" {
		t.Errorf("DefaultDateFormat = %q, want overlay value", merged.DefaultDateFormat)
	}
	if merged.DBMaxOpenConns != 4 {
		t.Errorf("DBMaxOpenConns = %d, want base value", merged.DBMaxOpenConns)
	}
}

func TestMerge_BooleanOr(t *testing.T) {
	merged := Merge(&Config{AllowUnsafePaths: true}, &Config{})
	if !merged.AllowUnsafePaths {
		t.Error("AllowUnsafePaths lost in merge")
	}

	merged = Merge(&Config{}, &Config{AllowUnsafePaths: true})
	if !merged.AllowUnsafePaths {
		t.Error("AllowUnsafePaths lost in merge")
	}
}

func TestMerge_ArrayMergeDedup(t *testing.T) {
	base := &Config{AllowedPaths: []string{"/a", "/b"}}
	overlay := &Config{AllowedPaths: []string{"/b", " /c "}}

	merged := Merge(base, overlay)
	want := []string{"/a", "/b", "/c"}
	if len(merged.AllowedPaths) != len(want) {
		t.Fatalf("AllowedPaths = %v, want %v", merged.AllowedPaths, want)
	}
	for i := range want {
		if merged.AllowedPaths[i] != want[i] {
			t.Errorf("AllowedPaths[%d] = %q, want %q", i, merged.AllowedPaths[i], want[i])
		}
	}
}

func TestFindRepoConfig_InParentDir(t *testing.T) {
	root := t.TempDir()
	qdocDir := filepath.Join(root, ".qdoc")
	if err := os.MkdirAll(qdocDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	configPath := filepath.Join(qdocDir, "config.json")
	if err := os.WriteFile(configPath, []byte(`{}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	if got := FindRepoConfig(nested); got != configPath {
		t.Errorf("FindRepoConfig() = %q, want %q", got, configPath)
	}
}

func TestFindRepoConfig_NotFound(t *testing.T) {
	if got := FindRepoConfig(t.TempDir()); got != "" {
		t.Errorf("FindRepoConfig() = %q, want empty", got)
	}
}
