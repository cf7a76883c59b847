package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qmskit/qdoc/internal/config"
	"github.com/qmskit/qdoc/internal/errors"
)

func TestValidateExportPath_TraversalRejected(t *testing.T) {
	cfg := config.DefaultConfig()

	tests := []struct {
		name string
		path string
	}{
		{"parent traversal", "../report.docx"},
		{"deep traversal", "../../etc/report.pdf"},
		{"mid-path traversal", "/tmp/../etc/report.txt"},
		{"hidden in path", "/tmp/safe/../../../etc/shadow.csv"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateExportPath(tc.path, cfg)
			if err == nil {
				t.Error("expected error for path traversal, got nil")
			}
			if !errors.Is(err, errors.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got: %v", err)
			}
		})
	}
}

func TestValidateExportPath_ExtensionRequired(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.AllowUnsafePaths = true // Allow any directory

	tests := []struct {
		name string
		path string
	}{
		{"no extension", "/tmp/report"},
		{"wrong extension", "/tmp/report.exe"},
		{"html extension", "/tmp/report.html"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateExportPath(tc.path, cfg)
			if err == nil {
				t.Error("expected error for wrong extension, got nil")
			}
			if !errors.Is(err, errors.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got: %v", err)
			}
		})
	}
}

func TestValidateExportPath_AllFormatsAccepted(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.AllowUnsafePaths = true

	for _, ext := range []string{".docx", ".pdf", ".txt", ".xlsx", ".csv", ".json", ".xml"} {
		if err := ValidateExportPath("/tmp/report"+ext, cfg); err != nil {
			t.Errorf("ValidateExportPath(%s) error = %v", ext, err)
		}
	}
}

func TestValidateExportPath_DirectoryRestriction(t *testing.T) {
	cfg := config.DefaultConfig()
	// Default config: only ~/.qdoc/exports allowed

	err := ValidateExportPath("/tmp/report.docx", cfg)
	if err == nil {
		t.Error("expected error for path outside allowed directories, got nil")
	}
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got: %v", err)
	}
}

func TestValidateExportPath_AllowedPaths(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.AllowedPaths = []string{tmpDir}

	if err := ValidateExportPath(filepath.Join(tmpDir, "report.pdf"), cfg); err != nil {
		t.Errorf("ValidateExportPath() in allowed dir error = %v", err)
	}

	// Relative allowed_paths entries are ignored.
	cfg.AllowedPaths = []string{"relative/dir"}
	err := ValidateExportPath(filepath.Join(tmpDir, "report.pdf"), cfg)
	if err == nil {
		t.Error("relative allowed path should not grant access")
	}
}

func TestValidateExportPath_NestedPathRejected(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.AllowedPaths = []string{tmpDir}

	nested := filepath.Join(tmpDir, "sub")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	// Files must sit directly in the allowed directory, not a subdirectory.
	err := ValidateExportPath(filepath.Join(nested, "report.docx"), cfg)
	if err == nil {
		t.Error("expected error for nested path, got nil")
	}
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got: %v", err)
	}
}

func TestValidateExportPath_SymlinkFileRejected(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.AllowedPaths = []string{tmpDir}

	target := filepath.Join(tmpDir, "target.txt")
	if err := os.WriteFile(target, []byte("x"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	link := filepath.Join(tmpDir, "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	err := ValidateExportPath(link, cfg)
	if err == nil {
		t.Error("expected error for symlink path, got nil")
	}
}

func TestValidateExportPath_SymlinkRejected_EvenWithUnsafePaths(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.AllowUnsafePaths = true

	target := filepath.Join(tmpDir, "target.txt")
	if err := os.WriteFile(target, []byte("x"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	link := filepath.Join(tmpDir, "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	err := ValidateExportPath(link, cfg)
	if err == nil {
		t.Error("symlink must be rejected even with allow_unsafe_paths")
	}
}

func TestValidateExportPath_SymlinkedParentRejected(t *testing.T) {
	tmpDir := t.TempDir()
	real := filepath.Join(tmpDir, "real")
	if err := os.MkdirAll(real, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	linkDir := filepath.Join(tmpDir, "linkdir")
	if err := os.Symlink(real, linkDir); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.AllowedPaths = []string{real}

	// Writing through the symlinked directory name must not pass.
	err := ValidateExportPath(filepath.Join(linkDir, "report.txt"), cfg)
	if err == nil {
		t.Error("expected error for symlinked parent directory, got nil")
	}
}

func TestValidateExportPath_EmptyPath(t *testing.T) {
	err := ValidateExportPath("", config.DefaultConfig())
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got: %v", err)
	}
}

func TestContainsTraversal(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"../file.txt", true},
		{"/a/../b.txt", true},
		{"..", true},
		{"/a/b/file.txt", false},
		{"/a/..b/file.txt", false},
		{"file..txt", false},
	}

	for _, tc := range tests {
		if got := containsTraversal(tc.path); got != tc.want {
			t.Errorf("containsTraversal(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
