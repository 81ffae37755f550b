package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	m "strata.dev/pkg/strata/internal/model"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "main.py"), "x = 1\n")

	nestedDir := filepath.Join(root, "pkg")
	mustMkdir(t, nestedDir)
	child := filepath.Join(nestedDir, "__init__.py")
	writeTestFile(t, child, "")

	var visited []string
	err := adapter.Walk(context.Background(), m.Path(root), func(path string, _ os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		visited = append(visited, path)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	for _, want := range []string{filepath.Join(root, "main.py"), nestedDir, child} {
		if !containsPath(visited, want) {
			t.Fatalf("Walk() did not visit %s", want)
		}
	}
}

func TestLocalSourceFSAdapter_Walk_ContextCancellation(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := adapter.Walk(ctx, m.Path(t.TempDir()), func(string, os.FileInfo, error) error {
		t.Fatalf("callback must not run on a cancelled context")
		return nil
	})
	if err == nil {
		t.Fatalf("Walk() expected context error")
	}
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "mod.py")
	content := "import __strict__\nx = 1\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(context.Background(), m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != content {
		t.Fatalf("ReadFile() = %q, want %q", string(got), content)
	}
}

func TestLocalSourceFSAdapter_HashFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "mod.py")
	content := []byte("import __static__\n")
	writeTestBytes(t, path, content)

	expected := fmt.Sprintf("%x", sha256.Sum256(content))

	hash, err := adapter.HashFile(context.Background(), m.Path(path))
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}

	if hash != expected {
		t.Fatalf("HashFile() = %s, want %s", hash, expected)
	}
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "mod.py")
	writeTestFile(t, path, "")

	info, err := adapter.FileInfo(context.Background(), m.Path(path))
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}

	if info.IsDir() {
		t.Fatalf("FileInfo() reported file as directory")
	}

	_, err = adapter.FileInfo(context.Background(), m.Path(filepath.Join(root, "missing.py")))
	if !os.IsNotExist(err) {
		t.Fatalf("FileInfo() error = %v, want not-exist", err)
	}
}

func TestLocalSourceFSAdapter_WriteFileCreatesParents(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	path := filepath.Join(t.TempDir(), "reports", "nested", "modules.yaml")
	if err := adapter.WriteFile(context.Background(), m.Path(path), []byte("version: 1\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("WriteFile() did not create file: %v", err)
	}
}

func TestLocalSourceFSAdapter_PathHelpers(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	ctx := context.Background()

	base := m.Path("/srv/lib")
	target := m.Path("/srv/lib/pkg/sub/mod.py")

	rel, err := adapter.RelPath(ctx, base, target)
	if err != nil {
		t.Fatalf("RelPath() error = %v", err)
	}

	if string(rel) != filepath.Join("pkg", "sub", "mod.py") {
		t.Fatalf("RelPath() = %s, want %s", rel, filepath.Join("pkg", "sub", "mod.py"))
	}

	joined := adapter.JoinPath(ctx, "/srv", "lib", "mod.py")
	if string(joined) != filepath.Join("/srv", "lib", "mod.py") {
		t.Fatalf("JoinPath() = %s, want %s", joined, filepath.Join("/srv", "lib", "mod.py"))
	}
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
