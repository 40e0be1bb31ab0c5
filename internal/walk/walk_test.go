package walk

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestWalkCollectsFiles(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"a.txt", "b.go"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}
	}
	sub := filepath.Join(tmpDir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "c.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create nested file: %v", err)
	}

	var found []string
	err := Walk(context.Background(), tmpDir, DefaultOptions(), func(e Entry) error {
		if !e.Info.IsDir() {
			found = append(found, filepath.Base(e.Path))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(found) != 3 {
		t.Errorf("expected 3 files, got %d: %v", len(found), found)
	}
}

func TestWalkMaxDepth(t *testing.T) {
	tmpDir := t.TempDir()
	deep := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(deep, 0755); err != nil {
		t.Fatalf("failed to create nested dirs: %v", err)
	}
	if err := os.WriteFile(filepath.Join(deep, "leaf.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create leaf file: %v", err)
	}

	opts := DefaultOptions()
	opts.MaxDepth = 1

	var found []string
	err := Walk(context.Background(), tmpDir, opts, func(e Entry) error {
		found = append(found, e.Path)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	for _, p := range found {
		if filepath.Base(p) == "leaf.txt" {
			t.Errorf("leaf.txt should have been pruned by MaxDepth, found %v", found)
		}
	}
}

// TestWalkSkipsUnreadableSubtreeWithoutAborting is the regression test for
// a permission-denied subdirectory anywhere under a root: it must prune
// only that subtree (via OnError + SkipDir) rather than aborting the
// entire walk, per §7 ("mid-walk I/O errors: silently skipped").
func TestWalkSkipsUnreadableSubtreeWithoutAborting(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("chmod-based permission denial is not meaningful on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root bypasses directory permission bits")
	}

	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "visible.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create visible file: %v", err)
	}

	locked := filepath.Join(tmpDir, "locked")
	if err := os.Mkdir(locked, 0755); err != nil {
		t.Fatalf("failed to create locked dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(locked, "secret.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create secret file: %v", err)
	}
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatalf("failed to chmod locked dir: %v", err)
	}
	defer os.Chmod(locked, 0755) // let TempDir cleanup remove it

	after := filepath.Join(tmpDir, "after")
	if err := os.Mkdir(after, 0755); err != nil {
		t.Fatalf("failed to create after dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(after, "late.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create late file: %v", err)
	}

	var errCount int
	opts := DefaultOptions()
	opts.OnError = func(path string, err error) { errCount++ }

	var found []string
	err := Walk(context.Background(), tmpDir, opts, func(e Entry) error {
		if !e.Info.IsDir() {
			found = append(found, filepath.Base(e.Path))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk aborted instead of pruning the unreadable subtree: %v", err)
	}
	if errCount == 0 {
		t.Error("expected OnError to be called for the unreadable subtree")
	}

	var sawVisible, sawLate bool
	for _, name := range found {
		if name == "visible.txt" {
			sawVisible = true
		}
		if name == "late.txt" {
			sawLate = true
		}
	}
	if !sawVisible {
		t.Errorf("expected visible.txt to be found, got %v", found)
	}
	if !sawLate {
		t.Errorf("expected late.txt (after the locked subtree) to still be found, got %v", found)
	}
}

func TestWalkContextCancellation(t *testing.T) {
	tmpDir := t.TempDir()
	for i := 0; i < 10; i++ {
		name := filepath.Join(tmpDir, string(rune('a'+i))+".txt")
		if err := os.WriteFile(name, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	var count int
	err := Walk(ctx, tmpDir, DefaultOptions(), func(e Entry) error {
		count++
		if count == 3 {
			cancel()
		}
		return nil
	})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{".", false},
		{"..", false},
		{".hidden", true},
		{"visible.txt", false},
		{".git", true},
	}
	for _, tt := range tests {
		if got := isHidden(tt.name); got != tt.want {
			t.Errorf("isHidden(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
