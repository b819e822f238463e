package media

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSaveAndDelete(t *testing.T) {
	svc, err := NewService(t.TempDir())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	path, err := svc.Save("u1", "avatar.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasPrefix(path, "/images/u1-") || !strings.HasSuffix(path, ".png") {
		t.Errorf("unexpected public path %s", path)
	}

	stored := filepath.Join(svc.dir, strings.TrimPrefix(path, "/images/"))
	data, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("stored content mismatch: %q", data)
	}

	if err := svc.Delete(path); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(stored); !os.IsNotExist(err) {
		t.Error("file should be deleted")
	}
}

func TestDeleteRejectsTraversal(t *testing.T) {
	svc, err := NewService(t.TempDir())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	outside := filepath.Join(svc.dir, "..", "secret.txt")
	if err := os.WriteFile(outside, []byte("keep me"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	for _, p := range []string{
		"/images/../secret.txt",
		"/images/..%2Fsecret.txt/../secret.txt",
		"../secret.txt",
	} {
		if err := svc.Delete(p); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("Delete(%q): expected ErrInvalidPath, got %v", p, err)
		}
	}

	if _, err := os.Stat(outside); err != nil {
		t.Error("file outside images dir must survive")
	}
}

func TestDeleteAllForUser(t *testing.T) {
	svc, err := NewService(t.TempDir())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	svc.now = stubClock()
	p1, _ := svc.Save("u1", "a.png", strings.NewReader("a"))
	p2, _ := svc.Save("u1", "b.jpg", strings.NewReader("b"))
	p3, _ := svc.Save("u2", "c.png", strings.NewReader("c"))

	if err := svc.DeleteAllForUser("u1"); err != nil {
		t.Fatalf("DeleteAllForUser failed: %v", err)
	}

	for _, p := range []string{p1, p2} {
		stored := filepath.Join(svc.dir, strings.TrimPrefix(p, "/images/"))
		if _, err := os.Stat(stored); !os.IsNotExist(err) {
			t.Errorf("%s should be deleted", p)
		}
	}
	stored := filepath.Join(svc.dir, strings.TrimPrefix(p3, "/images/"))
	if _, err := os.Stat(stored); err != nil {
		t.Error("other user's image must survive")
	}
}

// stubClock returns a monotonically increasing fake clock so file names
// never collide within a test
func stubClock() func() time.Time {
	base := time.Now()
	var n int64
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Millisecond)
	}
}
