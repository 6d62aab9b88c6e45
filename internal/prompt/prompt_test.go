package prompt

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/bilisum/internal/logger"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lecture.md"), []byte("You are a note taker."), 0644); err != nil {
		t.Fatal(err)
	}

	text, err := New(dir).Load(context.Background(), "lecture")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if text != "You are a note taker." {
		t.Errorf("Load() = %q", text)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := New(t.TempDir()).Load(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestStatic(t *testing.T) {
	if got := Static("abc").Prompt(); got != "abc" {
		t.Errorf("Prompt() = %q", got)
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.md")
	if err := os.WriteFile(path, []byte("v1"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := New(dir)
	w, err := NewWatcher(loader, "p", "v1", logger.NewNop())
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// Give the watch loop a moment to start.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("v2"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if w.Prompt() == "v2" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("Prompt() = %q after write, want v2", w.Prompt())
}

func TestWatcherShutdownReportsCancellation(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "p.md"), []byte("v1"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(New(dir), "p", "v1", logger.NewNop())
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	// Cancel, then close, the same order the CLI unwinds its defers in.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	for i := 0; i < 20; i++ {
		if err := w.Start(ctx); !errors.Is(err, context.Canceled) {
			t.Fatalf("Start() error = %v, want context.Canceled", err)
		}
	}
}

func TestReloadKeepsPreviousOnEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.md")
	if err := os.WriteFile(path, []byte("   "), 0644); err != nil {
		t.Fatal(err)
	}

	w := &implWatcher{loader: New(dir), name: "p", path: path, logger: logger.NewNop(), current: "v1"}
	w.reload(context.Background())

	if w.Prompt() != "v1" {
		t.Errorf("Prompt() = %q, want v1", w.Prompt())
	}
}
