package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcher_Debounce(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "femur.stl")
	other := filepath.Join(dir, "notes.txt")
	for _, f := range []string{watched, other} {
		if err := os.WriteFile(f, []byte("solid"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	fw, err := NewFileWatcher(50 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer fw.Close()
	if err := fw.Watch([]string{watched}); err != nil {
		t.Fatal(err)
	}

	changes := make(chan string, 8)
	go fw.Run(func(changed string) { changes <- changed }, func(err error) { t.Log(err) })

	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(watched, []byte("solid x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	want, _ := filepath.Abs(watched)
	select {
	case got := <-changes:
		if got != want {
			t.Errorf("changed = %q, want %q", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	// the burst of writes is reported once
	select {
	case got := <-changes:
		t.Errorf("unexpected second notification for %q", got)
	case <-time.After(300 * time.Millisecond):
	}
}
