package atomicfile

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestWriteFileCreatesAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	if err := WriteFile(path, []byte(`{"v":1}`), 0o644); err != nil {
		t.Fatalf("WriteFile(create): %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != `{"v":1}` {
		t.Fatalf("content = %q, want %q", got, `{"v":1}`)
	}

	if err := WriteFile(path, []byte(`{"v":2}`), 0o644); err != nil {
		t.Fatalf("WriteFile(replace): %v", err)
	}
	got, _ = os.ReadFile(path)
	if string(got) != `{"v":2}` {
		t.Fatalf("content after replace = %q, want %q", got, `{"v":2}`)
	}
}

func TestWriteFileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "state.json")
	if err := WriteFile(path, []byte("x"), 0o644); err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
}

func TestWriteFileLeavesNoTempOnSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	if err := WriteFile(path, []byte("ok"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "state.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("directory contents = %v, want only state.json", names)
	}
}

// Readers racing a writer must always observe one complete payload, never a
// truncated or mixed one.
func TestWriteFileReadersNeverSeePartialContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	a := bytes.Repeat([]byte("aaaaaaaa\n"), 1<<10)
	b := bytes.Repeat([]byte("bbbbbbbb\n"), 1<<11)

	if err := WriteFile(path, a, 0o644); err != nil {
		t.Fatalf("seed write: %v", err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		for i := 0; i < 200; i++ {
			p := a
			if i%2 == 0 {
				p = b
			}
			if err := WriteFile(path, p, 0o644); err != nil {
				t.Errorf("concurrent write: %v", err)
				return
			}
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				got, err := os.ReadFile(path)
				if err != nil {
					t.Errorf("concurrent read: %v", err)
					return
				}
				if !bytes.Equal(got, a) && !bytes.Equal(got, b) {
					t.Errorf("read %d bytes, want a complete payload of %d or %d", len(got), len(a), len(b))
					return
				}
			}
		}()
	}

	wg.Wait()
}
