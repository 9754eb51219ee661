package audio

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

func writeWAV(t *testing.T, path string, d time.Duration) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, generators.Silence(format.SampleRate.N(d)), format); err != nil {
		t.Fatal(err)
	}
}

// TestLibraryScan verifies wav files resolve by stem and junk is skipped
func TestLibraryScan(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "win.wav"), 250*time.Millisecond)
	writeWAV(t, filepath.Join(dir, "find_3.WAV"), 100*time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "broken.wav"), []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	lib, err := NewLibrary(dir)
	if err != nil {
		t.Fatalf("Expected scan to succeed, got %v", err)
	}

	if names := lib.Names(); !slices.Equal(names, []string{"find_3", "win"}) {
		t.Errorf("Expected [find_3 win], got %v", names)
	}

	clip, ok := lib.Resolve("win")
	if !ok || clip.Path != filepath.Join(dir, "win.wav") {
		t.Errorf("Expected win clip, got %+v ok=%v", clip, ok)
	}
	if d := lib.Duration("win"); d < 240*time.Millisecond || d > 260*time.Millisecond {
		t.Errorf("Expected ~250ms, got %v", d)
	}
	if _, ok := lib.Resolve("broken"); ok {
		t.Error("Expected broken clip skipped")
	}
}

// TestLibraryMissingDir verifies a bad directory is an error and empty dir is empty
func TestLibraryMissingDir(t *testing.T) {
	if _, err := NewLibrary(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected error for missing directory")
	}

	lib, err := NewLibrary("")
	if err != nil || lib.Len() != 0 {
		t.Errorf("Expected empty library, got len=%d err=%v", lib.Len(), err)
	}
}

// TestProbeNotWAV verifies decode failures wrap ErrNotWAV
func TestProbeNotWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.wav")
	if err := os.WriteFile(path, []byte("RIFFjunk"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := inspectWAV(path); !errors.Is(err, ErrNotWAV) {
		t.Errorf("Expected ErrNotWAV, got %v", err)
	}
}
