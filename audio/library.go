package audio

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gopxl/beep/wav"
)

// Library resolves narration clips from a directory of wav files keyed by file stem
type Library struct {
	dir   string
	clips map[string]Clip
	durs  map[string]time.Duration
}

// NewLibrary scans dir; an empty dir yields an empty library
// Files that fail to decode are skipped
func NewLibrary(dir string) (*Library, error) {
	l := &Library{
		dir:   dir,
		clips: make(map[string]Clip),
		durs:  make(map[string]time.Duration),
	}
	if dir == "" {
		return l, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read clip dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		d, err := inspectWAV(path)
		if err != nil {
			slog.Debug("skipping clip", "path", path, "err", err)
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		l.clips[name] = Clip{Name: name, Path: path}
		l.durs[name] = d
	}
	return l, nil
}

// inspectWAV validates a wav header and returns the clip length
func inspectWAV(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	s, format, err := wav.Decode(f)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotWAV, err)
	}
	return format.SampleRate.D(s.Len()), nil
}

// Resolve returns the clip named name
func (l *Library) Resolve(name string) (Clip, bool) {
	c, ok := l.clips[name]
	return c, ok
}

// Duration returns the decoded length of a clip
func (l *Library) Duration(name string) time.Duration {
	return l.durs[name]
}

// Names lists clip names in order
func (l *Library) Names() []string {
	out := make([]string, 0, len(l.clips))
	for name := range l.clips {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the clip count
func (l *Library) Len() int {
	return len(l.clips)
}
