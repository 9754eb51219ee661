package audio

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
)

// speechCommand describes a CLI synthesizer
type speechCommand struct {
	name string
	argv func(text string) []string
}

// Priority: espeak-ng > espeak > say (macOS) > spd-say
var speechCommands = []speechCommand{
	{name: "espeak-ng", argv: func(t string) []string { return []string{"-s", "150", t} }},
	{name: "espeak", argv: func(t string) []string { return []string{"-s", "150", t} }},
	{name: "say", argv: func(t string) []string { return []string{t} }},
	{name: "spd-say", argv: func(t string) []string { return []string{"--wait", t} }},
}

// SpeechEngine speaks text through an external synthesizer process
// A zero SpeechEngine is valid and never ready
type SpeechEngine struct {
	name string
	path string
	argv func(string) []string

	mu  sync.Mutex
	cmd *exec.Cmd
}

// DetectSpeech searches PATH for a supported synthesizer
func DetectSpeech() (*SpeechEngine, error) {
	for _, c := range speechCommands {
		if path, err := exec.LookPath(c.name); err == nil {
			return newSpeechEngine(c.name, path, c.argv), nil
		}
	}
	return &SpeechEngine{}, ErrNoSpeechEngine
}

func newSpeechEngine(name, path string, argv func(string) []string) *SpeechEngine {
	return &SpeechEngine{name: name, path: path, argv: argv}
}

// Name returns the synthesizer command name
func (e *SpeechEngine) Name() string {
	return e.name
}

// Ready reports whether a synthesizer was found
func (e *SpeechEngine) Ready() bool {
	return e != nil && e.path != ""
}

// Speak runs the synthesizer; cancelling ctx kills the process
func (e *SpeechEngine) Speak(ctx context.Context, text string) <-chan error {
	done := make(chan error, 1)
	if !e.Ready() {
		done <- ErrNoSpeechEngine
		return done
	}

	cmd := exec.CommandContext(ctx, e.path, e.argv(text)...)
	if err := cmd.Start(); err != nil {
		done <- fmt.Errorf("start %s: %w", e.name, err)
		return done
	}

	e.mu.Lock()
	e.cmd = cmd
	e.mu.Unlock()

	go func() {
		err := cmd.Wait()
		e.mu.Lock()
		if e.cmd == cmd {
			e.cmd = nil
		}
		e.mu.Unlock()
		done <- err
	}()
	return done
}

// Stop kills the running utterance, if any
func (e *SpeechEngine) Stop() {
	if e == nil {
		return
	}
	e.mu.Lock()
	cmd := e.cmd
	e.mu.Unlock()
	if cmd != nil && cmd.Process != nil {
		cmd.Process.Kill()
	}
}
