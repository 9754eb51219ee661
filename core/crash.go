// Package core holds process-level helpers shared by the tick loop and the host
package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

var (
	hookMu    sync.Mutex
	crashHook func()
	crashOut  io.Writer = os.Stderr
	crashExit           = os.Exit
)

// SetCrashHook registers cleanup run before a crash report, e.g. restoring the terminal
func SetCrashHook(fn func()) {
	hookMu.Lock()
	defer hookMu.Unlock()
	crashHook = fn
}

// HandleCrash runs the cleanup hook, prints the panic and stack, and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	hookMu.Lock()
	hook := crashHook
	hookMu.Unlock()
	if hook != nil {
		hook()
	}

	fmt.Fprintf(crashOut, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", debug.Stack())
	crashExit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword so the terminal is restored on crash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
