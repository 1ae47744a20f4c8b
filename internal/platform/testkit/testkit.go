// Package testkit holds the small assertions and seam helpers shared by package tests
package testkit

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// MustPanic fails the test unless fn panics and returns the recovered value
func MustPanic(t testing.TB, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Fatalf("expected a panic")
		}
	}()
	fn()
	return nil
}

// MustPanicWith is MustPanic that also requires the panic value to mention want
func MustPanicWith(t testing.TB, want string, fn func()) {
	t.Helper()
	got := fmt.Sprint(MustPanic(t, fn))
	if !strings.Contains(got, want) {
		t.Fatalf("panic %q does not mention %q", got, want)
	}
}

// MustNotPanic fails the test if fn panics
func MustNotPanic(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// maxEcho bounds how much of a long haystack MustContain prints
const maxEcho = 2048

// MustContain fails unless haystack contains needle; log output can be long so the echo is clipped
func MustContain(t testing.TB, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		return
	}
	shown := haystack
	if len(shown) > maxEcho {
		shown = shown[:maxEcho] + fmt.Sprintf("... (%d more bytes)", len(haystack)-maxEcho)
	}
	t.Fatalf("missing %q in:\n%s", needle, shown)
}

// Swap replaces *target for the rest of the test and restores it on cleanup
func Swap[T any](t testing.TB, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

var serial sync.Mutex

// Serial holds a process wide lock until the test ends
// tests that swap package level seams or the global logger take it
func Serial(t testing.TB) {
	t.Helper()
	serial.Lock()
	t.Cleanup(serial.Unlock)
}
