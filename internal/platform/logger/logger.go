// Package logger wraps zerolog with process-wide defaults and request scoped children
package logger

import (
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"feedbackd/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the project-wide logging type
type Logger = zerolog.Logger

// Options configures the logger
type Options struct {
	Level     string // trace..panic, "warning" is accepted
	Format    string // "console" or "json"
	Service   string
	Component string
	Writer    io.Writer // os.Stdout when nil

	WithCaller   bool
	SampleEvery  int // keep 1 in N lines when > 1
	StaticFields map[string]string
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_COMPONENT, LOG_CALLER and LOG_SAMPLE_EVERY
func FromEnv() Options { return OptionsFrom(raw.New()) }

// OptionsFrom is FromEnv over any raw source
func OptionsFrom(rc raw.Conf) Options {
	rc = rc.Prefix("LOG_")
	return Options{
		Level:       rc.Lower("LEVEL", "info"),
		Format:      rc.Lower("FORMAT", "console"),
		Service:     rc.String("SERVICE", "feedbackd"),
		Component:   rc.String("COMPONENT", ""),
		WithCaller:  rc.Bool("CALLER", false),
		SampleEvery: rc.Int("SAMPLE_EVERY", 0),
	}
}

var (
	installOnce sync.Once
	root        atomic.Pointer[Logger]
)

// Init installs the root logger; later calls are ignored
func Init(opt Options) {
	installOnce.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := New(opt)
		root.Store(&l)
	})
}

// Get returns the root logger, building it from the environment if Init was never called
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// New builds a standalone logger from opt; the root is left alone
func New(opt Options) Logger {
	out := opt.Writer
	if out == nil {
		out = os.Stdout
	}
	if opt.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zc := zerolog.New(out).Level(parseLevel(opt.Level)).With().Timestamp()
	if opt.Service != "" {
		zc = zc.Str("service", opt.Service)
	}
	if opt.Component != "" {
		zc = zc.Str("component", opt.Component)
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		zc = zc.Str("go_version", bi.GoVersion)
	}
	for k, v := range opt.StaticFields {
		zc = zc.Str(k, v)
	}
	if opt.WithCaller {
		zc = zc.Caller()
	}

	l := zc.Logger()
	if opt.SampleEvery > 1 {
		return l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// Named is the root logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}

// Nop returns a disabled logger
func Nop() Logger { return zerolog.Nop() }

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel
	}
	if s == "warning" {
		s = "warn"
	}
	if lvl, err := zerolog.ParseLevel(s); err == nil {
		return lvl
	}
	return zerolog.InfoLevel
}
