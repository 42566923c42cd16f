// Package app implements the application layer for modcache.
package app

import (
	"io"
	"os"
	"runtime"
	"sync"

	"go.trai.ch/modcache/internal/adapters/detector"
	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	opener       ports.CacheOpener
	engine       ports.Engine
	finder       ports.ProgramFinder
	logger       ports.Logger
	tracer       ports.Tracer
	detect       func() detector.OutputMode
	concurrency  int

	// group deduplicates concurrent compilations of the same program.
	group singleflight.Group

	mu     sync.Mutex
	config domain.Config
	cache  ports.ModuleCache
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	opener ports.CacheOpener,
	engine ports.Engine,
	finder ports.ProgramFinder,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		opener:       opener,
		engine:       engine,
		finder:       finder,
		logger:       log,
		tracer:       tracer,
		detect:       detector.DetectEnvironment,
		concurrency:  runtime.NumCPU(),
		config:       domain.DefaultConfig(),
	}
}

// WithDetector replaces the environment detection used for the "auto" log
// format. This is primarily used for testing.
func (a *App) WithDetector(detect func() detector.OutputMode) *App {
	a.detect = detect
	return a
}

// WithConcurrency limits the number of programs Warm compiles at once.
func (a *App) WithConcurrency(n int) *App {
	if n > 0 {
		a.concurrency = n
	}
	return a
}

// ConfigureOptions holds the command line overrides applied on top of the
// configuration file.
type ConfigureOptions struct {
	ConfigPath  string
	CacheDir    string
	LogFormat   string
	Trace       bool
	TraceOutput io.Writer
}

// Configure loads the configuration file, applies overrides and sets up
// logging and tracing accordingly. It must be called before any other
// operation that touches the cache.
func (a *App) Configure(opts ConfigureOptions) error {
	if err := domain.ValidateLogFormat(opts.LogFormat); err != nil {
		return err
	}
	// Apply the flag early so that warnings emitted while loading the file
	// already use the requested format.
	if opts.LogFormat != "" {
		a.applyLogFormat(opts.LogFormat)
	}

	path := opts.ConfigPath
	if path == "" {
		path = domain.ConfigFileName
	}

	cfg, err := a.configLoader.Load(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, ""), "path", path)
	}

	if opts.CacheDir != "" {
		cfg.CacheDir = opts.CacheDir
	}
	if opts.LogFormat != "" {
		cfg.LogFormat = opts.LogFormat
	}
	a.applyLogFormat(cfg.LogFormat)

	if opts.Trace {
		out := opts.TraceOutput
		if out == nil {
			out = os.Stderr
		}
		if err := a.tracer.Export(out); err != nil {
			return zerr.Wrap(err, "failed to start trace exporter")
		}
	}

	a.mu.Lock()
	a.config = cfg
	a.cache = nil
	a.mu.Unlock()

	return nil
}

// Config returns the active configuration.
func (a *App) Config() domain.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.config
}

func (a *App) applyLogFormat(format string) {
	mode := detector.ResolveMode(detector.ModeAuto, format)
	if mode == detector.ModeAuto {
		mode = a.detect()
	}
	a.logger.SetJSON(mode == detector.ModeJSON)
}

// moduleCache opens the cache on first use so that commands which never
// touch it do not create the cache directory.
func (a *App) moduleCache() (ports.ModuleCache, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cache != nil {
		return a.cache, nil
	}

	cache, err := a.opener.Open(domain.AssumeTrustedDir(a.config.CacheDir))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, ""), "cache_dir", a.config.CacheDir)
	}
	a.cache = cache
	return cache, nil
}

// Checksum returns the cache key of the program at path.
func (a *App) Checksum(path string) (domain.Checksum, error) {
	_, checksum, err := readProgram(path)
	return checksum, err
}

func readProgram(path string) ([]byte, domain.Checksum, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.Checksum{}, zerr.With(
			zerr.Wrap(err, domain.ErrProgramReadFailed.Error()),
			"path", path,
		)
	}
	return code, domain.GenerateChecksum(code), nil
}
