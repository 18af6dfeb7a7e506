package lovely

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/arthur-debert/lovely/internal/version"
	"github.com/arthur-debert/lovely/pkg/config"
	"github.com/arthur-debert/lovely/pkg/dump"
	"github.com/arthur-debert/lovely/pkg/engine"
	"github.com/arthur-debert/lovely/pkg/errors"
	"github.com/arthur-debert/lovely/pkg/logging"
	"github.com/arthur-debert/lovely/pkg/manifest"
	"github.com/arthur-debert/lovely/pkg/mods"
	"github.com/spf13/afero"
)

// Options configure a Runtime.
type Options struct {
	// Config is used as is when set. Otherwise it is loaded, with Args
	// parsed as overrides.
	Config *config.Config
	// Args are the host process arguments, program name excluded.
	Args []string
	// Fs defaults to the OS filesystem.
	Fs afero.Fs
	// SetupLogging installs the global logger, writing to the mod
	// directory's log folder. Embedders that already log leave it off.
	SetupLogging bool
}

// Runtime owns the discovered mods and the engine built from them.
type Runtime struct {
	cfg     *config.Config
	fs      afero.Fs
	mods    []*mods.Mod
	engine  *engine.Engine
	sink    *dump.Dir
	logFile string
}

var (
	// initMu serialises Initialize until a runtime has been stored.
	initMu  sync.Mutex
	current atomic.Pointer[Runtime]
)

// Initialize builds the process runtime on first call. Later calls return
// that runtime and ignore their options.
func Initialize(opts Options) (*Runtime, error) {
	if rt := current.Load(); rt != nil {
		return rt, nil
	}

	initMu.Lock()
	defer initMu.Unlock()

	if rt := current.Load(); rt != nil {
		return rt, nil
	}
	rt, err := New(opts)
	if err != nil {
		return nil, err
	}
	current.Store(rt)
	return rt, nil
}

// Current returns the process runtime, or nil before Initialize succeeded.
func Current() *Runtime {
	return current.Load()
}

// New builds a standalone runtime: it creates the mod directory if needed,
// clears old dumps, discovers mods and freezes their manifests into an
// engine. Broken mods are logged and skipped; only an unusable mod
// directory is an error.
func New(opts Options) (*Runtime, error) {
	start := time.Now()

	cfg := opts.Config
	if cfg == nil {
		overrides, err := config.ParseArgs(opts.Args)
		if err != nil {
			return nil, err
		}
		cfg, err = config.Load(overrides)
		if err != nil {
			return nil, err
		}
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	if err := fs.MkdirAll(cfg.ModDir, 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrModDir, "failed to create mod directory").
			WithDetail("path", cfg.ModDir)
	}

	rt := &Runtime{cfg: cfg, fs: fs}
	if opts.SetupLogging {
		rt.logFile = logging.SetupLogger(logging.Options{
			Verbosity:      cfg.LogLevel,
			LogDir:         cfg.LogDir(),
			DisableConsole: cfg.DisableConsole,
		})
	}

	logger := logging.GetLogger("lovely")
	logger.Info().
		Str("version", version.Version).
		Str("modDir", cfg.ModDir).
		Msg("Initializing lovely")

	rt.sink = dump.NewDir(fs, cfg.DumpDir())
	if err := rt.sink.Clear(); err != nil {
		logger.Warn().Err(err).Str("dir", rt.sink.Root()).Msg("Failed to clear dump directory")
	}

	if cfg.Vanilla {
		logger.Info().Msg("Vanilla mode, mods are disabled")
		rt.engine = engine.New(manifest.NewRegistry(nil), engine.Options{})
		return rt, nil
	}

	found, err := mods.Discover(fs, cfg.ModDir)
	if err != nil {
		return nil, err
	}
	rt.mods = found

	reg := manifest.LoadAll(found)
	rt.engine = engine.New(reg, engine.Options{
		Sink:      rt.sink,
		DumpAll:   cfg.DumpAll,
		Integrity: cfg.Integrity,
	})

	logger.Info().
		Int("mods", len(found)).
		Int("manifests", len(reg.Manifests())).
		Strs("targets", reg.Targets()).
		Msg("Lovely initialized")
	logging.LogDuration(start, "initialize")
	return rt, nil
}

// Config returns the configuration the runtime was built with.
func (r *Runtime) Config() *config.Config {
	return r.cfg
}

// Mods returns the discovered mods in discovery order.
func (r *Runtime) Mods() []*mods.Mod {
	return r.mods
}

// Engine returns the patch engine.
func (r *Runtime) Engine() *engine.Engine {
	return r.engine
}

// LogFile is the log file of this run, "" when logging was not set up here.
func (r *Runtime) LogFile() string {
	return r.logFile
}

// Close releases archive handles held by zip mods.
func (r *Runtime) Close() error {
	var first error
	for _, m := range r.mods {
		if err := m.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
