package app

import (
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/dshills/rpncalc/internal/config"
	"github.com/dshills/rpncalc/internal/config/watcher"
	"github.com/dshills/rpncalc/internal/renderer"
	"github.com/dshills/rpncalc/internal/renderer/backend"
)

// Options configures the application.
type Options struct {
	// Config is the configuration the first session opens with.
	Config config.Config

	// ConfigPath is watched for changes when Watch is set. Reloaded
	// configurations apply to the next session.
	ConfigPath string
	Watch      bool

	// Logger receives application logs. Defaults to NullLogger.
	Logger *Logger
}

// Application runs calculator sessions on a terminal backend.
type Application struct {
	mu sync.Mutex

	backend  backend.Backend
	renderer *renderer.Renderer
	session  *Session
	watcher  *watcher.Watcher
	logger   *Logger

	cfg config.Config
	// Reloaded config waiting for the next session.
	pending *config.Config

	running atomic.Bool
	opts    Options
}

// Interrupt payloads posted to the backend's event queue.
type (
	quitRequest  struct{}
	configReload struct{ cfg *config.Config }
)

// New creates an application. Call SetBackend before Run.
func New(opts Options) *Application {
	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}
	return &Application{
		cfg:    opts.Config,
		logger: logger.WithComponent("app"),
		opts:   opts,
	}
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Session returns the open session, or nil before Run.
func (app *Application) Session() *Session {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.session
}

// Run initializes the backend, opens a session and handles events until
// the user quits or Shutdown is called.
func (app *Application) Run() error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return NewOperationError("init", "backend", err)
	}
	defer app.backend.Shutdown()

	theme, err := renderer.NewTheme(app.cfg.Palette())
	if err != nil {
		app.logger.Warn("theme: %v", err)
		theme = renderer.DefaultTheme()
	}
	app.renderer = renderer.New(app.backend, theme)

	if err := app.openSession(); err != nil {
		return err
	}
	defer app.closeSession()

	if app.opts.Watch && app.opts.ConfigPath != "" {
		app.startWatcher()
		defer app.stopWatcher()
	}

	app.draw()
	return app.eventLoop()
}

// Shutdown asks a running application to exit. It is safe to call from
// any goroutine.
func (app *Application) Shutdown() {
	if !app.running.Load() || app.backend == nil {
		return
	}
	app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: quitRequest{}})
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

func (app *Application) openSession() error {
	if cfg := app.pending; cfg != nil {
		app.pending = nil
		app.cfg = *cfg
		if theme, err := renderer.NewTheme(cfg.Palette()); err == nil {
			app.renderer.SetTheme(theme)
		}
		app.renderer.Invalidate()
	}

	s, err := OpenSession(app.cfg, app.logger)
	if err != nil {
		return err
	}
	app.mu.Lock()
	app.session = s
	app.mu.Unlock()
	return nil
}

func (app *Application) closeSession() {
	app.mu.Lock()
	s := app.session
	app.session = nil
	app.mu.Unlock()
	if s != nil {
		s.Close()
	}
}

// reopenSession replaces the session with a fresh one.
func (app *Application) reopenSession() error {
	app.closeSession()
	return app.openSession()
}

func (app *Application) startWatcher() {
	log := app.logger.WithComponent("watcher")
	w, err := watcher.New(app.opts.ConfigPath, func(ev watcher.Event) {
		if ev.Op&watcher.OpRemove != 0 {
			return
		}
		cfg, err := config.Load(ev.Path, true)
		if err != nil {
			log.Warn("reload %s: %v", ev.Path, err)
			return
		}
		app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: configReload{cfg: &cfg}})
	}, watcher.WithErrorHandler(func(err error) {
		log.Warn("%v", err)
	}))
	if err != nil {
		log.Warn("watch %s: %v", app.opts.ConfigPath, err)
		return
	}
	app.watcher = w
}

func (app *Application) stopWatcher() {
	if app.watcher != nil {
		_ = app.watcher.Close()
	}
}

// draw shows the session's document.
func (app *Application) draw() {
	s := app.Session()
	if s == nil {
		return
	}
	t := StartTimer()
	app.renderer.Draw(s.Config.WindowTitle, s.Doc.Lines(), s.Doc.Input())
	s.Metrics.RecordDraw(t.Elapsed())
}

// recoverEvent turns a panic while handling an event into an error so
// the terminal is restored before exiting. Only the log sees it here; the
// screen still belongs to the backend.
func (app *Application) recoverEvent(err *error) {
	if r := recover(); r != nil {
		*err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
		app.logger.Error("%v", *err)
	}
}
