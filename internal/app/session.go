package app

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/rpncalc/internal/config"
	"github.com/dshills/rpncalc/internal/engine"
	"github.com/dshills/rpncalc/internal/plugin/lua"
)

// Session is one open calculator: a fresh engine with its own stack and
// history, drawing into its own document. A session keeps the config it
// was opened with.
type Session struct {
	ID      string
	Config  config.Config
	Engine  *engine.Engine
	Doc     *Document
	Metrics *Metrics

	plugins []*lua.Plugin
	logger  *Logger

	closeOnce sync.Once
	closed    bool
}

// OpenSession loads the configured plugins, creates the engine and draws
// the initial frame. Plugin failures are logged and do not stop the
// session.
func OpenSession(cfg config.Config, logger *Logger) (*Session, error) {
	if logger == nil {
		logger = NullLogger
	}
	id := uuid.New().String()
	s := &Session{
		ID:      id,
		Config:  cfg,
		Doc:     NewDocument(),
		Metrics: NewMetrics(),
		logger:  logger.WithField("session", id),
	}

	if cfg.PluginPath != "" {
		plugins, err := lua.LoadPath(cfg.PluginPath)
		if err != nil {
			s.logger.WithComponent("plugin").Warn("%v", NewOperationError("load plugins", cfg.PluginPath, err))
		}
		s.plugins = plugins
		s.logger.WithComponent("plugin").Info("loaded %d plugin(s) from %s", len(plugins), cfg.PluginPath)
	}

	s.Engine = engine.New(cfg.EngineConfig(),
		engine.WithLogger(s.logger.WithComponent("engine")),
		engine.WithExtensions(lua.Extensions(s.plugins)...),
	)
	s.Doc.SetListener(s.Engine)

	if err := s.Doc.Activate(); err != nil {
		s.Close()
		return nil, NewOperationError("open session", id, err)
	}
	s.logger.Info("session opened in %v mode", s.Engine.Mode())
	return s, nil
}

// Type feeds text to the session one character at a time, the way
// keystrokes arrive. It stops at the first host error.
func (s *Session) Type(text string) error {
	if s.closed {
		return ErrSessionClosed
	}
	for _, r := range text {
		if err := s.Key(r); err != nil {
			return err
		}
	}
	return nil
}

// Key inserts one character.
func (s *Session) Key(r rune) error {
	if s.closed {
		return ErrSessionClosed
	}
	t := StartTimer()
	err := s.Doc.Insert(string(r))
	s.record(t)
	return err
}

// Backspace deletes the last character.
func (s *Session) Backspace() error {
	if s.closed {
		return ErrSessionClosed
	}
	t := StartTimer()
	err := s.Doc.Backspace()
	s.record(t)
	return err
}

// Redraw asks the engine to draw the current frame again.
func (s *Session) Redraw() error {
	if s.closed {
		return ErrSessionClosed
	}
	return s.Doc.Activate()
}

func (s *Session) record(t *Timer) {
	s.Metrics.RecordInput(t.Elapsed())
	if err := s.Engine.Err(); err != nil {
		s.Metrics.RecordFault()
		if errors.Is(err, engine.ErrMathDomain) {
			s.logger.Debug("fault: %v", err)
		}
	}
}

// Close releases the session's plugins and logs its metrics.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed = true
		for _, p := range s.plugins {
			if err := p.Close(); err != nil {
				s.logger.WithComponent("plugin").Warn("close %s: %v", p.Path, err)
			}
		}
		s.logger.Info("session closed: %v", s.Metrics.Snapshot())
	})
}
