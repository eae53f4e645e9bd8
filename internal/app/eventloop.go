package app

import (
	"errors"

	"github.com/dshills/rpncalc/internal/engine"
	"github.com/dshills/rpncalc/internal/renderer/backend"
)

// eventLoop handles backend events one at a time until quit.
func (app *Application) eventLoop() error {
	for {
		ev := app.backend.PollEvent()
		err := app.handleEvent(ev)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (app *Application) handleEvent(ev backend.Event) (err error) {
	defer app.recoverEvent(&err)

	switch ev.Type {
	case backend.EventKey:
		err = app.handleKeyEvent(ev)
	case backend.EventResize:
		app.renderer.Resize(ev.Width, ev.Height)
	case backend.EventFocus:
		if ev.Focused {
			err = app.logged(app.Session().Redraw())
		}
	case backend.EventInterrupt:
		err = app.handleInterrupt(ev)
	default:
		return nil
	}
	if err == nil {
		app.draw()
	}
	return err
}

// handleKeyEvent maps keys to document edits.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	s := app.Session()

	switch ev.Key {
	case backend.KeyCtrlC, backend.KeyCtrlQ:
		return ErrQuit
	case backend.KeyCtrlR:
		app.logger.Info("reopening session")
		return app.reopenSession()
	case backend.KeyCtrlL:
		app.renderer.Invalidate()
		return app.logged(s.Redraw())
	case backend.KeyEnter:
		return app.logged(s.Key('\n'))
	case backend.KeyBackspace, backend.KeyDelete:
		return app.logged(s.Backspace())
	case backend.KeyRune:
		if ev.Mod.Has(backend.ModCtrl) || ev.Mod.Has(backend.ModAlt) {
			return nil
		}
		err := app.logged(s.Key(ev.Rune))
		if errors.Is(s.Engine.Err(), engine.ErrIllegalKey) {
			app.backend.Beep()
		}
		return err
	default:
		return nil
	}
}

func (app *Application) handleInterrupt(ev backend.Event) error {
	switch data := ev.Data.(type) {
	case quitRequest:
		return ErrQuit
	case configReload:
		app.pending = data.cfg
		app.logger.Info("config reloaded from %s; applies to the next session", app.opts.ConfigPath)
	}
	return nil
}

// logged records a session error. Render failures do not end the
// application; the next keystroke redraws.
func (app *Application) logged(err error) error {
	if err != nil && !errors.Is(err, ErrSessionClosed) {
		app.logger.Error("%v", err)
		return nil
	}
	return err
}
