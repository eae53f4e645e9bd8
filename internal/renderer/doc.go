// Package renderer provides the display layer for the calculator.
//
// Layout turns an engine.Frame into classified lines whose joined text is
// the exact content of the calculator view. Hosts that edit text (the
// interactive app) keep that text in their document so the engine can
// read typed input after it. Renderer then paints the lines onto a
// backend with a Theme.
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│        Layout (Frame -> []Line)         │
//	├─────────────────────────────────────────┤
//	│      Renderer (Theme, scrolling)        │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ NullBackend (tests) │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	b, _ := backend.NewTerminal()
//	r := renderer.New(b, renderer.DefaultTheme())
//	r.Draw(frame.Title, renderer.Layout(frame), input)
package renderer
