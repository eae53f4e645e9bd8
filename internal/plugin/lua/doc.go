// Package lua lets users add calculator commands written in Lua.
//
// A script registers commands through the rpn module:
//
//	rpn.command{
//	    mode = "scientific",
//	    key = "h",
//	    name = "hypot",
//	    doc = "Hypotenuse of x and y",
//	    arity = 2,
//	    fn = function(x, y) return math.sqrt(x*x + y*y) end,
//	}
//
// Each Plugin owns a sandboxed gopher-lua state with only the base,
// table, string and math libraries; loading code from disk or strings is
// disabled. Calls run under a timeout and a Lua error becomes a math
// fault on the calculator's message line.
//
// Registered commands are handed to the engine as engine.Extensions:
//
//	plugins, err := lua.LoadPath(dir)
//	eng := engine.New(cfg, engine.WithExtensions(lua.Extensions(plugins)...))
package lua
