// Package config provides the calculator configuration.
//
// Settings come from, lowest to highest precedence: built-in defaults, a
// config file (TOML, YAML or JSON, chosen by extension), RPNCALC_*
// environment variables, and command-line flags applied by the caller.
//
// Example config.toml:
//
//	bin_max_bits = 32
//	sci_precision = 12
//	window_title = "calc"
//
//	[theme]
//	mode_bar = "#5FAFFF"
//	error = "#FF5F5F"
//
// The subpackage watcher reports edits to the file so a host can reload
// it; a reloaded Config applies to the next session only.
package config
