// Package main is the entry point for the rpncalc calculator.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/dshills/rpncalc/internal/app"
	"github.com/dshills/rpncalc/internal/config"
	"github.com/dshills/rpncalc/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the command line.
type options struct {
	configPath string
	debug      bool
	logLevel   string
	logFile    string
	line       bool
	pluginPath string
	bits       int
	dumpConfig bool
	watch      bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.dumpConfig {
		out, err := cfg.DumpJSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println(out)
		return 0
	}

	logger, closeLog := openLogger(cfg)
	defer closeLog()
	logger.Info("rpncalc %s starting", version)

	if opts.line || !isTerminal(os.Stdin) {
		return runLine(cfg, logger)
	}
	return runTerminal(cfg, opts, logger)
}

func runTerminal(cfg config.Config, opts options, logger *app.Logger) int {
	watchPath := opts.configPath
	if watchPath == "" {
		watchPath = config.DefaultPath()
	}
	application := app.New(app.Options{
		Config:     cfg,
		ConfigPath: watchPath,
		Watch:      opts.watch,
		Logger:     logger,
	})

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	// Run has shut the terminal down by the time it returns, so stderr is
	// safe again.
	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		var perr *app.RecoveredPanicError
		if errors.As(err, &perr) {
			fmt.Fprintf(os.Stderr, "Error: internal error (panic: %v), details in the log\n", perr.Value)
			return 1
		}
		logger.Error("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runLine(cfg config.Config, logger *app.Logger) int {
	var in app.LineReader
	if isTerminal(os.Stdin) {
		ln := app.NewLiner()
		defer ln.Close()
		in = ln
	} else {
		in = app.NewScanReader(os.Stdin, os.Stdout)
	}

	if err := app.NewREPL(cfg, in, os.Stdout, logger).Run(); err != nil {
		logger.Error("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the config file, then applies the flags on top. An
// explicit -config must exist; the default file is optional.
func loadConfig(opts options) (config.Config, error) {
	path, required := opts.configPath, true
	if path == "" {
		path, required = config.DefaultPath(), false
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return cfg, err
	}

	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.debug {
		cfg.LogLevel = "debug"
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	if opts.pluginPath != "" {
		cfg.PluginPath = opts.pluginPath
	}
	if opts.bits != 0 {
		cfg.BinMaxBits = opts.bits
	}
	return cfg, cfg.Validate()
}

// openLogger logs to the configured file. The terminal belongs to the
// calculator, so when the file cannot be opened logs are discarded.
func openLogger(cfg config.Config) (*app.Logger, func()) {
	path := cfg.LogFile
	if path == "" {
		path = config.DefaultLogPath()
	}
	logger, closer, err := app.OpenLogFile(path, app.ParseLogLevel(cfg.LogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return app.NullLogger, func() {}
	}
	return logger, func() { _ = closer.Close() }
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml, .json)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&opts.debug, "d", false, "Enable debug logging (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Log file path")
	flag.BoolVar(&opts.line, "line", false, "Read input lines instead of driving the terminal")
	flag.StringVar(&opts.pluginPath, "plugin", "", "Lua plugin file or directory")
	flag.IntVar(&opts.bits, "bits", 0, "Programmer mode word width in bits")
	flag.BoolVar(&opts.dumpConfig, "dump-config", false, "Print the effective configuration as JSON and exit")
	flag.BoolVar(&opts.watch, "watch", true, "Reload the config file when it changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		w := flag.CommandLine.Output()
		fmt.Fprintf(w, "rpncalc - RPN calculator with Basic, Programmer, Scientific and Stats modes\n\n")
		fmt.Fprintf(w, "Usage: rpncalc [options]\n\n")
		fmt.Fprintf(w, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(w, "\nKeys:\n")
		fmt.Fprintf(w, "  ?         Help for the current mode\n")
		fmt.Fprintf(w, "  :         Change mode, base or notation\n")
		fmt.Fprintf(w, "  Ctrl-R    Start a fresh session\n")
		fmt.Fprintf(w, "  Ctrl-Q    Quit\n")
		fmt.Fprintf(w, "\nEnvironment:\n")
		fmt.Fprintf(w, "  %sBIN_MAX_BITS, %sSCI_PRECISION, ... override config file settings\n",
			config.EnvPrefix, config.EnvPrefix)
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		printVersion(os.Stdout)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	return opts
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "rpncalc %s\n", version)
	fmt.Fprintf(w, "Commit: %s\n", commit)
	fmt.Fprintf(w, "Built: %s\n", date)
}
