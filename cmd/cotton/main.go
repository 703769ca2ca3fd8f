// Command cotton runs Cotton source files, or starts a REPL when given
// none, wiring structured logging, TOML project config, and POSIX-style
// flags the way the pack's CLI tools do.
package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/lis05/cotton"
	"github.com/lis05/cotton/internal/gc"
)

// projectConfig is the shape of an optional cotton.toml alongside the
// entry script: module search path and the unrestricted flag.
type projectConfig struct {
	ModulePath   string `toml:"module_path"`
	Unrestricted bool   `toml:"unrestricted"`
}

// tracingStrategy wraps the default GC trigger strategy to log every
// completed cycle at debug level, enabled by --trace-gc. Kept off the
// hot evaluation path otherwise: with tracing disabled this type is
// never constructed, so AcknowledgePing/AcknowledgeEndOfCycle cost
// nothing beyond the wrapped strategy's own work.
type tracingStrategy struct {
	*gc.DefaultStrategy
	logger zerolog.Logger
	cycles int
}

func (s *tracingStrategy) AcknowledgeEndOfCycle(rp gc.RootProvider) {
	s.DefaultStrategy.AcknowledgeEndOfCycle(rp)
	s.cycles++
	s.logger.Debug().Int("cycle", s.cycles).Msg("gc cycle completed")
}

func main() {
	var (
		verbose      bool
		veryVerbose  bool
		unrestricted bool
		traceGC      bool
		modulePath   string
		configPath   string
		inlineSrc    string
	)
	flags := pflag.NewFlagSet("cotton", pflag.ExitOnError)
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable info-level logging")
	flags.BoolVar(&veryVerbose, "vv", false, "enable debug-level logging")
	flags.BoolVar(&unrestricted, "unrestricted", false, "allow non-sandboxed stdlib symbols")
	flags.BoolVar(&traceGC, "trace-gc", false, "log each completed GC cycle at debug level")
	flags.StringVar(&modulePath, "modpath", "", "search path for shared libraries and source imports")
	flags.StringVar(&configPath, "config", "cotton.toml", "project configuration file")
	flags.StringVarP(&inlineSrc, "eval", "e", "", "evaluate the given source and exit")
	_ = flags.Parse(os.Args[1:])

	level := zerolog.WarnLevel
	switch {
	case veryVerbose:
		level = zerolog.DebugLevel
	case verbose:
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	var cfg projectConfig
	if _, err := os.Stat(configPath); err == nil {
		if _, decodeErr := toml.DecodeFile(configPath, &cfg); decodeErr != nil {
			logger.Warn().Err(decodeErr).Str("path", configPath).Msg("failed to decode project config, ignoring")
		} else {
			logger.Debug().Str("path", configPath).Msg("loaded project config")
		}
	}
	if modulePath == "" {
		modulePath = cfg.ModulePath
	}

	var strategy gc.Strategy = gc.NewDefaultStrategy()
	if traceGC {
		strategy = &tracingStrategy{DefaultStrategy: gc.NewDefaultStrategy(), logger: logger}
	}

	interp := cotton.New(cotton.Options{
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Args:         flags.Args(),
		Unrestricted: unrestricted || cfg.Unrestricted,
		ModulePath:   modulePath,
		Strategy:     strategy,
	})

	if inlineSrc != "" {
		if err := interp.EvalString(inlineSrc); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		return
	}

	args := flags.Args()
	if len(args) == 0 {
		logger.Info().Msg("starting REPL")
		if err := interp.REPL(); err != nil {
			logger.Error().Err(err).Msg("REPL exited")
			os.Exit(1)
		}
		return
	}

	if err := interp.EvalPath(args[0]); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
