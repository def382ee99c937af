package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagLogLevel = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flagBackend  = flag.String("backend", "", "Physics backend (resolv, chipmunk)")
	flagWorld    = flag.String("world", "", "Level world file or directory")
	flagWatch    = flag.Bool("watch", false, "Restart the level when level files change")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags() {
	if *flagLogLevel != "" {
		Logging.Level = *flagLogLevel
	}
	if *flagBackend != "" {
		Physics.Backend = *flagBackend
	}
	if *flagWorld != "" {
		Level.WorldPath = *flagWorld
	}
	if *flagWatch {
		Level.Watch = true
	}
}
