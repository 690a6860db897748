package config

const (
	defaultStateDirFallback = "~/.local/state/auxpatch"
	defaultLogFormat        = "console"
	defaultLogLevel         = "warn"
	defaultOutputColor      = true
	defaultJournalEnabled   = true
)

// DefaultExtensions lists the file name suffixes collected in directory mode.
var DefaultExtensions = []string{".dict.yaml", ".yaml", ".txt"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir(),
		},
		Patch: Patch{
			Extensions: append([]string(nil), DefaultExtensions...),
		},
		Output: Output{
			Color: defaultOutputColor,
		},
		Journal: Journal{
			Enabled: defaultJournalEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
