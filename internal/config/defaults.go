package config

const (
	defaultLogDir           = "~/.local/share/pigeonhole/logs"
	defaultStateDir         = "~/.local/share/pigeonhole/state"
	defaultLogRetentionDays = 60
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultPreviewSample    = 3
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			StateDir: defaultStateDir,
		},
		Scan: Scan{
			IncludeHidden: true,
		},
		Preview: Preview{
			Sample: defaultPreviewSample,
		},
		Organize: Organize{
			VerifyCopies: true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
