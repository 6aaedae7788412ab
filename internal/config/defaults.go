package config

const (
	defaultConfigPath             = "~/.config/mkvtrack/config.toml"
	defaultProjectConfig          = "mkvtrack.toml"
	defaultMkvmergeBinary         = "mkvmerge"
	defaultMkvmergeTimeoutSeconds = 30
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"

	// EnvMkvmergeBinary overrides mkvmerge.binary when set.
	EnvMkvmergeBinary = "MKVTRACK_MKVMERGE"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Mkvmerge: Mkvmerge{
			Binary:         defaultMkvmergeBinary,
			TimeoutSeconds: defaultMkvmergeTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
