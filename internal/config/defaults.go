package config

const (
	defaultExtension       = ".TextGrid"
	defaultPraatPath       = "praat"
	defaultPraatScript     = "~/.config/tgrid/open_file.praat"
	defaultSoundExtensions = "wav;mp3;aiff;flac"
	defaultStateDir        = "~/.local/share/tgrid"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Project: Project{
			Extension: defaultExtension,
		},
		Praat: Praat{
			Path:            defaultPraatPath,
			ScriptPath:      defaultPraatScript,
			SoundExtensions: defaultSoundExtensions,
		},
		Storage: Storage{
			StateDir: defaultStateDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
