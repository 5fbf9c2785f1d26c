package config

const (
	defaultDataDir      = "~/.local/share/crunchlist"
	defaultBackupDir    = "~/.local/share/crunchlist/backups"
	defaultLogDir       = "~/.local/share/crunchlist/logs"
	defaultStatus       = "Watching"
	defaultSort         = "created_desc"
	defaultLocale       = "en"
	defaultMaxCoverKiB  = 2048
	defaultBackupFormat = "json"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			BackupDir: defaultBackupDir,
			LogDir:    defaultLogDir,
		},
		Catalog: Catalog{
			DefaultStatus: defaultStatus,
			DefaultSort:   defaultSort,
			Locale:        defaultLocale,
			MaxCoverKiB:   defaultMaxCoverKiB,
		},
		Backup: Backup{
			Format: defaultBackupFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
