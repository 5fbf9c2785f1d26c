package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"crunchlist/internal/catalog"
	"crunchlist/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

const (
	databaseFile = "crunchlist.db"
	lockFile     = "crunchlist.lock"
	logFile      = "crunchlist.log"

	projectConfigFile = "crunchlist.toml"
)

// Environment variables that override file values.
const (
	EnvDataDir   = "CRUNCHLIST_DATA_DIR"
	EnvBackupDir = "CRUNCHLIST_BACKUP_DIR"
	EnvLogLevel  = "CRUNCHLIST_LOG_LEVEL"
)

// DotEnvFile is the optional environment file read from the working directory.
var DotEnvFile = ".env"

// Paths contains directory configuration.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	BackupDir string `toml:"backup_dir"`
	LogDir    string `toml:"log_dir"`
}

// Catalog contains defaults applied when browsing and adding entries.
type Catalog struct {
	DefaultStatus string `toml:"default_status"`
	DefaultSort   string `toml:"default_sort"`
	Locale        string `toml:"locale"`
	MaxCoverKiB   int    `toml:"max_cover_kib"`
}

// Backup contains export settings.
type Backup struct {
	Format string `toml:"format"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for crunchlist.
//
// Configuration sections:
//   - Paths: database, backup, and log directories
//   - Catalog: default status, sort order, collation locale, cover size cap
//   - Backup: default export format
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Catalog Catalog `toml:"catalog"`
	Backup  Backup  `toml:"backup"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns ~/.config/crunchlist/config.toml, expanded.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/crunchlist/config.toml")
}

// Load builds the effective configuration: defaults, then the config file,
// then environment overrides. It returns the config, the file path that was
// consulted, and whether that file existed.
func Load(path string) (*Config, string, bool, error) {
	if err := loadDotEnv(); err != nil {
		return nil, "", false, err
	}
	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	cfg := Default()
	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, resolved, true, err
		}
	}
	cfg.applyEnv()
	if err := cfg.normalize(); err != nil {
		return nil, resolved, exists, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, resolved, exists, err
	}
	return &cfg, resolved, exists, nil
}

// decodeFile rejects keys the Config struct does not declare so typos in
// section or field names surface instead of silently using defaults.
func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	dec := toml.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// loadDotEnv never overrides variables already present in the environment.
func loadDotEnv() error {
	if strings.TrimSpace(DotEnvFile) == "" {
		return nil
	}
	if _, err := os.Stat(DotEnvFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(DotEnvFile); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// applyEnv copies non-blank environment overrides over file values.
func (c *Config) applyEnv() {
	overrides := []struct {
		name   string
		target *string
	}{
		{EnvDataDir, &c.Paths.DataDir},
		{EnvBackupDir, &c.Paths.BackupDir},
		{EnvLogLevel, &c.Logging.Level},
	}
	for _, o := range overrides {
		if value := os.Getenv(o.name); strings.TrimSpace(value) != "" {
			*o.target = value
		}
	}
}

// resolveConfigPath honors an explicit path even when the file is missing.
// Otherwise the first existing candidate wins: the user config, then
// crunchlist.toml in the working directory. With neither present the user
// config path is reported as absent.
func resolveConfigPath(explicit string) (string, bool, error) {
	if explicit != "" {
		path, err := ExpandPath(explicit)
		if err != nil {
			return "", false, err
		}
		found, err := isFile(path)
		return path, found, err
	}

	userPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := ExpandPath(projectConfigFile)
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{userPath, projectPath} {
		found, err := isFile(candidate)
		if err != nil {
			return "", false, err
		}
		if found {
			return candidate, true, nil
		}
	}
	return userPath, false, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat config: %w", err)
	case info.IsDir():
		return false, fmt.Errorf("config path %s is a directory", path)
	}
	return true, nil
}

// EnsureDirectories creates the data and log directories. The backup
// directory is created lazily by export.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the SQLite database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, databaseFile)
}

// LockPath returns the file guarding the data directory against a second process.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, lockFile)
}

// LogPath returns the log file location.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, logFile)
}

// LocaleTag returns the collation locale, falling back to English.
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Catalog.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// DefaultStatusValue returns the status assigned when none is supplied.
func (c *Config) DefaultStatusValue() catalog.Status {
	status, ok := catalog.ParseStatus(c.Catalog.DefaultStatus)
	if !ok {
		return catalog.DefaultStatus
	}
	return status
}

// DefaultSortMode returns the configured list order.
func (c *Config) DefaultSortMode() catalog.SortMode {
	mode, err := catalog.ParseSortMode(c.Catalog.DefaultSort)
	if err != nil {
		return catalog.DefaultSortMode
	}
	return mode
}

// MaxCoverBytes returns the cover size limit in bytes.
func (c *Config) MaxCoverBytes() int64 {
	return int64(c.Catalog.MaxCoverKiB) * 1024
}

// ExpandPath resolves a leading ~ to the home directory and returns an
// absolute, cleaned path. Empty input stays empty.
func ExpandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, strings.TrimPrefix(value, "~"))
	}
	abs, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return abs, nil
}

// CreateSample writes the commented sample configuration to path.
func CreateSample(path string) error {
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		_, err := io.WriteString(w, sampleConfig)
		return err
	})
	if err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
