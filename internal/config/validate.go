package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"crunchlist/internal/catalog"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateBackup(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.BackupDir) == "" {
		return errors.New("paths.backup_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if _, ok := catalog.ParseStatus(c.Catalog.DefaultStatus); !ok {
		return fmt.Errorf("catalog.default_status: unsupported value %q", c.Catalog.DefaultStatus)
	}
	if _, err := catalog.ParseSortMode(c.Catalog.DefaultSort); err != nil {
		return fmt.Errorf("catalog.default_sort: %w", err)
	}
	if _, err := language.Parse(c.Catalog.Locale); err != nil {
		return fmt.Errorf("catalog.locale: unsupported value %q", c.Catalog.Locale)
	}
	if c.Catalog.MaxCoverKiB <= 0 {
		return errors.New("catalog.max_cover_kib must be positive")
	}
	return nil
}

func (c *Config) validateBackup() error {
	switch c.Backup.Format {
	case "json", "csv", "xlsx":
		return nil
	default:
		return fmt.Errorf("backup.format: unsupported value %q", c.Backup.Format)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
