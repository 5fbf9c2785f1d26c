package config

import (
	"fmt"
	"strings"

	"crunchlist/internal/catalog"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCatalog()
	c.normalizeBackup()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = ExpandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.BackupDir) == "" {
		c.Paths.BackupDir = defaultBackupDir
	}
	if c.Paths.BackupDir, err = ExpandPath(strings.TrimSpace(c.Paths.BackupDir)); err != nil {
		return fmt.Errorf("paths.backup_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCatalog() {
	c.Catalog.DefaultStatus = strings.TrimSpace(c.Catalog.DefaultStatus)
	if c.Catalog.DefaultStatus == "" {
		c.Catalog.DefaultStatus = defaultStatus
	}
	// Canonicalize aliases so validation and display agree.
	if status, ok := catalog.ParseStatus(c.Catalog.DefaultStatus); ok {
		c.Catalog.DefaultStatus = string(status)
	}
	c.Catalog.DefaultSort = strings.ToLower(strings.TrimSpace(c.Catalog.DefaultSort))
	if c.Catalog.DefaultSort == "" {
		c.Catalog.DefaultSort = defaultSort
	}
	c.Catalog.Locale = strings.TrimSpace(c.Catalog.Locale)
	if c.Catalog.Locale == "" {
		c.Catalog.Locale = defaultLocale
	}
	if c.Catalog.MaxCoverKiB == 0 {
		c.Catalog.MaxCoverKiB = defaultMaxCoverKiB
	}
}

func (c *Config) normalizeBackup() {
	c.Backup.Format = strings.ToLower(strings.TrimSpace(c.Backup.Format))
	if c.Backup.Format == "" {
		c.Backup.Format = defaultBackupFormat
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
