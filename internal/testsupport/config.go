package testsupport

import (
	"path/filepath"
	"testing"

	"crunchlist/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.BackupDir = filepath.Join(base, "backups")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithSort overrides the default list order on the test config.
func WithSort(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.DefaultSort = mode
	}
}

// WithLocale overrides the collation locale on the test config.
func WithLocale(locale string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Locale = locale
	}
}

// WithMaxCoverKiB overrides the cover size limit on the test config.
func WithMaxCoverKiB(kib int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.MaxCoverKiB = kib
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
