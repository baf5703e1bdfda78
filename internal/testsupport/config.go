package testsupport

import (
	"path/filepath"
	"testing"

	"pigeonhole/internal/config"
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
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")

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

// WithDefaultSource sets the fallback source directory on the test config.
func WithDefaultSource(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.DefaultSource = path
	}
}

// WithExclude sets the scan exclude globs on the test config.
func WithExclude(patterns ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.Exclude = patterns
	}
}

// WithSample overrides the preview sample size on the test config.
func WithSample(sample int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Preview.Sample = sample
	}
}

// WithAssumeYes skips the confirmation gate on the test config.
func WithAssumeYes() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.AssumeYes = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
