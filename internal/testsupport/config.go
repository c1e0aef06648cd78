package testsupport

import (
	"path/filepath"
	"testing"

	"shodan/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options. The canon
// path points at a file that does not exist, so the engine runs heuristic
// only unless WithCanon or WithCanonPath is applied.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.CanonPath = filepath.Join(base, "canon.toml")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.OMDb.APIKey = "test"
	cfgVal.OMDb.BaseURL = "http://127.0.0.1:0"
	cfgVal.Ark.ExportPath = filepath.Join(base, "data", "canon.json")

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

// WithOMDb points the OMDb client at baseURL with the given key.
func WithOMDb(apiKey, baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.OMDb.APIKey = apiKey
		b.cfg.OMDb.BaseURL = baseURL
	}
}

// WithCanonPath overrides the canon document location.
func WithCanonPath(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.CanonPath = path
	}
}

// WithCanon writes body to canon.toml under the base directory and points
// the config at it.
func WithCanon(body string) ConfigOption {
	return func(b *configBuilder) {
		path := filepath.Join(b.baseDir, "canon.toml")
		WriteFile(b.t, path, body)
		b.cfg.Paths.CanonPath = path
	}
}

// WithLateReleasePolicy selects the late-release policy.
func WithLateReleasePolicy(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Weighting.LateReleasePolicy = policy
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
