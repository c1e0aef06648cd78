package canon

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"shodan/internal/fileutil"
	"shodan/internal/logging"
)

//go:embed sample_canon.toml
var sampleCanon string

// Load reads the canon document at path and builds a Registry. An empty
// path or a missing file yields an empty registry (found is false) so the
// engine degrades to heuristic scoring. Read, decode, and validation
// failures are returned as errors.
func Load(path string, logger *slog.Logger) (reg *Registry, found bool, err error) {
	logger = logging.NewComponentLogger(logger, "canon")
	path = strings.TrimSpace(path)
	if path == "" {
		logger.Debug("canon path not configured; running heuristic only")
		return Empty(), false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.WarnWithContext(logger, "canon document not found", "canon_missing",
				logging.String("path", path),
				logging.String(logging.FieldErrorHint, "run 'shodan canon init' to create one"),
				logging.String(logging.FieldImpact, "override and shadow lookups always miss; roster and resonance bonuses are zero"))
			return Empty(), false, nil
		}
		return nil, false, fmt.Errorf("read canon %s: %w", path, err)
	}

	doc, err := Decode(data, FormatForPath(path))
	if err == nil {
		reg, err = NewRegistry(doc)
	}
	if err != nil {
		logging.ErrorWithContext(logger, "canon document rejected", "canon_invalid",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "fix the entry named in the error or regenerate with 'shodan canon init --overwrite'"))
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}

	stats := reg.Stats()
	logger.Info("loaded canon document",
		logging.String("path", path),
		logging.Int("overrides", stats.Overrides),
		logging.Int("shadows", stats.Shadows),
		logging.Int("creators", stats.Creators),
		logging.Int("performers", stats.Performers),
		logging.Int("resonance", stats.Resonance))
	return reg, true, nil
}

// WriteSample writes the bundled sample canon to path.
func WriteSample(path string) error {
	if err := fileutil.WriteFileAtomic(path, []byte(sampleCanon), 0o644); err != nil {
		return fmt.Errorf("write sample canon: %w", err)
	}
	return nil
}
