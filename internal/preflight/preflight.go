package preflight

import (
	"context"
	"strings"

	"shodan/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Optional bool   `json:"optional,omitempty"`
	Detail   string `json:"detail"`
}

// RunAll executes every applicable check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
	}
	if strings.TrimSpace(cfg.Paths.LogDir) != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}
	results = append(results, CheckCanon(cfg.Paths.CanonPath))
	results = append(results, CheckArchive(ctx, cfg.ArkDatabasePath()))

	if strings.TrimSpace(cfg.OMDb.APIKey) == "" {
		results = append(results, Result{Name: "OMDb", Optional: true, Detail: "API key not set (lookup unavailable)"})
	} else {
		results = append(results, CheckOMDb(ctx, cfg))
	}

	return results
}

// Failed reports whether any required check did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}
