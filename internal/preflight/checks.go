package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"shodan/internal/ark"
	"shodan/internal/canon"
	"shodan/internal/config"
	"shodan/internal/logging"
	"shodan/internal/omdb"
)

// checkTitle is fetched to exercise the OMDb key. Any well-formed answer,
// including "not found", proves the key and endpoint work.
const checkTitle = "Blade Runner"

// CheckOMDb verifies that the OMDb API is reachable and the key is valid.
// It uses a 10-second timeout and a single attempt.
func CheckOMDb(ctx context.Context, cfg *config.Config, opts ...omdb.Option) Result {
	const name = "OMDb"

	client, err := omdb.NewFromConfig(cfg, opts...)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err = client.Fetch(checkCtx, checkTitle)
	switch {
	case err == nil, errors.Is(err, omdb.ErrNotFound):
		return Result{Name: name, Passed: true, Detail: "API reachable"}
	case errors.Is(err, omdb.ErrUnauthorized):
		return Result{Name: name, Detail: "auth failed (invalid api key)"}
	default:
		return Result{Name: name, Detail: summarizeError(err)}
	}
}

// CheckCanon verifies that the canon document parses. A missing document
// passes with a warning detail since scoring falls back to heuristics.
func CheckCanon(path string) Result {
	const name = "Canon"

	registry, found, err := canon.Load(path, logging.NewNop())
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if !found {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (missing; heuristics only)", path)}
	}
	stats := registry.Stats()
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("%s (%d overrides, %d shadows, %d resonance keywords)", path, stats.Overrides, stats.Shadows, stats.Resonance),
	}
}

// CheckArchive opens the archive database, applying migrations, and counts
// its records.
func CheckArchive(ctx context.Context, path string) Result {
	const name = "Archive"

	store, err := ark.OpenPath(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	count, err := store.Count(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d records)", path, count)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func summarizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (OMDb unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (OMDb unreachable)"
	}
	return err.Error()
}
