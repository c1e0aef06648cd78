package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shodan/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckCanon(t *testing.T) {
	missing := CheckCanon(filepath.Join(t.TempDir(), "canon.toml"))
	if !missing.Passed || !strings.Contains(missing.Detail, "missing") {
		t.Fatalf("expected passing missing-canon result, got %+v", missing)
	}

	path := filepath.Join(t.TempDir(), "canon.toml")
	testsupport.WriteFile(t, path, "[[override]]\nkey = \"Tekken 3\"\nscore = 9.0\n")
	ok := CheckCanon(path)
	if !ok.Passed || !strings.Contains(ok.Detail, "1 overrides") {
		t.Fatalf("unexpected canon result: %+v", ok)
	}

	testsupport.WriteFile(t, path, "[[override]]\nkey = \"Tekken 3\"\nscore = 42.0\n")
	if bad := CheckCanon(path); bad.Passed {
		t.Fatalf("expected out-of-range override to fail, got %+v", bad)
	}
}

func TestCheckArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ark.db")
	result := CheckArchive(context.Background(), path)
	if !result.Passed || !strings.Contains(result.Detail, "(0 records)") {
		t.Fatalf("unexpected archive result: %+v", result)
	}

	bad := CheckArchive(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "ark.db"))
	if bad.Passed {
		t.Fatalf("expected failure for unreachable path, got %+v", bad)
	}
}

func TestCheckOMDb(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") != "good-key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"Response":"False","Error":"Invalid API key!"}`))
			return
		}
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	}))
	defer srv.Close()

	good := CheckOMDb(context.Background(), testsupport.NewConfig(t, testsupport.WithOMDb("good-key", srv.URL)))
	if !good.Passed {
		t.Fatalf("expected pass, got: %s", good.Detail)
	}

	bad := CheckOMDb(context.Background(), testsupport.NewConfig(t, testsupport.WithOMDb("bad-key", srv.URL)))
	if bad.Passed || !strings.Contains(bad.Detail, "invalid api key") {
		t.Fatalf("expected auth failure, got %+v", bad)
	}
}

func TestRunAllSkipsOMDbWithoutKey(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithOMDb("", "http://127.0.0.1:0"))
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := RunAll(context.Background(), cfg)
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %+v", results)
	}
	last := results[len(results)-1]
	if last.Name != "OMDb" || !last.Optional || last.Passed {
		t.Fatalf("expected optional skipped OMDb check, got %+v", last)
	}
	if Failed(results) {
		t.Fatalf("expected no required failures, got %+v", results)
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatalf("expected nil results, got %+v", results)
	}
}
