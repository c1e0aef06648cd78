package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"shodan/internal/ark"
	"shodan/internal/omdb"
	"shodan/internal/testsupport"
	"shodan/internal/weighting"
)

const heatResponse = `{
  "Title": "Heat",
  "Year": "1995",
  "Director": "Michael Mann",
  "Writer": "Michael Mann",
  "Country": "United States",
  "Genre": "Action, Crime, Drama",
  "Plot": "A group of high-end professional thieves start to feel the heat.",
  "Actors": "Al Pacino, Robert De Niro, Val Kilmer",
  "Awards": "14 wins & 14 nominations",
  "Response": "True"
}`

func newOMDbServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("t") != "Heat" {
			_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
			return
		}
		_, _ = w.Write([]byte(heatResponse))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLookupJudgesAgainstArchive(t *testing.T) {
	server := newOMDbServer(t)
	env := setupCLITestEnv(t, testsupport.WithOMDb("key", server.URL))

	out, _, err := runCLI(t, []string{"lookup", "Heat", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	var got lookupOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if got.Metadata.Creator != "Michael Mann, Michael Mann" || got.Metadata.Format != "Digital" {
		t.Fatalf("unexpected metadata: %+v", got.Metadata)
	}
	if got.Result.Tier != weighting.TierComputed {
		t.Fatalf("unexpected tier: %+v", got.Result)
	}
	if got.Verdict == nil || got.Verdict.Kind == ark.VerdictSecured {
		t.Fatalf("expected unsecured verdict, got %+v", got.Verdict)
	}

	catalog := filepath.Join(env.baseDir, "catalog.csv")
	testsupport.WriteFile(t, catalog, testCatalog)
	if _, _, err := runCLI(t, []string{"ark", "ingest", catalog}, env.configPath); err != nil {
		t.Fatalf("ark ingest: %v", err)
	}

	out, _, err = runCLI(t, []string{"lookup", "Heat"}, env.configPath)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	requireContains(t, out, "Data retrieved")
	requireContains(t, out, "already secured in the ark (ARCHIVE-0001)")
	if strings.Contains(out, "Peers:") {
		t.Fatalf("secured lookup should not list peers:\n%s", out)
	}
}

func TestLookupNotFound(t *testing.T) {
	server := newOMDbServer(t)
	env := setupCLITestEnv(t, testsupport.WithOMDb("key", server.URL))

	_, _, err := runCLI(t, []string{"lookup", "Nope"}, env.configPath)
	if err == nil {
		t.Fatal("expected not found error")
	}
	requireContains(t, err.Error(), "Movie not found!")
}

func TestLookupRequiresAPIKey(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithOMDb("", "http://127.0.0.1:0"))

	_, _, err := runCLI(t, []string{"lookup", "Heat"}, env.configPath)
	if err == nil {
		t.Fatal("expected missing api key error")
	}
	requireContains(t, err.Error(), "api_key")
}

type stubFetcher struct {
	movies map[string]omdb.Movie
	calls  []string
}

func (s *stubFetcher) Fetch(_ context.Context, title string) (*omdb.Movie, error) {
	s.calls = append(s.calls, title)
	movie, ok := s.movies[title]
	if !ok {
		return nil, fmt.Errorf("%w: Movie not found!", omdb.ErrNotFound)
	}
	return &movie, nil
}

func TestLookupUsesInjectedFetcher(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithCanon(testCanon))
	fetcher := &stubFetcher{movies: map[string]omdb.Movie{
		"Ghost in the Shell": {Title: "Ghost in the Shell", Year: "1995", Director: "Mamoru Oshii", Writer: "N/A", Country: "Japan"},
	}}

	out, _, err := runCLI(t, []string{"lookup", "Ghost in the Shell", "--format", "Blu-Ray", "--json"}, env.configPath, withFetcher(fetcher))
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	var got lookupOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if got.Result != (weighting.Result{Tier: weighting.TierOverride, Score: 9.5}) {
		t.Fatalf("unexpected result: %+v", got.Result)
	}
	if got.Metadata.Creator != "Mamoru Oshii" || got.Metadata.Format != "Blu-Ray" {
		t.Fatalf("unexpected metadata: %+v", got.Metadata)
	}
	if len(fetcher.calls) != 1 || fetcher.calls[0] != "Ghost in the Shell" {
		t.Fatalf("unexpected fetch calls: %v", fetcher.calls)
	}

	_, _, err = runCLI(t, []string{"lookup", "Avalon"}, env.configPath, withFetcher(fetcher))
	if !errors.Is(err, omdb.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
