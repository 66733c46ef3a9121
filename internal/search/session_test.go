package search_test

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"

	"teachmatch-dashboard/internal/logging"
	"teachmatch-dashboard/internal/search"
	"teachmatch-dashboard/pkg/models"
)

// fakeSearcher counts calls and returns a result set tagged with the call
// number, so tests can tell which fetch produced the stored results
type fakeSearcher struct {
	mu      sync.Mutex
	calls   int
	queries []url.Values
	err     error
	onFirst func()
}

func (f *fakeSearcher) SearchJobs(ctx context.Context, query url.Values) (*models.SearchResults, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.queries = append(f.queries, query)
	hook := f.onFirst
	f.onFirst = nil
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.SearchResults{
		Jobs:       []models.Job{{ID: "job-1", Title: "Science Teacher"}},
		Pagination: models.Pagination{TotalJobs: n},
	}, nil
}

func newTestController(searcher *fakeSearcher) (*search.Controller, *search.MemoryStore) {
	store := search.NewMemoryStore()
	return search.NewController(store, searcher, logging.GetGlobalLogger()), store
}

// ── Session lifecycle ──────────────────────────────────────────────────────

func TestGet_CreatesDefaultSession(t *testing.T) {
	ctrl, _ := newTestController(&fakeSearcher{})

	session, err := ctrl.Get(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !session.Staged.Equal(search.DefaultFilters()) || !session.Applied.Equal(search.DefaultFilters()) {
		t.Error("new session should start with default snapshots")
	}
	if session.Dirty() {
		t.Error("new session should not be dirty")
	}
	if session.Query() != "" {
		t.Errorf("new session query = %q, want empty", session.Query())
	}
}

func TestStage_DoesNotFetch(t *testing.T) {
	searcher := &fakeSearcher{}
	ctrl, _ := newTestController(searcher)

	f := search.DefaultFilters().WithSalaryMin(500)
	session, err := ctrl.Stage(context.Background(), "s1", f, "math")
	if err != nil {
		t.Fatalf("Stage returned error: %v", err)
	}

	if searcher.calls != 0 {
		t.Errorf("staging triggered %d fetches, want 0", searcher.calls)
	}
	if !session.Dirty() {
		t.Error("session should be dirty after staging edits")
	}
	if !session.Applied.Equal(search.DefaultFilters()) {
		t.Error("applied snapshot must not change on stage")
	}
}

func TestCommit_PromotesStagedAndFetches(t *testing.T) {
	searcher := &fakeSearcher{}
	ctrl, _ := newTestController(searcher)
	ctx := context.Background()

	f := search.DefaultFilters().WithSalaryMin(500)
	f.Countries = []string{"Kazakhstan"}
	if _, err := ctrl.Stage(ctx, "s1", f, ""); err != nil {
		t.Fatalf("Stage returned error: %v", err)
	}

	session, err := ctrl.Commit(ctx, "s1")
	if err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}

	if !session.Applied.Equal(f) {
		t.Error("commit should promote staged to applied")
	}
	if session.Dirty() {
		t.Error("session should be clean right after commit")
	}
	if session.Results == nil || session.Results.Pagination.TotalJobs != 1 {
		t.Errorf("results = %+v, want the first fetch installed", session.Results)
	}

	if searcher.calls != 1 {
		t.Fatalf("commit triggered %d fetches, want 1", searcher.calls)
	}
	query := searcher.queries[0]
	if query.Get("country") != "Kazakhstan" || query.Get("salary_min") != "500" {
		t.Errorf("fetch query = %v, want country and salary_min set", query)
	}
}

func TestCommit_FailedFetchDegradesToEmptyResults(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("connection refused")}
	ctrl, _ := newTestController(searcher)
	ctx := context.Background()

	f := search.DefaultFilters()
	f.City = "Hanoi"
	if _, err := ctrl.Stage(ctx, "s1", f, ""); err != nil {
		t.Fatalf("Stage returned error: %v", err)
	}

	session, err := ctrl.Commit(ctx, "s1")
	if err != nil {
		t.Fatalf("a failed fetch must not fail the commit, got: %v", err)
	}
	if session.Results == nil {
		t.Fatal("commit should install an empty result set on fetch failure")
	}
	if len(session.Results.Jobs) != 0 || session.Results.Pagination.TotalJobs != 0 {
		t.Errorf("results = %+v, want empty set with totalJobs 0", session.Results)
	}
}

func TestDiscard_RevertsStagedToApplied(t *testing.T) {
	ctrl, _ := newTestController(&fakeSearcher{})
	ctx := context.Background()

	applied := search.DefaultFilters()
	applied.Countries = []string{"Vietnam"}
	if _, err := ctrl.Stage(ctx, "s1", applied, "physics"); err != nil {
		t.Fatalf("Stage returned error: %v", err)
	}
	if _, err := ctrl.Commit(ctx, "s1"); err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}

	edited := applied.WithSalaryMin(2000)
	edited.City = "Hanoi"
	if _, err := ctrl.Stage(ctx, "s1", edited, "chemistry"); err != nil {
		t.Fatalf("Stage returned error: %v", err)
	}

	session, err := ctrl.Discard(ctx, "s1")
	if err != nil {
		t.Fatalf("Discard returned error: %v", err)
	}
	if !session.Staged.Equal(applied) || session.StagedSearch != "physics" {
		t.Error("discard should revert staged to the applied snapshot")
	}
	if session.Dirty() {
		t.Error("session should be clean after discard")
	}
}

func TestSync_AppliesDecodedQuery(t *testing.T) {
	searcher := &fakeSearcher{}
	ctrl, _ := newTestController(searcher)

	session, err := ctrl.Sync(context.Background(), "s1", "country=Kazakhstan&salary_min=500&search=biology")
	if err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}

	want := search.DefaultFilters().WithSalaryMin(500)
	want.Countries = []string{"Kazakhstan"}
	if !session.Applied.Equal(want) {
		t.Errorf("applied = %+v, want decoded query state", session.Applied)
	}
	if !session.Staged.Equal(session.Applied) || session.StagedSearch != session.AppliedSearch {
		t.Error("sync should set staged and applied to the same snapshot")
	}
	if session.AppliedSearch != "biology" {
		t.Errorf("applied search = %q, want %q", session.AppliedSearch, "biology")
	}
	if searcher.calls != 1 {
		t.Errorf("sync triggered %d fetches, want 1", searcher.calls)
	}
}

// ── Stale-response guard ───────────────────────────────────────────────────

func TestCommit_StaleResponseDoesNotOverwriteNewer(t *testing.T) {
	searcher := &fakeSearcher{}
	ctrl, store := newTestController(searcher)
	ctx := context.Background()

	f := search.DefaultFilters()
	f.City = "Almaty"
	if _, err := ctrl.Stage(ctx, "s1", f, ""); err != nil {
		t.Fatalf("Stage returned error: %v", err)
	}

	// While the first commit's fetch is in flight, a second commit runs to
	// completion. Its results (tagged TotalJobs=2) must survive the first
	// commit finishing afterwards.
	searcher.onFirst = func() {
		g := search.DefaultFilters()
		g.City = "Astana"
		if _, err := ctrl.Stage(ctx, "s1", g, ""); err != nil {
			t.Fatalf("inner Stage returned error: %v", err)
		}
		if _, err := ctrl.Commit(ctx, "s1"); err != nil {
			t.Fatalf("inner Commit returned error: %v", err)
		}
	}

	if _, err := ctrl.Commit(ctx, "s1"); err != nil {
		t.Fatalf("outer Commit returned error: %v", err)
	}

	stored, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("store.Get returned error: %v", err)
	}
	if stored.Results == nil || stored.Results.Pagination.TotalJobs != 2 {
		t.Errorf("stored results = %+v, want the newer fetch (TotalJobs=2)", stored.Results)
	}
	if stored.Applied.City != "Astana" {
		t.Errorf("stored applied city = %q, want %q", stored.Applied.City, "Astana")
	}
}
