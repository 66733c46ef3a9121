package search

import (
	"context"
	"errors"
	"net/url"

	"teachmatch-dashboard/internal/logging"
	"teachmatch-dashboard/pkg/models"
)

// JobSearcher runs one search against the marketplace for an encoded query
type JobSearcher interface {
	SearchJobs(ctx context.Context, query url.Values) (*models.SearchResults, error)
}

// Session holds the two named snapshots of one search: the staged copy edited
// live by the dashboard and the applied copy that was last committed. Only
// the applied copy drives the canonical query string and the network fetch.
type Session struct {
	ID            string                `json:"id"`
	Staged        FilterState           `json:"staged"`
	StagedSearch  string                `json:"staged_search"`
	Applied       FilterState           `json:"applied"`
	AppliedSearch string                `json:"applied_search"`
	Epoch         uint64                `json:"epoch"`
	Results       *models.SearchResults `json:"results,omitempty"`
}

// NewSession creates a session with all-default snapshots
func NewSession(id string) *Session {
	return &Session{
		ID:      id,
		Staged:  DefaultFilters(),
		Applied: DefaultFilters(),
	}
}

// Dirty reports whether the staged snapshot has uncommitted edits
func (s *Session) Dirty() bool {
	return !s.Staged.Equal(s.Applied) || s.StagedSearch != s.AppliedSearch
}

// Query returns the canonical query string of the applied snapshot
func (s *Session) Query() string {
	return Encode(s.Applied, s.AppliedSearch).Encode()
}

// Controller owns staged/applied session state and the single search fetch
// per commit. State is replaced wholesale on every operation; nothing merges.
type Controller struct {
	store    SessionStore
	searcher JobSearcher
	logger   logging.Logger
}

// NewController creates a search session controller
func NewController(store SessionStore, searcher JobSearcher, logger logging.Logger) *Controller {
	return &Controller{
		store:    store,
		searcher: searcher,
		logger:   logger,
	}
}

// Get loads a session, creating it with defaults when absent
func (c *Controller) Get(ctx context.Context, id string) (*Session, error) {
	session, err := c.store.Get(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		session = NewSession(id)
		if err := c.store.Save(ctx, session); err != nil {
			return nil, err
		}
		return session, nil
	}
	return session, err
}

// Stage replaces the staged snapshot. No fetch happens until Commit.
func (c *Controller) Stage(ctx context.Context, id string, filters FilterState, searchText string) (*Session, error) {
	session, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Staged = filters.Normalize()
	session.StagedSearch = searchText
	if err := c.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Discard reverts the staged snapshot to the applied one
func (c *Controller) Discard(ctx context.Context, id string) (*Session, error) {
	session, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Staged = session.Applied.Clone()
	session.StagedSearch = session.AppliedSearch
	if err := c.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Commit promotes staged to applied and runs the search for the new applied
// snapshot. A failed fetch degrades to an empty result set; it is not an
// error to the caller. Each commit stamps the session with a fresh epoch and
// a completing fetch only installs its results while that epoch is still the
// latest, so a slow stale response cannot overwrite a newer one.
func (c *Controller) Commit(ctx context.Context, id string) (*Session, error) {
	session, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Applied = session.Staged.Clone()
	session.AppliedSearch = session.StagedSearch
	session.Epoch++
	epoch := session.Epoch
	if err := c.store.Save(ctx, session); err != nil {
		return nil, err
	}

	results := c.fetch(ctx, session)
	return c.installResults(ctx, session, epoch, results)
}

// Sync reconciles the session with a raw address-bar query string (browser
// back/forward navigation): the decoded state becomes both staged and
// applied, then a fetch runs exactly as for a commit.
func (c *Controller) Sync(ctx context.Context, id string, rawQuery string) (*Session, error) {
	session, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	filters, searchText := DecodeQuery(rawQuery)
	session.Staged = filters
	session.StagedSearch = searchText
	session.Applied = filters.Clone()
	session.AppliedSearch = searchText
	session.Epoch++
	epoch := session.Epoch
	if err := c.store.Save(ctx, session); err != nil {
		return nil, err
	}

	results := c.fetch(ctx, session)
	return c.installResults(ctx, session, epoch, results)
}

// fetch runs the search for the applied snapshot, absorbing failures into an
// empty result set (search is soft and retryable, never a user-facing error)
func (c *Controller) fetch(ctx context.Context, session *Session) *models.SearchResults {
	query := Encode(session.Applied, session.AppliedSearch)
	results, err := c.searcher.SearchJobs(ctx, query)
	if err != nil {
		c.logger.Warn("Search fetch failed, presenting empty results", map[string]interface{}{
			"session_id": session.ID,
			"query":      query.Encode(),
			"error":      err.Error(),
		})
		return models.EmptySearchResults()
	}
	if results == nil {
		return models.EmptySearchResults()
	}
	return results
}

// installResults persists fetched results only when the session's epoch still
// matches the fetch's epoch. A stale fetch returns its results to its own
// caller but leaves the stored session untouched.
func (c *Controller) installResults(ctx context.Context, session *Session, epoch uint64, results *models.SearchResults) (*Session, error) {
	session.Results = results

	current, err := c.store.Get(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if current.Epoch != epoch {
		c.logger.Debug("Dropping stale search results", map[string]interface{}{
			"session_id":  session.ID,
			"fetch_epoch": epoch,
			"epoch":       current.Epoch,
		})
		return session, nil
	}

	current.Results = results
	if err := c.store.Save(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}
