package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"teachmatch-dashboard/internal/logging"
	"teachmatch-dashboard/internal/search"
	"teachmatch-dashboard/pkg/models"
	"teachmatch-dashboard/pkg/utils"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func sessionResponse(s *search.Session) models.SessionResponse {
	return models.SessionResponse{
		SessionID:     s.ID,
		Staged:        search.ToPayload(s.Staged),
		StagedSearch:  s.StagedSearch,
		Applied:       search.ToPayload(s.Applied),
		AppliedSearch: s.AppliedSearch,
		Query:         s.Query(),
		ActiveCount:   search.ActiveCount(s.Applied, s.AppliedSearch),
		Dirty:         s.Dirty(),
	}
}

func searchResponse(s *search.Session, requestID string) models.SearchResponse {
	response := models.SearchResponse{
		Session:   sessionResponse(s),
		Jobs:      []models.Job{},
		RequestID: requestID,
	}
	if s.Results != nil {
		response.Jobs = s.Results.Jobs
		response.TotalJobs = s.Results.Pagination.TotalJobs
	}
	return response
}

// GetSearchSessionHandler returns the current state of a search session,
// creating it with defaults when it does not exist yet
func GetSearchSessionHandler(sessions *search.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()

		session, err := sessions.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return sessionError(c, requestID, err)
		}
		return c.JSON(http.StatusOK, sessionResponse(session))
	}
}

// StageFiltersHandler replaces the staged filter snapshot of a session.
// Staging never triggers a fetch; that happens on commit.
func StageFiltersHandler(sessions *search.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.StageFiltersRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind stage request", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		session, err := sessions.Stage(c.Request().Context(), c.Param("id"),
			search.FromPayload(req.Filters), req.SearchText)
		if err != nil {
			return sessionError(c, requestID, err)
		}
		return c.JSON(http.StatusOK, sessionResponse(session))
	}
}

// CommitSearchHandler promotes staged filters to applied and runs the search
func CommitSearchHandler(sessions *search.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)
		start := time.Now()

		session, err := sessions.Commit(c.Request().Context(), c.Param("id"))
		if err != nil {
			return sessionError(c, requestID, err)
		}

		response := searchResponse(session, requestID)
		logger.Info("Search committed", map[string]interface{}{
			"session_id":      session.ID,
			"query":           response.Session.Query,
			"total_jobs":      response.TotalJobs,
			"processing_time": time.Since(start),
		})
		return c.JSON(http.StatusOK, response)
	}
}

// DiscardFiltersHandler reverts staged edits back to the applied snapshot
func DiscardFiltersHandler(sessions *search.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()

		session, err := sessions.Discard(c.Request().Context(), c.Param("id"))
		if err != nil {
			return sessionError(c, requestID, err)
		}
		return c.JSON(http.StatusOK, sessionResponse(session))
	}
}

// SyncSearchHandler reconciles a session with a raw address-bar query string
// (browser back/forward navigation) and runs the search for it
func SyncSearchHandler(sessions *search.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.SyncQueryRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind sync request", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		session, err := sessions.Sync(c.Request().Context(), c.Param("id"), req.Query)
		if err != nil {
			return sessionError(c, requestID, err)
		}
		return c.JSON(http.StatusOK, searchResponse(session, requestID))
	}
}

func sessionError(c echo.Context, requestID string, err error) error {
	logging.LogWithRequestID(requestID).Error("Search session operation failed", map[string]interface{}{
		"error": err.Error(),
	})
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:     "session_operation_failed",
		Message:   err.Error(),
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}
