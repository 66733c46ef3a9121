package interview

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"teachmatch-dashboard/internal/logging"
	"teachmatch-dashboard/pkg/models"
)

// Negotiation errors surfaced to the caller
var (
	// ErrNoRequest means the application has no interview request (yet)
	ErrNoRequest = errors.New("no interview request for application")

	// ErrNotRespondable means the negotiation already left pending
	ErrNotRespondable = errors.New("interview request has already been answered")

	// ErrInvalidSlot means the accepted index does not point into the
	// school's proposed slots
	ErrInvalidSlot = errors.New("slot index out of range")

	// ErrIncompleteSlot means a proposed alternative lacks date or time
	ErrIncompleteSlot = errors.New("alternative slot requires both date and time")
)

// UpdateFailedError reports a failed response mutation. The local state is
// untouched when it is returned; the dashboard re-presents the prior state.
type UpdateFailedError struct {
	Err error
}

func (e *UpdateFailedError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "failed to update interview response"
}

func (e *UpdateFailedError) Unwrap() error {
	return e.Err
}

// API is the marketplace surface the negotiation needs
type API interface {
	GetInterviewRequest(ctx context.Context, applicationID string) (interface{}, error)
	RespondToInterview(ctx context.Context, applicationID string, payload ResponsePayload) error
	GetApplication(ctx context.Context, applicationID string) (*models.Application, error)
}

// Controller drives the negotiation state machine. It keeps the current
// normalized request per application and refreshes it after every successful
// transition; a failed mutation leaves the cached state exactly as it was.
type Controller struct {
	api    API
	logger logging.Logger

	mu           sync.RWMutex
	requests     map[string]*InterviewRequest
	applications map[string]*models.Application
}

// NewController creates a negotiation controller
func NewController(api API, logger logging.Logger) *Controller {
	return &Controller{
		api:          api,
		logger:       logger,
		requests:     make(map[string]*InterviewRequest),
		applications: make(map[string]*models.Application),
	}
}

// Load fetches and normalizes the interview request of an application,
// replacing the cached state wholesale
func (c *Controller) Load(ctx context.Context, applicationID string) (*InterviewRequest, error) {
	raw, err := c.api.GetInterviewRequest(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch interview request: %w", err)
	}

	req := Normalize(raw)
	if req == nil {
		c.mu.Lock()
		delete(c.requests, applicationID)
		c.mu.Unlock()
		return nil, ErrNoRequest
	}
	req.ApplicationID = applicationID

	c.mu.Lock()
	c.requests[applicationID] = req
	c.mu.Unlock()
	return req, nil
}

// Current returns the cached normalized request, or nil when none is loaded
func (c *Controller) Current(applicationID string) *InterviewRequest {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.requests[applicationID]
}

// Application returns the cached owning-application summary, if any
func (c *Controller) Application(applicationID string) *models.Application {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.applications[applicationID]
}

// Accept answers the negotiation by accepting one of the school's proposed
// slots. On success the request and its owning application are refetched so
// dependent state (status badges) stays consistent; on failure nothing local
// changes and the caller surfaces the error.
func (c *Controller) Accept(ctx context.Context, applicationID string, slotIndex int) (*InterviewRequest, error) {
	req, err := c.currentOrLoad(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !CanRespond(req.Status) {
		return nil, ErrNotRespondable
	}
	if slotIndex < 0 || slotIndex >= len(req.TimeSlots) {
		return nil, ErrInvalidSlot
	}

	payload := ResponsePayload{SelectedSlot: &slotIndex}
	if err := c.api.RespondToInterview(ctx, applicationID, payload); err != nil {
		return nil, &UpdateFailedError{Err: err}
	}

	return c.refresh(ctx, applicationID)
}

// ProposeAlternative answers the negotiation with a slot of the teacher's
// own, used when none of the proposed slots works
func (c *Controller) ProposeAlternative(ctx context.Context, applicationID string, slot TimeSlot) (*InterviewRequest, error) {
	if slot.Date == "" || slot.Time == "" {
		return nil, ErrIncompleteSlot
	}

	req, err := c.currentOrLoad(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !CanRespond(req.Status) {
		return nil, ErrNotRespondable
	}

	payload := ResponsePayload{AlternativeSlot: &slot}
	if err := c.api.RespondToInterview(ctx, applicationID, payload); err != nil {
		return nil, &UpdateFailedError{Err: err}
	}

	return c.refresh(ctx, applicationID)
}

func (c *Controller) currentOrLoad(ctx context.Context, applicationID string) (*InterviewRequest, error) {
	if req := c.Current(applicationID); req != nil {
		return req, nil
	}
	return c.Load(ctx, applicationID)
}

// refresh runs only after a successful mutation: renormalize the request,
// then refetch the owning application. The application refetch is soft; a
// failure there only logs.
func (c *Controller) refresh(ctx context.Context, applicationID string) (*InterviewRequest, error) {
	req, err := c.Load(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	app, err := c.api.GetApplication(ctx, applicationID)
	if err != nil {
		c.logger.Warn("Failed to refresh application after interview response", map[string]interface{}{
			"application_id": applicationID,
			"error":          err.Error(),
		})
	} else if app != nil {
		c.mu.Lock()
		c.applications[applicationID] = app
		c.mu.Unlock()
	}

	return req, nil
}
