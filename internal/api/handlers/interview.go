package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"teachmatch-dashboard/internal/interview"
	"teachmatch-dashboard/internal/logging"
	"teachmatch-dashboard/pkg/models"
	"teachmatch-dashboard/pkg/utils"
)

// GetInterviewHandler returns the normalized interview request of an
// application together with its presentation fields. The optional timezone
// query parameter overrides each slot's own timezone for display.
func GetInterviewHandler(negotiations *interview.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()

		req, err := negotiations.Load(c.Request().Context(), c.Param("id"))
		if err != nil {
			return negotiationError(c, requestID, err)
		}

		return c.JSON(http.StatusOK, interviewView(req, c.QueryParam("timezone"), requestID))
	}
}

// AcceptSlotHandler accepts one of the school's proposed interview slots
func AcceptSlotHandler(negotiations *interview.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.AcceptSlotRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c, requestID, err)
		}
		if err := validate.Struct(&req); err != nil {
			logger.Error("Accept request validation failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		applicationID := c.Param("id")
		updated, err := negotiations.Accept(c.Request().Context(), applicationID, *req.SlotIndex)
		if err != nil {
			return negotiationError(c, requestID, err)
		}

		logger.Info("Interview slot accepted", map[string]interface{}{
			"application_id": applicationID,
			"slot_index":     *req.SlotIndex,
		})
		return c.JSON(http.StatusOK, interviewView(updated, c.QueryParam("timezone"), requestID))
	}
}

// ProposeAlternativeHandler proposes a teacher-side slot when none of the
// school's proposals works
func ProposeAlternativeHandler(negotiations *interview.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.ProposeAlternativeRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c, requestID, err)
		}
		if err := validate.Struct(&req); err != nil {
			logger.Error("Propose request validation failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		slot := interview.TimeSlot{
			Date:     req.AlternativeSlot.Date,
			Time:     req.AlternativeSlot.Time,
			Timezone: req.AlternativeSlot.Timezone,
		}

		applicationID := c.Param("id")
		updated, err := negotiations.ProposeAlternative(c.Request().Context(), applicationID, slot)
		if err != nil {
			return negotiationError(c, requestID, err)
		}

		logger.Info("Alternative interview slot proposed", map[string]interface{}{
			"application_id": applicationID,
			"date":           slot.Date,
			"time":           slot.Time,
		})
		return c.JSON(http.StatusOK, interviewView(updated, c.QueryParam("timezone"), requestID))
	}
}

func interviewView(req *interview.InterviewRequest, timezone, requestID string) models.InterviewResponse {
	view := models.InterviewResponse{
		ApplicationID: req.ApplicationID,
		Status:        string(req.Status),
		TimeSlots:     make([]models.SlotView, 0, len(req.TimeSlots)),
		SelectedSlot:  req.SelectedSlot,
		LocationType:  string(req.LocationType),
		Location:      req.Location,
		Duration:      req.Duration,
		Respondable:   interview.CanRespond(req.Status),
		RequestID:     requestID,
	}

	for _, slot := range req.TimeSlots {
		view.TimeSlots = append(view.TimeSlots, slotView(slot, timezone))
	}
	if req.AlternativeSlot != nil {
		v := slotView(*req.AlternativeSlot, timezone)
		view.Alternative = &v
	}
	if confirmed := interview.ConfirmedSlot(req); confirmed != nil {
		v := slotView(*confirmed, timezone)
		view.ConfirmedSlot = &v
		view.Countdown = interview.CountdownLabel(confirmed)
	}
	if href, ok := interview.LocationHref(req); ok {
		view.LocationHref = href
	}

	return view
}

func slotView(slot interview.TimeSlot, timezone string) models.SlotView {
	return models.SlotView{
		Date:      slot.Date,
		Time:      slot.Time,
		Timezone:  slot.Timezone,
		Formatted: interview.FormatSlot(slot, timezone),
	}
}

func bindError(c echo.Context, requestID string, err error) error {
	logging.LogWithRequestID(requestID).Error("Failed to bind request", map[string]interface{}{
		"error": err.Error(),
	})
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:     "invalid_request",
		Message:   "Invalid request format",
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}

// negotiationError maps negotiation failures to HTTP answers. A failed
// mutation surfaces the upstream message; precondition violations come back
// as client errors so the dashboard re-presents the prior state.
func negotiationError(c echo.Context, requestID string, err error) error {
	response := models.ErrorResponse{
		Message:   err.Error(),
		RequestID: requestID,
		Timestamp: time.Now(),
	}

	var updateErr *interview.UpdateFailedError
	switch {
	case errors.Is(err, interview.ErrNoRequest):
		response.Error = "interview_request_not_found"
		return c.JSON(http.StatusNotFound, response)
	case errors.Is(err, interview.ErrInvalidSlot), errors.Is(err, interview.ErrIncompleteSlot):
		response.Error = "invalid_slot"
		return c.JSON(http.StatusBadRequest, response)
	case errors.Is(err, interview.ErrNotRespondable):
		response.Error = "already_answered"
		return c.JSON(http.StatusConflict, response)
	case errors.As(err, &updateErr):
		response.Error = "negotiation_update_failed"
		return c.JSON(http.StatusBadGateway, response)
	default:
		logging.LogWithRequestID(requestID).Error("Interview operation failed", map[string]interface{}{
			"error": err.Error(),
		})
		response.Error = "interview_operation_failed"
		return c.JSON(http.StatusInternalServerError, response)
	}
}
