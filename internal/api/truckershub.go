package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vtc-portal/internal/truckershub"
	"vtc-portal/internal/validator"
)

const (
	msgMissingEndpoint = "Missing endpoint parameter"
	msgNoAPIKey        = "API key is not configured on the server"
	msgRelayFailed     = "Failed to fetch from TruckersHub API"
)

type skillLevel struct {
	ID    string `json:"id" validate:"required"`
	Level int    `json:"level" validate:"gte=0"`
}

type updateSkillsRequest struct {
	Skills []skillLevel `json:"skills" validate:"required,dive"`
}

// RelayTruckersHub forwards ?endpoint=<path> with the remaining query to the
// logistics API and answers with its JSON untouched. Errors are plain text.
func (h *handlers) RelayTruckersHub(c *gin.Context) {
	query := c.Request.URL.Query()
	endpoint := query.Get("endpoint")
	if endpoint == "" {
		c.String(http.StatusBadRequest, msgMissingEndpoint)
		return
	}
	query.Del("endpoint")

	var body []byte
	if c.Request.Method == http.MethodPost {
		raw, err := c.GetRawData()
		if err != nil {
			c.String(http.StatusBadRequest, msgInvalidJSON)
			return
		}
		body = raw
	}

	res, err := h.hub.Relay(c.Request.Context(), c.Request.Method, endpoint, query, body)
	if err != nil {
		var statusErr *truckershub.StatusError
		switch {
		case errors.Is(err, truckershub.ErrNotConfigured):
			c.String(http.StatusInternalServerError, msgNoAPIKey)
		case errors.As(err, &statusErr):
			c.String(statusErr.StatusCode, "Error from TruckersHub API: %s", http.StatusText(statusErr.StatusCode))
		default:
			h.log.Error().Err(err).Str("endpoint", endpoint).Msg("failed to fetch from truckershub")
			c.String(http.StatusInternalServerError, msgRelayFailed)
		}
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", res.Body)
}

func (h *handlers) Dashboard(c *gin.Context) {
	SuccessResponse(c, h.hub.Dashboard(c.Request.Context()))
}

func (h *handlers) ListJobs(c *gin.Context) {
	SuccessResponse(c, h.hub.Jobs(c.Request.Context(), c.Request.URL.Query()))
}

func (h *handlers) GetJob(c *gin.Context) {
	job := h.hub.Job(c.Request.Context(), c.Param("id"))
	if job == nil {
		ErrorResponse(c, http.StatusNotFound, "Job not found.")
		return
	}
	SuccessResponse(c, job)
}

func (h *handlers) ListMembers(c *gin.Context) {
	SuccessResponse(c, h.hub.Members(c.Request.Context()))
}

func (h *handlers) ListSkills(c *gin.Context) {
	SuccessResponse(c, h.hub.Skills(c.Request.Context()))
}

func (h *handlers) GetDriverSkills(c *gin.Context) {
	skills := h.hub.DriverSkills(c.Request.Context(), c.Param("steamId"))
	if skills == nil {
		ErrorResponse(c, http.StatusNotFound, "Driver skills not found.")
		return
	}
	SuccessResponse(c, skills)
}

func (h *handlers) UpdateDriverSkills(c *gin.Context) {
	var req updateSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequestError(c, msgInvalidJSON, nil)
		return
	}
	if fieldErrors := validator.Validate(c.Request.Context(), req, nil); fieldErrors != nil {
		BadRequestError(c, "Invalid skill levels.", fieldErrors)
		return
	}

	levels := make(map[string]int, len(req.Skills))
	for _, s := range req.Skills {
		levels[s.ID] = s.Level
	}

	steamID := c.Param("steamId")
	if err := h.hub.UpdateDriverSkills(c.Request.Context(), steamID, levels); err != nil {
		h.log.Error().Err(err).Str("steam_id", steamID).Msg("failed to update driver skills")
		ErrorResponse(c, http.StatusBadGateway, "Failed to update skills. The API did not return a success status.")
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "Skills updated."})
}
