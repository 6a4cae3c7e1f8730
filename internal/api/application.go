package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vtc-portal/internal/application"
	"vtc-portal/internal/validator"
)

type updateApplicationStatusRequest struct {
	Status application.Status `json:"status" validate:"required,oneof=Pending Accepted Rejected Interview"`
	Role   string             `json:"role" validate:"omitempty,max=50"`
}

func (h *handlers) SubmitApplication(c *gin.Context) {
	var input application.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequestError(c, msgInvalidJSON, nil)
		return
	}

	res, err := h.applications.Submit(c.Request.Context(), input)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to submit application")
		InternalServerError(c)
		return
	}

	c.JSON(resultStatus(res.Success, false, http.StatusCreated), res)
}

func (h *handlers) GetApplicationStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.applications.GetStatus(c.Request.Context(), c.Param("id")))
}

func (h *handlers) ListApplications(c *gin.Context) {
	apps, err := h.applications.ListAll(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list applications")
		InternalServerError(c)
		return
	}
	SuccessResponse(c, apps)
}

func (h *handlers) UpdateApplicationStatus(c *gin.Context) {
	var req updateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequestError(c, msgInvalidJSON, nil)
		return
	}
	if fieldErrors := validator.Validate(c.Request.Context(), req, nil); fieldErrors != nil {
		BadRequestError(c, "Invalid status update.", fieldErrors)
		return
	}

	id := c.Param("id")
	res, err := h.applications.UpdateStatus(c.Request.Context(), id, req.Status, req.Role)
	if err != nil {
		h.log.Error().Err(err).Str("application_id", id).Msg("failed to update application status")
		InternalServerError(c)
		return
	}

	c.JSON(resultStatus(res.Success, res.NotFound, http.StatusOK), res)
}
