package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"activity-service/internal/dto"
	"activity-service/internal/response"
	"activity-service/internal/service"
)

type RosterHandler struct {
	rosterService service.RosterService
	logger        *zap.Logger
}

func NewRosterHandler(rosterService service.RosterService, logger *zap.Logger) *RosterHandler {
	return &RosterHandler{
		rosterService: rosterService,
		logger:        logger,
	}
}

// Signup godoc
// @Summary      Sign up for an activity
// @Description  Enrolls the student identified by email, creating the student on first signup
// @Tags         roster
// @Produce      json
// @Param        name  path   string true "Activity name"
// @Param        email query  string true "Student email"
// @Success      200 {object} dto.RosterResponse "Signed up"
// @Failure      400 {object} response.ErrorResponse "Already signed up, activity full or missing email"
// @Failure      404 {object} response.ErrorResponse "Activity not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /activities/{name}/signup [post]
func (h *RosterHandler) Signup(c *gin.Context) {
	req, ok := bindRosterRequest(c)
	if !ok {
		return
	}

	result, err := h.rosterService.Signup(c.Request.Context(), req.ActivityName, req.Email)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendMessage(c, http.StatusOK, result.Message)
}

// Unregister godoc
// @Summary      Unregister from an activity
// @Description  Removes the student's participation; the student record itself is kept
// @Tags         roster
// @Produce      json
// @Param        name  path   string true "Activity name"
// @Param        email query  string true "Student email"
// @Success      200 {object} dto.RosterResponse "Unregistered"
// @Failure      400 {object} response.ErrorResponse "Not signed up or missing email"
// @Failure      404 {object} response.ErrorResponse "Activity or student not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /activities/{name}/unregister [delete]
func (h *RosterHandler) Unregister(c *gin.Context) {
	req, ok := bindRosterRequest(c)
	if !ok {
		return
	}

	result, err := h.rosterService.Unregister(c.Request.Context(), req.ActivityName, req.Email)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendMessage(c, http.StatusOK, result.Message)
}

// bindRosterRequest reads the activity name from the path and the email from the query
func bindRosterRequest(c *gin.Context) (*dto.RosterRequest, bool) {
	var req dto.RosterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Email is required")
		return nil, false
	}
	if err := c.ShouldBindUri(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Activity name is required")
		return nil, false
	}
	return &req, true
}
