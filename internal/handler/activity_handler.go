package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"activity-service/internal/response"
	"activity-service/internal/service"
)

// IndexPath is where the root URL redirects to; the file server answers it with index.html
const IndexPath = "/static/"

type ActivityHandler struct {
	activityService service.ActivityService
	logger          *zap.Logger
}

func NewActivityHandler(activityService service.ActivityService, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		logger:          logger,
	}
}

// ListActivities godoc
// @Summary      List activities
// @Description  Returns every activity keyed by name with its live participant count. Participant identities are not exposed.
// @Tags         activities
// @Produce      json
// @Success      200 {object} dto.ActivityListResponse "Activities by name"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /activities [get]
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	activities, err := h.activityService.ListActivities(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendData(c, http.StatusOK, activities)
}

// Index godoc
// @Summary      Listing page
// @Description  Redirects to the static activity listing page
// @Tags         activities
// @Success      307 {string} string "Redirect to the listing page"
// @Router       / [get]
func (h *ActivityHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, IndexPath)
}
