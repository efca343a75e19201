package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Blog stats
// @Description  Aggregates computed over every stored blog.
// @Tags         stats
// @Produce      json
// @Success      200  {object}  models.Stats
// @Failure      500  {object}  bloglist.ErrorResponse
// @Router       /api/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	st, err := h.services.GetStats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, st)
}
