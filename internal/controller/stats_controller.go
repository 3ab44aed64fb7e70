package controller

import (
	"guidesphere_backend/internal/service"
	"guidesphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService *service.StatsService
}

func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{StatsService: statsService}
}

// @Summary Admin overview counters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/stats [get]
func (c *StatsController) Overview(ctx *gin.Context) {
	stats, err := c.StatsService.Overview()
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
