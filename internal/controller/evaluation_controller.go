package controller

import (
	"guidesphere_backend/internal/service"
	"guidesphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EvaluationController struct {
	EvaluationService *service.EvaluationService
}

func NewEvaluationController(evaluationService *service.EvaluationService) *EvaluationController {
	return &EvaluationController{EvaluationService: evaluationService}
}

// @Summary Build evaluation options for a course
// @Description Combines client-reported progress with stored attempt history into per-item eligibility
// @Tags evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param request body []service.ClientItemProgress true "Per-item progress"
// @Success 200 {object} util.Response
// @Router /api/courses/{courseId}/evaluation-options [post]
func (c *EvaluationController) BuildOptions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	var items []service.ClientItemProgress
	if err := ctx.ShouldBindJSON(&items); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.EvaluationService.BuildOptions(user.UserID, ctx.Param("courseId"), items)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}
