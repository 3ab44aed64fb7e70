package controller

import (
	"guidesphere_backend/internal/service"
	"guidesphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RatingController struct {
	RatingService *service.RatingService
}

func NewRatingController(ratingService *service.RatingService) *RatingController {
	return &RatingController{RatingService: ratingService}
}

// @Summary Rate a course
// @Description Records the learner's 1-5 rating; rating again replaces the previous one
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param request body service.RateCourseRequest true "Rating"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/courses/{courseId}/rating [post]
func (c *RatingController) Rate(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	var req service.RateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.RatingService.RateCourse(user.UserID, ctx.Param("courseId"), req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Get a course's rating
// @Description Average rating and count, plus the caller's own rating when authenticated
// @Tags ratings
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/rating [get]
func (c *RatingController) Get(ctx *gin.Context) {
	userID := ""
	if user := util.GetUserFromContext(ctx); user != nil {
		userID = user.UserID
	}

	view, err := c.RatingService.GetCourseRating(userID, ctx.Param("courseId"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
