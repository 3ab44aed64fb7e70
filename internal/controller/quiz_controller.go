package controller

import (
	"guidesphere_backend/internal/service"
	"guidesphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

type submitQuizRequest struct {
	ContentID string            `json:"contentId" binding:"required"`
	Answers   map[string]string `json:"answers" binding:"required"`
}

// @Summary Get the quiz for a content item
// @Description Learner view of the quiz; correct answers are withheld
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param contentId path string true "Content ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exam/by-content/{contentId} [get]
func (c *QuizController) GetByContent(ctx *gin.Context) {
	view, err := c.QuizService.GetQuizByContent(ctx.Param("contentId"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Submit quiz answers
// @Description Grades answers keyed by question id, records the attempt and certifies the course on a passing score
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body submitQuizRequest true "Answer sheet"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exam/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	var req submitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.SubmitQuiz(user.UserID, req.ContentID, req.Answers)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
