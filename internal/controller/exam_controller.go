package controller

import (
	"guidesphere_backend/internal/service"
	"guidesphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

type generateExamRequest struct {
	MaterialID string `json:"materialId" binding:"required"`
}

type submitExamRequest struct {
	ExamID  string            `json:"examId" binding:"required"`
	Answers map[string]string `json:"answers" binding:"required"`
}

// @Summary Generate an exam from the question bank
// @Description Samples five questions for the material and returns a freshly shuffled exam
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body generateExamRequest true "Material to examine"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/exams/generate [post]
func (c *ExamController) Generate(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	var req generateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.ExamService.GenerateExam(user.UserID, req.MaterialID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, exam)
}

// @Summary Submit exam answers
// @Description Grades answers keyed by 1-based question number against the stored exam
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body submitExamRequest true "Answer sheet"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exams/submit [post]
func (c *ExamController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	var req submitExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ExamService.SubmitExam(user.UserID, req.ExamID, req.Answers)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Add a question to a material's bank
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param materialId path string true "Material ID"
// @Param request body service.BankItemRequest true "Question"
// @Success 201 {object} util.Response
// @Router /api/materials/{materialId}/questions [post]
func (c *ExamController) AddBankItem(ctx *gin.Context) {
	var req service.BankItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	item, err := c.ExamService.AddBankItem(ctx.Param("materialId"), req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, item)
}
